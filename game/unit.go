package game

type Unit struct {
	name   string
	damage int
	health int
	army   *Army // Notified on death
}

func (u *Unit) Name() string { return u.name }

func (u *Unit) Damage() int { return u.damage }

func (u *Unit) Health() int { return u.health }

func (u *Unit) Army() *Army { return u.army }

// TakeDamage lowers health and removes the unit from its army once it drops to zero.
func (u *Unit) TakeDamage(damage int) {
	if u.health <= 0 {
		return
	}
	u.health -= damage
	if u.health <= 0 {
		u.army.removeUnit(u)
	}
}

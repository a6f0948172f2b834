package game

import "golang.org/x/exp/rand"

// Rules holds the tunable numbers of the simulation.
type Rules interface {
	RollUnit(r *rand.Rand) (damage, health int)
	EventFires(r *rand.Rand) bool
	AttritionLosses(units int) int
	ReinforcementSize() int
	DefectorCount(units int) int
}

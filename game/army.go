package game

import (
	"fmt"

	"rts/utils"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// Army is a roster of units of one faction occupying exactly one location.
// Roster order is insertion order; it decides removal order and battle pairing.
type Army struct {
	graph       *Graph
	faction     Faction
	units       []*Unit
	location    Location
	destination *Node // Set only while in transit on an edge
	dead        bool
}

func newArmy(g *Graph, faction Faction, loc Location, units int) *Army {
	army := &Army{
		graph:    g,
		faction:  faction,
		location: loc,
	}
	army.AddUnits(units)
	return army
}

func (a *Army) Faction() Faction { return a.faction }

func (a *Army) Team() Team { return a.faction.Team() }

func (a *Army) Location() Location { return a.location }

func (a *Army) Destination() *Node { return a.destination }

func (a *Army) SetDestination(node *Node) { a.destination = node }

// Alive is false once the army lost its last unit; it can no longer be used.
func (a *Army) Alive() bool { return !a.dead }

func (a *Army) Size() int { return len(a.units) }

func (a *Army) Units() []*Unit {
	return slices.Clone(a.units)
}

// AddUnits appends freshly rolled units to the roster.
func (a *Army) AddUnits(amount int) {
	for i := 0; i < amount; i++ {
		name := a.faction.randomUnitName(a.graph.rng)
		damage, health := a.graph.rules.RollUnit(a.graph.rng)
		a.units = append(a.units, &Unit{name: name, damage: damage, health: health, army: a})
	}
}

// RemoveUnits drops the amount most recently added units. Removing all of them
// disbands the army.
func (a *Army) RemoveUnits(amount int) {
	if amount <= 0 {
		return
	}
	remaining := len(a.units) - amount
	if remaining <= 0 {
		a.units = nil
		a.disband()
		return
	}
	a.units = slices.Delete(a.units, remaining, len(a.units))
}

func (a *Army) removeUnit(unit *Unit) {
	var removed bool
	a.units, removed = utils.Remove(a.units, unit)
	if removed && len(a.units) == 0 {
		a.disband()
	}
}

func (a *Army) disband() {
	if a.dead {
		return
	}
	a.dead = true
	a.location.RemoveArmy(a)
	log.Debug().Msgf("%s army disbanded at %s", a.faction, describe(a.location))
}

// MoveTo relocates the army one step and evaluates the arrival events of the
// destination. It reports the event that fired, if any.
func (a *Army) MoveTo(dest Location) (Event, bool) {
	if a.dead {
		panic("cannot move a disbanded army")
	}
	if !canEnter(a.location, dest) {
		panic(fmt.Sprintf("cannot move army from %s to %s: not adjacent", describe(a.location), describe(dest)))
	}
	a.location.RemoveArmy(a)
	dest.AddArmy(a)
	a.location = dest
	return a.resolveEvents()
}

// resolveEvents fires one random attached event with the rules' chance. Events stay attached.
func (a *Army) resolveEvents() (Event, bool) {
	events := a.location.occupancy().events
	if len(events) == 0 {
		return 0, false
	}
	if !a.graph.rules.EventFires(a.graph.rng) {
		return 0, false
	}
	event := events[a.graph.rng.Intn(len(events))]
	log.Debug().Msgf("%s struck %s army at %s", event.Name(), a.faction, describe(a.location))
	event.Apply(a)
	return event, true
}

package game

import "github.com/rs/zerolog/log"

// Event is a stochastic effect attached to a location.
type Event int

const (
	Attrition     Event = iota // Fog: a fifth of the army gets lost
	Reinforcement              // Rebellion: two units join
	Defection                  // Change of mind: half the army joins the other team
)

type eventInfo struct {
	name        string
	explanation string
}

var events = []eventInfo{
	Attrition: {
		name: "Fog event",
		explanation: "The army gets lost in the fog and some units get lost! " +
			"The army decides looking for them is not worth it. This army loses 20% of their units.",
	},
	Reinforcement: {
		name:        "Rebellion event",
		explanation: "The army finds some angry citizens who are willing to help it fight its enemy. It gains 2 units.",
	},
	Defection: {
		name: "Change of mind event",
		explanation: "Half of the units in this army change their minds and form a new army, " +
			"fighting for the other team.",
	},
}

// Events lists the event catalog.
func Events() []Event {
	return []Event{Attrition, Reinforcement, Defection}
}

func (e Event) Name() string { return events[e].name }

func (e Event) Explanation() string { return events[e].explanation }

func (e Event) String() string { return e.Name() }

// CreateEvent maps the exact catalog name to its event. Anything else falls back to Defection.
func CreateEvent(name string) Event {
	for _, e := range Events() {
		if e.Name() == name {
			return e
		}
	}
	log.Warn().Msgf("unknown event %q, falling back to %s", name, Defection.Name())
	return Defection
}

// Apply carries out the effect on army. A defection returns the newly formed army.
func (e Event) Apply(army *Army) *Army {
	rules := army.graph.rules
	switch e {
	case Attrition:
		army.RemoveUnits(rules.AttritionLosses(army.Size()))
	case Reinforcement:
		army.AddUnits(rules.ReinforcementSize())
	case Defection:
		return defect(army, rules.DefectorCount(army.Size()))
	default:
		panic("unknown event")
	}
	return nil
}

func defect(army *Army, count int) *Army {
	army.RemoveUnits(count)
	if count <= 0 {
		return nil
	}
	faction := RandomFaction(army.Team().Opponent(), army.graph.rng)
	defectors := newArmy(army.graph, faction, army.location, count)
	// Defectors in transit keep marching to the same node.
	defectors.destination = army.destination
	army.location.AddArmy(defectors)
	return defectors
}

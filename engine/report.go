package engine

import "rts/game"

// Report describes what happened during one tick.
type Report struct {
	Tick     int
	Executed []Phase // Phases run during the tick, in order
	Phase    Phase   // Phase the next tick starts in
	Battles  []game.BattleResult
	Moved    int
	Stalled  []game.Location // Locations where an army could not move
	Arrivals []Arrival       // Arrival events that fired
}

// Arrival is an event that struck an army entering a location.
type Arrival struct {
	Faction  game.Faction
	Location game.Location
	Event    game.Event
}

// Fought reports whether a battle took place during the tick.
func (r Report) Fought() bool {
	return len(r.Battles) > 0
}

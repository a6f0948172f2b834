package game

import "errors"

// Team is one of the two opposing alliances.
type Team int

const (
	TeamWest Team = iota // 0
	TeamEast             // 1

	NoTeam Team = -1
)

// Opponent returns the other team.
func (t Team) Opponent() Team {
	if t == TeamWest {
		return TeamEast
	}
	return TeamWest
}

func (t Team) String() string {
	switch t {
	case TeamWest:
		return "west"
	case TeamEast:
		return "east"
	default:
		return "none"
	}
}

// Observer is notified synchronously after every structural change of the graph.
// It must not mutate the graph.
type Observer func()

var (
	ErrSameNode        = errors.New("nodes are the same")
	ErrDuplicateEdge   = errors.New("nodes are already connected")
	ErrForeignNode     = errors.New("node does not belong to this graph")
	ErrNoUnits         = errors.New("army needs at least one unit")
	ErrUnknownFaction  = errors.New("unknown faction")
	ErrUnknownLocation = errors.New("unknown location")
)

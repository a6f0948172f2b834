package engine

import (
	"fmt"

	"rts/meta"
)

type Phase int

const (
	OpeningBattlePhase Phase = iota
	MoveToEdgePhase
	MidBattlePhase
	MoveToNodePhase
	ClosingBattlePhase
)

// IsBattleCheck reports whether battles are resolved in this phase.
func (p Phase) IsBattleCheck() bool {
	return p%2 == 0
}

func (p Phase) next() Phase {
	return (p + 1) % meta.PHASES
}

func (p Phase) String() string {
	switch p {
	case OpeningBattlePhase, MidBattlePhase, ClosingBattlePhase:
		return fmt.Sprintf("battle-check(%d)", int(p))
	case MoveToEdgePhase:
		return "move-to-edge"
	case MoveToNodePhase:
		return "move-to-node"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

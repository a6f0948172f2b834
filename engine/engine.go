package engine

import "rts/game"

// Engine advances a world by one tick per call.
type Engine interface {
	Step() Report
	Graph() *game.Graph
}

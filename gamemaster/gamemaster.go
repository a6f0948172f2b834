// Package gamemaster is the editing surface of a battle graph. Every call is
// addressed by location ids and serialized behind one lock, so editors and the
// simulation can share a graph.
package gamemaster

import (
	"fmt"
	"io"
	"sync"

	"rts/engine"
	"rts/export"
	"rts/game"

	"github.com/rs/zerolog/log"
)

type GameMaster struct {
	mu       sync.Mutex
	graph    *game.Graph
	sim      *engine.Simulation
	updateCh chan struct{}
}

// NewGameMaster takes ownership of g. Callers must not touch g directly afterwards.
func NewGameMaster(g *game.Graph, options ...engine.Option) *GameMaster {
	gm := &GameMaster{
		graph:    g,
		sim:      engine.NewSimulation(g, options...),
		updateCh: make(chan struct{}, 1),
	}
	g.Subscribe(gm.signal)
	return gm
}

// signal runs while the lock is held by the mutating call.
func (gm *GameMaster) signal() {
	select {
	case gm.updateCh <- struct{}{}:
	default:
		// An update is already pending
	}
}

// Updates delivers at most one pending notification per batch of changes.
func (gm *GameMaster) Updates() <-chan struct{} {
	return gm.updateCh
}

func (gm *GameMaster) CreateNode(x, y int) int {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	return gm.graph.CreateNode(game.Point{X: x, Y: y}).ID()
}

func (gm *GameMaster) RemoveNode(id int) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	node, err := gm.node(id)
	if err != nil {
		return err
	}
	gm.graph.RemoveNode(node)
	return nil
}

func (gm *GameMaster) MoveNode(id, x, y int) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	node, err := gm.node(id)
	if err != nil {
		return err
	}
	gm.graph.MoveNode(node, game.Point{X: x, Y: y})
	return nil
}

// CreateEdge connects two nodes and returns the new edge id.
func (gm *GameMaster) CreateEdge(from, to int) (int, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	a, err := gm.node(from)
	if err != nil {
		return 0, err
	}
	b, err := gm.node(to)
	if err != nil {
		return 0, err
	}
	edge, err := gm.graph.CreateEdge(a, b)
	if err != nil {
		return 0, err
	}
	return edge.ID(), nil
}

func (gm *GameMaster) RemoveEdge(id int) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	edge := gm.graph.Edge(id)
	if edge == nil {
		return fmt.Errorf("cannot remove edge %d: %w", id, game.ErrUnknownLocation)
	}
	gm.graph.RemoveEdge(edge)
	return nil
}

func (gm *GameMaster) Rename(kind game.LocationKind, id int, name string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	loc, err := gm.graph.Location(kind, id)
	if err != nil {
		return err
	}
	loc.SetName(name)
	return nil
}

// DeployArmy places units of the faction registered under factionName.
func (gm *GameMaster) DeployArmy(kind game.LocationKind, id int, factionName string, units int) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	loc, err := gm.graph.Location(kind, id)
	if err != nil {
		return err
	}
	faction, ok := game.FactionByName(factionName)
	if !ok {
		return fmt.Errorf("cannot deploy %q: %w", factionName, game.ErrUnknownFaction)
	}
	_, err = gm.graph.Deploy(loc, faction, units)
	return err
}

func (gm *GameMaster) AttachEvent(kind game.LocationKind, id int, name string) (game.Event, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	loc, err := gm.graph.Location(kind, id)
	if err != nil {
		return 0, err
	}
	return gm.graph.AttachEvent(loc, name)
}

func (gm *GameMaster) DetachEvent(kind game.LocationKind, id int, event game.Event) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	loc, err := gm.graph.Location(kind, id)
	if err != nil {
		return err
	}
	loc.RemoveEvent(event)
	return nil
}

// Step advances the simulation by one tick.
func (gm *GameMaster) Step() engine.Report {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	report := gm.sim.Step()
	log.Debug().Msgf("tick %d done, next phase %s", report.Tick, report.Phase)
	return report
}

func (gm *GameMaster) Phase() engine.Phase {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	return gm.sim.Phase()
}

// Snapshot returns the export document of the current graph.
func (gm *GameMaster) Snapshot() export.Document {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	return export.Build(gm.graph)
}

func (gm *GameMaster) Export(w io.Writer) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	return export.Encode(w, gm.graph)
}

func (gm *GameMaster) ExportFile(path string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	return export.WriteFile(path, gm.graph)
}

// Balance scores the graph between -1 and 1 from the west's perspective.
func (gm *GameMaster) Balance() float64 {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	return game.Balance(gm.graph)
}

func (gm *GameMaster) Tally() [2]game.Strength {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	return game.Tally(gm.graph)
}

// View runs fn with the graph while holding the lock. fn must not keep g or
// call back into gm.
func (gm *GameMaster) View(fn func(g *game.Graph)) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	fn(gm.graph)
}

func (gm *GameMaster) node(id int) (*game.Node, error) {
	node := gm.graph.Node(id)
	if node == nil {
		return nil, fmt.Errorf("cannot find node %d: %w", id, game.ErrUnknownLocation)
	}
	return node, nil
}

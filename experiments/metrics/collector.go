package metrics

import (
	"time"

	"rts/engine"
	"rts/game"
)

// TickMetric summarizes the graph after one tick.
type TickMetric struct {
	Tick      int
	Phase     engine.Phase // Phase the next tick starts in
	Battles   int
	Moves     int
	Events    int
	Stalls    int
	WestUnits int
	EastUnits int
	Balance   float64
}

// RunMetric summarizes a finished simulation run.
type RunMetric struct {
	Seed      uint64
	Ticks     int
	Winner    game.Team
	Survivors int
	StartTime time.Time
	Duration  time.Duration
}

type Collector interface {
	Start(seed uint64)
	Observe(report engine.Report, g *game.Graph)
	Ticks() []TickMetric
	Complete(g *game.Graph) RunMetric
}

type collector struct {
	seed      uint64
	startTime time.Time
	ticks     []TickMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(seed uint64) {
	m.seed = seed
	m.startTime = time.Now()
	m.ticks = nil
}

func (m *collector) Observe(report engine.Report, g *game.Graph) {
	tally := game.Tally(g)
	m.ticks = append(m.ticks, TickMetric{
		Tick:      report.Tick,
		Phase:     report.Phase,
		Battles:   len(report.Battles),
		Moves:     report.Moved,
		Events:    len(report.Arrivals),
		Stalls:    len(report.Stalled),
		WestUnits: tally[game.TeamWest].Units,
		EastUnits: tally[game.TeamEast].Units,
		Balance:   game.Balance(g),
	})
}

func (m *collector) Ticks() []TickMetric {
	return m.ticks
}

func (m *collector) Complete(g *game.Graph) RunMetric {
	tally := game.Tally(g)
	winner := game.Dominant(g)
	survivors := 0
	if winner != game.NoTeam {
		survivors = tally[winner].Units
	}
	return RunMetric{
		Seed:      m.seed,
		Ticks:     len(m.ticks),
		Winner:    winner,
		Survivors: survivors,
		StartTime: m.startTime,
		Duration:  time.Since(m.startTime),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(seed uint64)                           {}
func (m *dummyCollector) Observe(report engine.Report, g *game.Graph) {}
func (m *dummyCollector) Ticks() []TickMetric                         { return nil }
func (m *dummyCollector) Complete(g *game.Graph) RunMetric            { return RunMetric{Winner: game.NoTeam} }

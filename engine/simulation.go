package engine

import (
	"rts/game"

	"github.com/rs/zerolog/log"
)

type Option func(s *Simulation)

// Simulation drives the five-phase cycle over a graph. It is not safe for
// concurrent use; callers serialize access to the graph.
type Simulation struct {
	graph *game.Graph
	phase Phase
	tick  int
}

// WithPhase starts the cycle at phase instead of the opening battle check.
func WithPhase(phase Phase) Option {
	return func(s *Simulation) {
		if phase >= OpeningBattlePhase && phase <= ClosingBattlePhase {
			s.phase = phase
		}
	}
}

var _ Engine = (*Simulation)(nil)

func NewSimulation(g *game.Graph, options ...Option) *Simulation {
	if g == nil {
		panic("simulation needs a graph")
	}
	s := &Simulation{graph: g, phase: OpeningBattlePhase}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *Simulation) Graph() *game.Graph { return s.graph }

func (s *Simulation) Phase() Phase { return s.phase }

func (s *Simulation) Tick() int { return s.tick }

// Step runs one tick. A battle check where nothing is fought falls through to the
// next phase, so every tick either fights or moves.
func (s *Simulation) Step() Report {
	s.tick++
	report := Report{Tick: s.tick}

	for {
		phase := s.phase
		s.phase = phase.next()
		report.Executed = append(report.Executed, phase)
		log.Debug().Msgf("tick %d: %s", s.tick, phase)

		if phase.IsBattleCheck() {
			if s.resolveBattles(&report) {
				break
			}
			continue
		}
		if phase == MoveToEdgePhase {
			s.moveToEdge(&report)
		} else {
			s.moveToNode(&report)
		}
		break
	}

	report.Phase = s.phase
	return report
}

// Run executes ticks steps and returns their reports.
func (s *Simulation) Run(ticks int) []Report {
	reports := make([]Report, 0, ticks)
	for i := 0; i < ticks; i++ {
		reports = append(reports, s.Step())
	}
	return reports
}

func (s *Simulation) resolveBattles(report *Report) bool {
	fought := false
	for _, loc := range s.graph.Locations() {
		// Battle checks for both teams itself; the ratio is undefined otherwise.
		if result, ok := game.Battle(loc); ok {
			report.Battles = append(report.Battles, result)
			fought = true
		}
	}
	return fought
}

func (s *Simulation) moveToEdge(report *Report) {
	var armies []*game.Army
	for _, node := range s.graph.Nodes() {
		armies = append(armies, node.Armies()...)
	}

	for _, army := range armies {
		if !army.Alive() {
			continue
		}
		current := army.Location().(*game.Node)
		neighbors := current.Neighbors()
		if len(neighbors) == 0 {
			log.Warn().Msgf("%s army at isolated node %d (%s) stays put", army.Faction(), current.ID(), current.Name())
			report.Stalled = append(report.Stalled, current)
			continue
		}
		dest := neighbors[s.graph.Rand().Intn(len(neighbors))]
		army.SetDestination(dest)
		s.arrive(army, current.EdgeTo(dest), report)
	}
}

func (s *Simulation) moveToNode(report *Report) {
	var armies []*game.Army
	for _, edge := range s.graph.Edges() {
		armies = append(armies, edge.Armies()...)
	}

	for _, army := range armies {
		if !army.Alive() {
			continue
		}
		dest := army.Destination()
		if dest == nil {
			log.Warn().Msgf("%s army on edge %d has no destination", army.Faction(), army.Location().ID())
			report.Stalled = append(report.Stalled, army.Location())
			continue
		}
		army.SetDestination(nil)
		s.arrive(army, dest, report)
	}
}

func (s *Simulation) arrive(army *game.Army, dest game.Location, report *Report) {
	faction := army.Faction()
	event, fired := army.MoveTo(dest)
	report.Moved++
	if fired {
		report.Arrivals = append(report.Arrivals, Arrival{Faction: faction, Location: dest, Event: event})
	}
}

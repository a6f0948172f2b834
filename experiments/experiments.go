// Package experiments runs seeded simulations and stores their metrics.
package experiments

import (
	"fmt"

	"rts/engine"
	"rts/experiments/metrics"
	"rts/game"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Setup populates a fresh graph before a run.
type Setup func(g *game.Graph) error

// Journal stores the tick reports of a run.
type Journal interface {
	StartRun(seed uint64) (uuid.UUID, error)
	Record(run uuid.UUID, report engine.Report) error
}

type Config struct {
	Seed    uint64 // Seed of the first run, later runs use consecutive seeds
	Runs    int
	Ticks   int
	Journal Journal // Optional
}

type Result struct {
	Runs  []metrics.RunRecord
	Ticks []metrics.TickRecord
}

// Wins counts the runs each team ended as the only one standing.
func (r Result) Wins() [2]int {
	var wins [2]int
	for _, run := range r.Runs {
		if run.Winner != game.NoTeam {
			wins[run.Winner]++
		}
	}
	return wins
}

// RunBatch plays config.Runs simulations of config.Ticks ticks each.
func RunBatch(name string, setup Setup, config Config) (Result, error) {
	if config.Runs <= 0 || config.Ticks <= 0 {
		return Result{}, fmt.Errorf("cannot run %s: need positive runs and ticks, got %d and %d", name, config.Runs, config.Ticks)
	}

	result := Result{}
	log.Info().Msgf("starting %s experiment with %d runs of %d ticks...", name, config.Runs, config.Ticks)

	for i := 0; i < config.Runs; i++ {
		seed := config.Seed + uint64(i)
		log.Info().Msgf("starting run %d of %d with seed %d...", i+1, config.Runs, seed)

		collector := metrics.NewCollector()
		run, err := RunGame(setup, seed, config.Ticks, collector, config.Journal)
		if err != nil {
			return result, err
		}
		result.Runs = append(result.Runs, run)
		for _, tick := range collector.Ticks() {
			result.Ticks = append(result.Ticks, metrics.TickRecord{Run: run.ID, TickMetric: tick})
		}

		log.Info().Msgf("completed run %d of %d with winner: %s", i+1, config.Runs, run.Winner)
	}

	log.Info().Msgf("completed %s experiment", name)
	return result, nil
}

// RunGame builds a graph seeded with seed and steps it ticks times.
func RunGame(setup Setup, seed uint64, ticks int, collector metrics.Collector, journal Journal) (metrics.RunRecord, error) {
	g := game.NewGraph(game.WithSeed(seed))
	if err := setup(g); err != nil {
		return metrics.RunRecord{}, fmt.Errorf("cannot set up run with seed %d: %w", seed, err)
	}

	id := uuid.New()
	if journal != nil {
		var err error
		id, err = journal.StartRun(seed)
		if err != nil {
			return metrics.RunRecord{}, err
		}
	}

	collector.Start(seed)
	sim := engine.NewSimulation(g)
	for i := 0; i < ticks; i++ {
		report := sim.Step()
		collector.Observe(report, g)
		if journal != nil {
			if err := journal.Record(id, report); err != nil {
				return metrics.RunRecord{}, err
			}
		}
	}

	return metrics.RunRecord{ID: id.String(), RunMetric: collector.Complete(g)}, nil
}

// Store writes the result as ticks.csv and runs.csv under baseDir/name.
func Store(baseDir, name string, result Result) (string, error) {
	writer, err := metrics.NewWriter(baseDir, name)
	if err != nil {
		return "", err
	}

	if err := writer.WriteTickRecords(result.Ticks); err != nil {
		return "", err
	}
	log.Info().Msg("stored tick records")

	if err := writer.WriteRunRecords(result.Runs); err != nil {
		return "", err
	}
	log.Info().Msg("stored run records")
	return writer.Dir(), nil
}

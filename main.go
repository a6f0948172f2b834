package main

import (
	_ "embed"
	"flag"
	"fmt"
	"os"
	"time"

	"rts/chronicle"
	"rts/config"
	"rts/engine"
	"rts/experiments"
	"rts/experiments/metrics"
	"rts/game"
	"rts/gamemaster"
	"rts/scenario"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

//go:embed scenarios/middle_earth.yaml
var defaultScenario []byte

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "run":
		err = run(os.Args[2:])
	case "batch":
		err = batch(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed")
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s run|batch [flags]\n", os.Args[0])
}

func setup(name string, args []string) (config.Config, *scenario.Scenario, error) {
	cfg, err := config.Parse(flag.NewFlagSet(name, flag.ExitOnError), args)
	if err != nil {
		return cfg, nil, err
	}
	level, err := cfg.Level()
	if err != nil {
		return cfg, nil, err
	}
	zerolog.SetGlobalLevel(level)

	var s *scenario.Scenario
	if cfg.Scenario == "" {
		s, err = scenario.Parse(defaultScenario)
	} else {
		s, err = scenario.Load(cfg.Scenario)
	}
	if err != nil {
		return cfg, nil, err
	}
	log.Info().Msgf("loaded scenario %q with %d nodes and %d armies", s.Name, len(s.Nodes), len(s.Armies))
	return cfg, s, nil
}

// run plays a single seeded simulation and stores whatever outputs are configured.
func run(args []string) error {
	cfg, s, err := setup("run", args)
	if err != nil {
		return err
	}

	gm, err := newGameMaster(s, cfg.Seed)
	if err != nil {
		return err
	}

	var journal *chronicle.Chronicle
	if cfg.ChroniclePath != "" {
		journal, err = chronicle.Open(cfg.ChroniclePath)
		if err != nil {
			return err
		}
		defer journal.Close()
	}
	runID, err := startRun(journal, cfg.Seed)
	if err != nil {
		return err
	}

	collector := metrics.NewDummyCollector()
	if cfg.MetricsDir != "" {
		collector = metrics.NewCollector()
	}
	collector.Start(cfg.Seed)

	start := time.Now()
	battles := 0
	for i := 0; i < cfg.Ticks; i++ {
		report := gm.Step()
		battles += len(report.Battles)
		gm.View(func(g *game.Graph) { collector.Observe(report, g) })
		if journal != nil {
			if err := journal.Record(runID, report); err != nil {
				return err
			}
		}
		logReport(report)
	}

	tally := gm.Tally()
	log.Info().Msgf("%s ticks in %s: %s battles, west holds %s units, east holds %s units, balance %.2f",
		humanize.Comma(int64(cfg.Ticks)), time.Since(start).Round(time.Microsecond), humanize.Comma(int64(battles)),
		humanize.Comma(int64(tally[game.TeamWest].Units)), humanize.Comma(int64(tally[game.TeamEast].Units)), gm.Balance())

	if cfg.ExportPath != "" {
		if err := gm.ExportFile(cfg.ExportPath); err != nil {
			return err
		}
		log.Info().Msgf("exported graph to %s", cfg.ExportPath)
	}

	if cfg.MetricsDir != "" {
		var run metrics.RunMetric
		gm.View(func(g *game.Graph) { run = collector.Complete(g) })
		record := metrics.RunRecord{ID: runID.String(), RunMetric: run}
		ticks := make([]metrics.TickRecord, 0, cfg.Ticks)
		for _, tick := range collector.Ticks() {
			ticks = append(ticks, metrics.TickRecord{Run: record.ID, TickMetric: tick})
		}
		dir, err := experiments.Store(cfg.MetricsDir, "run", experiments.Result{Runs: []metrics.RunRecord{record}, Ticks: ticks})
		if err != nil {
			return err
		}
		log.Info().Msgf("stored metrics in %s", dir)
	}
	return nil
}

// batch plays the scenario once per consecutive seed.
func batch(args []string) error {
	cfg, s, err := setup("batch", args)
	if err != nil {
		return err
	}

	batchConfig := experiments.Config{Seed: cfg.Seed, Runs: cfg.BatchRuns, Ticks: cfg.Ticks}
	if cfg.ChroniclePath != "" {
		journal, err := chronicle.Open(cfg.ChroniclePath)
		if err != nil {
			return err
		}
		defer journal.Close()
		batchConfig.Journal = journal
	}

	start := time.Now()
	result, err := experiments.RunBatch(s.Name, s.Build, batchConfig)
	if err != nil {
		return err
	}

	wins := result.Wins()
	log.Info().Msgf("%s runs in %s: west won %s, east won %s, %s undecided",
		humanize.Comma(int64(len(result.Runs))), time.Since(start).Round(time.Millisecond),
		humanize.Comma(int64(wins[game.TeamWest])), humanize.Comma(int64(wins[game.TeamEast])),
		humanize.Comma(int64(len(result.Runs)-wins[game.TeamWest]-wins[game.TeamEast])))

	if cfg.MetricsDir != "" {
		dir, err := experiments.Store(cfg.MetricsDir, "batch", result)
		if err != nil {
			return err
		}
		log.Info().Msgf("stored metrics in %s", dir)
	}
	return nil
}

// newGameMaster builds the scenario on a fresh graph that only the game master holds.
func newGameMaster(s *scenario.Scenario, seed uint64) (*gamemaster.GameMaster, error) {
	g := game.NewGraph(game.WithSeed(seed))
	if err := s.Build(g); err != nil {
		return nil, err
	}
	return gamemaster.NewGameMaster(g), nil
}

func startRun(journal *chronicle.Chronicle, seed uint64) (uuid.UUID, error) {
	if journal == nil {
		return uuid.New(), nil
	}
	return journal.StartRun(seed)
}

func logReport(report engine.Report) {
	for _, arrival := range report.Arrivals {
		log.Info().Msgf("%s tick: %s struck %s at %s", humanize.Ordinal(report.Tick), arrival.Event, arrival.Faction, arrival.Location.Name())
	}
	log.Debug().Msgf("tick %d executed %v, %d armies moved", report.Tick, report.Executed, report.Moved)
}

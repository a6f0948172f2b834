// Package config reads runtime settings from the environment and command line flags.
package config

import (
	"flag"
	"fmt"

	"rts/meta"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

type Config struct {
	Seed          uint64 `env:"RTS_SEED" envDefault:"1"`
	Ticks         int    `env:"RTS_TICKS"`
	Scenario      string `env:"RTS_SCENARIO"`
	ExportPath    string `env:"RTS_EXPORT_PATH"`
	ChroniclePath string `env:"RTS_CHRONICLE_PATH"`
	MetricsDir    string `env:"RTS_METRICS_DIR"`
	LogLevel      string `env:"RTS_LOG_LEVEL" envDefault:"info"`
	BatchRuns     int    `env:"RTS_BATCH_RUNS"`
}

// Load parses the environment.
func Load() (Config, error) {
	cfg := Config{Ticks: meta.MAX_TICKS, BatchRuns: meta.BATCH_RUNS}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("cannot parse env: %w", err)
	}
	return cfg, nil
}

// Bind registers flags on fs that default to the current values, so parsed
// flags override the environment.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "random seed")
	fs.IntVar(&c.Ticks, "ticks", c.Ticks, "number of ticks to simulate")
	fs.StringVar(&c.Scenario, "scenario", c.Scenario, "YAML scenario file, built-in skirmish when empty")
	fs.StringVar(&c.ExportPath, "export", c.ExportPath, "write the final graph as JSON to this path")
	fs.StringVar(&c.ChroniclePath, "chronicle", c.ChroniclePath, "SQLite journal of tick outcomes")
	fs.StringVar(&c.MetricsDir, "metrics", c.MetricsDir, "directory for CSV metrics")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.IntVar(&c.BatchRuns, "runs", c.BatchRuns, "number of seeded runs in a batch")
}

// Parse loads the environment then applies args on top of it.
func Parse(fs *flag.FlagSet, args []string) (Config, error) {
	cfg, err := Load()
	if err != nil {
		return Config{}, err
	}
	cfg.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("cannot parse flags: %w", err)
	}
	if cfg.Ticks <= 0 {
		return Config{}, fmt.Errorf("cannot run %d ticks", cfg.Ticks)
	}
	return cfg, nil
}

func (c Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("cannot parse log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

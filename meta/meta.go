// meta/meta.go
package meta

// PHASES defines the length of the simulation phase cycle.
const PHASES = 5

// MAX_TICKS defines the default number of ticks a run lasts.
const MAX_TICKS = 20

// BATCH_RUNS defines the default number of seeded runs in a batch experiment.
const BATCH_RUNS = 10

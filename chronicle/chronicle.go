// Package chronicle journals simulation runs to SQLite.
package chronicle

import (
	"fmt"
	"time"

	"rts/engine"
	"rts/game"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

type Category string

const (
	CategoryBattle Category = "battle"
	CategoryEvent  Category = "event"
	CategoryStall  Category = "stall"
)

// Entry is one journaled happening.
type Entry struct {
	Tick        int      `db:"tick"`
	Phase       string   `db:"phase"`
	Category    Category `db:"category"`
	Location    string   `db:"location"`
	Description string   `db:"description"`
}

type Run struct {
	ID        string
	Seed      uint64
	StartedAt time.Time
}

// Fixed width so stored times sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

type Chronicle struct {
	conn *sqlx.DB
}

// Open opens or creates the journal at path.
func Open(path string) (*Chronicle, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("cannot open chronicle: %w", err)
	}

	c := &Chronicle{conn: conn}
	if err := c.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("cannot migrate chronicle: %w", err)
	}
	return c, nil
}

func (c *Chronicle) Close() error {
	return c.conn.Close()
}

func (c *Chronicle) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		started_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(id),
		tick INTEGER NOT NULL,
		phase TEXT NOT NULL,
		category TEXT NOT NULL,
		location TEXT NOT NULL,
		description TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_entries_run ON entries(run_id, tick);
	`
	_, err := c.conn.Exec(schema)
	return err
}

// StartRun registers a run and returns its id.
func (c *Chronicle) StartRun(seed uint64) (uuid.UUID, error) {
	id := uuid.New()
	_, err := c.conn.Exec(
		"INSERT INTO runs (id, seed, started_at) VALUES (?, ?, ?)",
		id.String(), int64(seed), time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("cannot start run: %w", err)
	}
	log.Debug().Msgf("chronicle run %s started with seed %d", id, seed)
	return id, nil
}

// Record journals the battles, arrival events and stalls of a tick.
func (c *Chronicle) Record(run uuid.UUID, report engine.Report) error {
	entries := Entries(report)
	if len(entries) == 0 {
		return nil
	}

	tx, err := c.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(`INSERT INTO entries
		(run_id, tick, phase, category, location, description)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.Exec(run.String(), e.Tick, e.Phase, string(e.Category), e.Location, e.Description); err != nil {
			return fmt.Errorf("cannot record tick %d: %w", report.Tick, err)
		}
	}
	return tx.Commit()
}

// Runs lists journaled runs, oldest first.
func (c *Chronicle) Runs() ([]Run, error) {
	var rows []struct {
		ID        string `db:"id"`
		Seed      int64  `db:"seed"`
		StartedAt string `db:"started_at"`
	}
	if err := c.conn.Select(&rows, "SELECT id, seed, started_at FROM runs ORDER BY rowid"); err != nil {
		return nil, err
	}
	runs := make([]Run, 0, len(rows))
	for _, r := range rows {
		started, err := time.Parse(timeLayout, r.StartedAt)
		if err != nil {
			return nil, fmt.Errorf("cannot read run %s: %w", r.ID, err)
		}
		runs = append(runs, Run{ID: r.ID, Seed: uint64(r.Seed), StartedAt: started})
	}
	return runs, nil
}

// History returns the entries of a run in the order they were recorded.
func (c *Chronicle) History(run uuid.UUID) ([]Entry, error) {
	var entries []Entry
	err := c.conn.Select(&entries,
		"SELECT tick, phase, category, location, description FROM entries WHERE run_id = ? ORDER BY id",
		run.String(),
	)
	return entries, err
}

// Count returns how many entries of a category a run holds.
func (c *Chronicle) Count(run uuid.UUID, category Category) (int, error) {
	var n int
	err := c.conn.Get(&n, "SELECT COUNT(*) FROM entries WHERE run_id = ? AND category = ?", run.String(), string(category))
	return n, err
}

// Entries turns a tick report into journal entries without storing them.
func Entries(report engine.Report) []Entry {
	phase := ""
	if n := len(report.Executed); n > 0 {
		phase = report.Executed[n-1].String()
	}

	var entries []Entry
	for _, b := range report.Battles {
		entries = append(entries, Entry{
			Tick:     report.Tick,
			Phase:    phase,
			Category: CategoryBattle,
			Location: b.Location.Name(),
			Description: fmt.Sprintf("%d rounds, west lost %d, east lost %d, %s holds with %d units",
				b.Rounds, b.Casualties[game.TeamWest], b.Casualties[game.TeamEast], b.Remaining, b.Survivors),
		})
	}
	for _, a := range report.Arrivals {
		entries = append(entries, Entry{
			Tick:        report.Tick,
			Phase:       phase,
			Category:    CategoryEvent,
			Location:    a.Location.Name(),
			Description: fmt.Sprintf("%s struck %s: %s", a.Event, a.Faction, a.Event.Explanation()),
		})
	}
	for _, loc := range report.Stalled {
		entries = append(entries, Entry{
			Tick:        report.Tick,
			Phase:       phase,
			Category:    CategoryStall,
			Location:    loc.Name(),
			Description: fmt.Sprintf("armies at %s %d could not move", loc.Kind(), loc.ID()),
		})
	}
	return entries
}

package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type TickRecord struct {
	Run string // Run ID
	TickMetric
}

type RunRecord struct {
	ID string
	RunMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates baseDir/name/<timestamp> and writes records into it.
func NewWriter(baseDir, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405.000")
	dir := filepath.Join(baseDir, name, timestamp)
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: dir,
	}, nil
}

// Dir is the directory the writer stores its files in.
func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteTickRecords(records []TickRecord) error {
	header := []string{"run", "tick", "phase", "battles", "moves", "events", "stalls", "west_units", "east_units", "balance"}
	return w.write("ticks.csv", header, len(records), func(i int) []string {
		record := records[i]
		return []string{
			record.Run,
			strconv.Itoa(record.Tick),
			record.Phase.String(),
			strconv.Itoa(record.Battles),
			strconv.Itoa(record.Moves),
			strconv.Itoa(record.Events),
			strconv.Itoa(record.Stalls),
			strconv.Itoa(record.WestUnits),
			strconv.Itoa(record.EastUnits),
			strconv.FormatFloat(record.Balance, 'f', 4, 64),
		}
	})
}

func (w *Writer) WriteRunRecords(records []RunRecord) error {
	header := []string{"id", "seed", "ticks", "winner", "survivors", "start_time", "duration"}
	return w.write("runs.csv", header, len(records), func(i int) []string {
		record := records[i]
		return []string{
			record.ID,
			strconv.FormatUint(record.Seed, 10),
			strconv.Itoa(record.Ticks),
			record.Winner.String(),
			strconv.Itoa(record.Survivors),
			record.StartTime.Format(time.RFC3339),
			record.Duration.String(),
		}
	})
}

func (w *Writer) write(file string, header []string, n int, row func(i int) []string) error {
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", file, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", file, err)
	}

	for i := 0; i < n; i++ {
		err = writer.Write(row(i))
		if err != nil {
			return fmt.Errorf("failed to write %s row: %w", file, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

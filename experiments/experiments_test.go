package experiments

import (
	"os"
	"path/filepath"
	"testing"

	"rts/chronicle"
	"rts/engine"
	"rts/experiments/metrics"
	"rts/game"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func skirmish(g *game.Graph) error {
	a := g.CreateNode(game.Point{})
	b := g.CreateNode(game.Point{X: 100})
	c := g.CreateNode(game.Point{X: 50, Y: 80})
	for _, pair := range [][2]*game.Node{{a, b}, {b, c}, {c, a}} {
		if _, err := g.CreateEdge(pair[0], pair[1]); err != nil {
			return err
		}
	}
	if _, err := g.Deploy(a, game.Elves, 6); err != nil {
		return err
	}
	if _, err := g.Deploy(b, game.Mordor, 6); err != nil {
		return err
	}
	_, err := g.AttachEvent(c, "Fog event")
	return err
}

type countingJournal struct {
	started int
	records int
}

func (j *countingJournal) StartRun(seed uint64) (uuid.UUID, error) {
	j.started++
	return uuid.New(), nil
}

func (j *countingJournal) Record(run uuid.UUID, report engine.Report) error {
	j.records++
	return nil
}

func TestRunBatch(t *testing.T) {
	journal := &countingJournal{}
	result, err := RunBatch("skirmish", skirmish, Config{Seed: 5, Runs: 3, Ticks: 10, Journal: journal})
	require.NoError(t, err)

	require.Len(t, result.Runs, 3)
	require.Len(t, result.Ticks, 30)
	require.Equal(t, 3, journal.started)
	require.Equal(t, 30, journal.records)

	for i, run := range result.Runs {
		require.Equal(t, uint64(5+i), run.Seed, "Runs use consecutive seeds")
		require.Equal(t, 10, run.Ticks)
	}
	wins := result.Wins()
	require.LessOrEqual(t, wins[game.TeamWest]+wins[game.TeamEast], 3)
}

func TestRunBatchInvalid(t *testing.T) {
	_, err := RunBatch("empty", skirmish, Config{Runs: 0, Ticks: 10})
	require.Error(t, err)
	_, err = RunBatch("empty", skirmish, Config{Runs: 1, Ticks: 0})
	require.Error(t, err)
}

func TestRunGameDeterminism(t *testing.T) {
	first, err := RunGame(skirmish, 11, 15, metrics.NewCollector(), nil)
	require.NoError(t, err)
	second, err := RunGame(skirmish, 11, 15, metrics.NewCollector(), nil)
	require.NoError(t, err)

	require.NotEqual(t, first.ID, second.ID)
	require.Equal(t, first.Winner, second.Winner)
	require.Equal(t, first.Survivors, second.Survivors)
}

func TestRunGameSetupError(t *testing.T) {
	broken := func(g *game.Graph) error {
		n := g.CreateNode(game.Point{})
		_, err := g.CreateEdge(n, n)
		return err
	}
	_, err := RunGame(broken, 1, 5, metrics.NewDummyCollector(), nil)
	require.ErrorIs(t, err, game.ErrSameNode)
}

func TestStoreWithChronicle(t *testing.T) {
	dir := t.TempDir()
	c, err := chronicle.Open(filepath.Join(dir, "chronicle.db"))
	require.NoError(t, err)
	defer c.Close()

	result, err := RunBatch("stored", skirmish, Config{Seed: 1, Runs: 2, Ticks: 8, Journal: c})
	require.NoError(t, err)

	out, err := Store(filepath.Join(dir, "metrics"), "stored", result)
	require.NoError(t, err)
	for _, file := range []string{"ticks.csv", "runs.csv"} {
		_, err := os.Stat(filepath.Join(out, file))
		require.NoError(t, err, file)
	}

	runs, err := c.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 2)
}

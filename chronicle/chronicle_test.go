package chronicle

import (
	"path/filepath"
	"testing"
	"time"

	"rts/engine"
	"rts/game"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func open(t *testing.T) *Chronicle {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "chronicle.db"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestRecordBattles(t *testing.T) {
	c := open(t)
	run, err := c.StartRun(7)
	require.NoError(t, err)

	g := game.NewGraph(game.WithSeed(7))
	ford := g.CreateNode(game.Point{})
	ford.SetName("Fords")
	_, err = g.Deploy(ford, game.Men, 6)
	require.NoError(t, err)
	_, err = g.Deploy(ford, game.Mordor, 6)
	require.NoError(t, err)

	sim := engine.NewSimulation(g)
	report := sim.Step()
	require.True(t, report.Fought())
	require.NoError(t, c.Record(run, report))

	history, err := c.History(run)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, CategoryBattle, history[0].Category)
	require.Equal(t, "Fords", history[0].Location)
	require.Equal(t, 1, history[0].Tick)
	require.Equal(t, engine.OpeningBattlePhase.String(), history[0].Phase)

	battles, err := c.Count(run, CategoryBattle)
	require.NoError(t, err)
	require.Equal(t, 1, battles)
}

func TestRecordStalls(t *testing.T) {
	c := open(t)
	run, err := c.StartRun(1)
	require.NoError(t, err)

	g := game.NewGraph(game.WithSeed(1))
	lonely := g.CreateNode(game.Point{})
	_, err = g.Deploy(lonely, game.Elves, 2)
	require.NoError(t, err)
	sim := engine.NewSimulation(g)

	for _, report := range sim.Run(3) {
		require.NoError(t, c.Record(run, report))
	}

	stalls, err := c.Count(run, CategoryStall)
	require.NoError(t, err)
	require.Positive(t, stalls)
	events, err := c.Count(run, CategoryEvent)
	require.NoError(t, err)
	require.Zero(t, events)
}

func TestEntries(t *testing.T) {
	g := game.NewGraph(game.WithSeed(1))
	a := g.CreateNode(game.Point{})
	b := g.CreateNode(game.Point{X: 10})
	edge, err := g.CreateEdge(a, b)
	require.NoError(t, err)

	report := engine.Report{
		Tick:     4,
		Executed: []engine.Phase{engine.MidBattlePhase, engine.MoveToNodePhase},
		Arrivals: []engine.Arrival{{Faction: game.Dwarves, Location: b, Event: game.Attrition}},
		Stalled:  []game.Location{edge},
	}

	entries := Entries(report)
	require.Len(t, entries, 2)
	require.Equal(t, CategoryEvent, entries[0].Category)
	require.Equal(t, "node1", entries[0].Location)
	require.Equal(t, "move-to-node", entries[0].Phase)
	require.Contains(t, entries[0].Description, "Dwarves")
	require.Equal(t, CategoryStall, entries[1].Category)
	require.Equal(t, "edge1", entries[1].Location)

	require.Empty(t, Entries(engine.Report{Tick: 1}))
}

func TestRuns(t *testing.T) {
	c := open(t)
	var ids []string
	for seed := uint64(1); seed <= 5; seed++ {
		id, err := c.StartRun(seed)
		require.NoError(t, err)
		ids = append(ids, id.String())
	}

	runs, err := c.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 5)

	var seeds []uint64
	var got []string
	for i, run := range runs {
		seeds = append(seeds, run.Seed)
		got = append(got, run.ID)
		require.False(t, run.StartedAt.IsZero())
		if i > 0 {
			require.False(t, run.StartedAt.Before(runs[i-1].StartedAt), "Runs are listed oldest first")
		}
	}
	require.Equal(t, []uint64{1, 2, 3, 4, 5}, seeds, "Runs started within the same second keep their order")
	require.Equal(t, ids, got)

	history, err := c.History(uuid.New())
	require.NoError(t, err)
	require.Empty(t, history, "Unknown runs have no history")
}

func TestTimeLayoutSortsAsText(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	earlier := base.Add(100 * time.Millisecond).Format(timeLayout)
	later := base.Add(120 * time.Millisecond).Format(timeLayout)

	require.Less(t, earlier, later)
	parsed, err := time.Parse(timeLayout, later)
	require.NoError(t, err)
	require.True(t, parsed.Equal(base.Add(120*time.Millisecond)))
}

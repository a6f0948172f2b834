package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTally(t *testing.T) {
	g := NewGraph(WithSeed(8))
	a, b := g.CreateNode(Point{}), g.CreateNode(Point{})
	west, _ := g.Deploy(a, Men, 4)
	_, _ = g.Deploy(b, Elves, 2)
	east, _ := g.Deploy(b, Isengard, 2)
	setStats(west, 20, 25)
	setStats(east, 20, 25)

	tally := Tally(g)

	require.Equal(t, 2, tally[TeamWest].Armies)
	require.Equal(t, 6, tally[TeamWest].Units)
	require.Equal(t, 2, tally[TeamEast].Units)
	require.Equal(t, 50, tally[TeamEast].Health)
	require.Greater(t, Balance(g), 0.0, "The west outnumbers the east")
	require.Equal(t, NoTeam, Dominant(g))

	east.RemoveUnits(2)
	require.Equal(t, TeamWest, Dominant(g))
}

func TestNormalize(t *testing.T) {
	require.Equal(t, 0.0, normalize(0, 0))
	require.Equal(t, 1.0, normalize(5, 0))
	require.InDelta(t, -0.5, normalize(1, 3), 1e-9)
}

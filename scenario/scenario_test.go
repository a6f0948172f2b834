package scenario

import (
	"path/filepath"
	"testing"

	"rts/game"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "fords.yaml"))
	require.NoError(t, err)
	require.Equal(t, "Fords of Isen", s.Name)

	g := game.NewGraph(game.WithSeed(1))
	require.NoError(t, s.Build(g))

	nodes := g.Nodes()
	require.Len(t, nodes, 3)
	require.Equal(t, "Helm's Deep", nodes[0].Name())
	require.Equal(t, game.Point{X: 300, Y: 250}, nodes[1].Position())

	edges := g.Edges()
	require.Len(t, edges, 2)
	require.Equal(t, "Westfold road", edges[0].Name())
	require.Equal(t, "edge2", edges[1].Name(), "Unnamed edges keep their default name")
	require.Equal(t, []game.Event{game.Reinforcement}, edges[1].Events())

	require.Equal(t, game.Men, nodes[0].Armies()[0].Faction())
	require.Equal(t, 10, nodes[0].Armies()[0].Size())
	require.Equal(t, game.Elves, edges[0].Armies()[0].Faction())
	require.Equal(t, []game.Event{game.Attrition}, nodes[1].Events())
}

func TestBuildErrors(t *testing.T) {
	cases := map[string]struct {
		yaml string
		err  error
	}{
		"unknown edge endpoint": {
			yaml: "nodes: [{name: a}]\nedges: [{from: a, to: b}]",
			err:  game.ErrUnknownLocation,
		},
		"duplicate edge": {
			yaml: "nodes: [{name: a}, {name: b}]\nedges: [{from: a, to: b}, {from: b, to: a}]",
			err:  game.ErrDuplicateEdge,
		},
		"unknown faction": {
			yaml: "nodes: [{name: a}]\narmies: [{at: a, faction: Rohan, units: 3}]",
			err:  game.ErrUnknownFaction,
		},
		"empty army": {
			yaml: "nodes: [{name: a}]\narmies: [{at: a, faction: Men, units: 0}]",
			err:  game.ErrNoUnits,
		},
		"unknown event location": {
			yaml: "nodes: [{name: a}]\nevents: [{at: nowhere, event: Fog event}]",
			err:  game.ErrUnknownLocation,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			s, err := Parse([]byte(tc.yaml))
			require.NoError(t, err)

			err = s.Build(game.NewGraph(game.WithSeed(1)))
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte("nodes: {name: [unterminated"))
	require.Error(t, err)

	_, err = Load(filepath.Join("testdata", "missing.yaml"))
	require.Error(t, err)
}

func TestShippedScenarios(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		s, err := Load(path)
		require.NoError(t, err, path)
		require.NoError(t, s.Build(game.NewGraph(game.WithSeed(1))), path)
	}
}

package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateEvent(t *testing.T) {
	require.Equal(t, Attrition, CreateEvent("Fog event"))
	require.Equal(t, Reinforcement, CreateEvent("Rebellion event"))
	require.Equal(t, Defection, CreateEvent("Change of mind event"))
	require.Equal(t, Defection, CreateEvent("Dragon attack"), "Unknown names should fall back to defection")
	require.Equal(t, Defection, CreateEvent("fog EVENT"), "Names must match exactly")
	require.Equal(t, Defection, CreateEvent(" Fog event"))
	for _, e := range Events() {
		require.NotEmpty(t, e.Explanation())
	}
}

func TestEventEffects(t *testing.T) {
	deploy := func(t *testing.T, units int) (*Graph, *Army) {
		g := NewGraph(WithSeed(11))
		army, err := g.Deploy(g.CreateNode(Point{}), Men, units)
		require.NoError(t, err)
		return g, army
	}

	t.Run("attrition removes a fifth, rounded down", func(t *testing.T) {
		for units, want := range map[int]int{10: 8, 4: 4, 7: 6, 23: 19} {
			_, army := deploy(t, units)
			Attrition.Apply(army)
			require.Equal(t, want, army.Size(), "attrition on %d units", units)
		}
	})

	t.Run("reinforcement adds two units", func(t *testing.T) {
		_, army := deploy(t, 6)
		original := army.Units()

		Reinforcement.Apply(army)

		require.Equal(t, 8, army.Size())
		require.Equal(t, original, army.Units()[:6], "New units are appended")
	})

	t.Run("defection splits off half to the other team", func(t *testing.T) {
		g, army := deploy(t, 9)
		node := g.Nodes()[0]

		defectors := Defection.Apply(army)

		require.NotNil(t, defectors)
		require.Equal(t, 5, army.Size())
		require.Equal(t, 4, defectors.Size())
		require.Equal(t, TeamEast, defectors.Team())
		require.Equal(t, Location(node), defectors.Location())
		require.Equal(t, []*Army{army, defectors}, node.Armies())
	})

	t.Run("defectors in transit keep the destination", func(t *testing.T) {
		g := NewGraph(WithSeed(11))
		a, b := g.CreateNode(Point{}), g.CreateNode(Point{})
		edge, err := g.CreateEdge(a, b)
		require.NoError(t, err)
		army, err := g.Deploy(edge, Mordor, 4)
		require.NoError(t, err)
		army.SetDestination(b)

		defectors := Defection.Apply(army)

		require.Equal(t, b, defectors.Destination())
		require.Equal(t, TeamWest, defectors.Team())
	})

	t.Run("a lone unit does not defect", func(t *testing.T) {
		g, army := deploy(t, 1)

		require.Nil(t, Defection.Apply(army))
		require.Equal(t, 1, army.Size())
		require.Len(t, g.Armies(), 1)
	})
}

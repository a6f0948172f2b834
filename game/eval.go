package game

// Strength tallies what a team has on the graph.
type Strength struct {
	Armies int
	Units  int
	Health int
}

// Tally sums armies, units and health per team.
func Tally(g *Graph) [2]Strength {
	var tally [2]Strength
	for _, army := range g.Armies() {
		s := &tally[army.Team()]
		s.Armies++
		s.Units += len(army.units)
		for _, unit := range army.units {
			s.Health += unit.health
		}
	}
	return tally
}

// Balance scores the graph between -1 and 1 from the west's perspective,
// averaging the unit and health balance.
func Balance(g *Graph) float64 {
	tally := Tally(g)
	unitScore := normalize(float64(tally[TeamWest].Units), float64(tally[TeamEast].Units))
	healthScore := normalize(float64(tally[TeamWest].Health), float64(tally[TeamEast].Health))
	return (unitScore + healthScore) / 2
}

// Dominant returns the only team with armies on the graph, or NoTeam.
func Dominant(g *Graph) Team {
	tally := Tally(g)
	switch {
	case tally[TeamWest].Units > 0 && tally[TeamEast].Units == 0:
		return TeamWest
	case tally[TeamEast].Units > 0 && tally[TeamWest].Units == 0:
		return TeamEast
	default:
		return NoTeam
	}
}

// normalize converts two values into a single score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	// [a/(a+b)-0.5]*2 = (a-b)/(a+b)
	return (value - otherValue) / total
}

package game

import "github.com/rs/zerolog/log"

type BattleResult struct {
	Location   Location
	Rounds     int
	Casualties [2]int // Units lost per team
	Remaining  Team   // Team still holding the location, NoTeam if both were wiped out
	Survivors  int
}

// Battle fights at loc until at most one team is left. It reports false, without
// touching anything, when loc does not host both teams.
func Battle(loc Location) (BattleResult, bool) {
	if !HostsBothTeams(loc) {
		return BattleResult{}, false
	}

	result := BattleResult{Location: loc, Remaining: NoTeam}
	west, east := partition(loc)
	before := [2]int{len(west), len(east)}

	for HostsBothTeams(loc) {
		west, east = partition(loc)
		fightRound(west, east)
		result.Rounds++
	}

	west, east = partition(loc)
	result.Casualties = [2]int{before[TeamWest] - len(west), before[TeamEast] - len(east)}
	switch {
	case len(west) > 0:
		result.Remaining, result.Survivors = TeamWest, len(west)
	case len(east) > 0:
		result.Remaining, result.Survivors = TeamEast, len(east)
	}

	log.Info().Msgf("battle at %s over after %d rounds: west lost %d, east lost %d, %s holds with %d units",
		describe(loc), result.Rounds, result.Casualties[TeamWest], result.Casualties[TeamEast], result.Remaining, result.Survivors)
	return result, true
}

// partition concatenates the rosters of each team in army order.
func partition(loc Location) (west, east []*Unit) {
	for _, army := range loc.occupancy().armies {
		if army.Team() == TeamWest {
			west = append(west, army.units...)
		} else {
			east = append(east, army.units...)
		}
	}
	return west, east
}

// fightRound pairs units by index. The larger side multiplies its damage by the size ratio.
func fightRound(west, east []*Unit) {
	if len(west) == 0 || len(east) == 0 {
		panic("cannot fight a round without both teams")
	}
	ratio := float64(len(west)) / float64(len(east))
	westAdvantage := true
	if ratio < 1 {
		westAdvantage = false
		ratio = 1 / ratio
	}

	for i := 0; i < min(len(west), len(east)); i++ {
		w, e := west[i], east[i]
		if westAdvantage {
			e.TakeDamage(int(float64(w.damage) * ratio))
			w.TakeDamage(e.damage)
		} else {
			w.TakeDamage(int(float64(e.damage) * ratio))
			e.TakeDamage(w.damage)
		}
	}
}

package game

import "golang.org/x/exp/rand"

// Faction is one of the fixed factions; each belongs to a team and provides unit names.
type Faction int

const (
	Men      Faction = iota // 0
	Dwarves                 // 1
	Elves                   // 2
	Isengard                // 3
	Mordor                  // 4
)

type factionInfo struct {
	name      string
	team      Team
	unitNames []string
}

var factions = []factionInfo{
	Men:      {"Men", TeamWest, []string{"Gondor Soldier", "Tower Guard", "Ithilien Ranger"}},
	Dwarves:  {"Dwarves", TeamWest, []string{"Guardian", "Phalanx", "Axe Thrower"}},
	Elves:    {"Elves", TeamWest, []string{"Lorien Warrior", "Mirkwood Archer", "Rivendell Lancer"}},
	Isengard: {"Isengard", TeamEast, []string{"Uruk-hai", "Uruk Crossbowman", "Warg Rider"}},
	Mordor:   {"Mordor", TeamEast, []string{"Orc Warrior", "Orc Pikeman", "Haradrim Archer"}},
}

// Factions lists every faction in catalog order.
func Factions() []Faction {
	return []Faction{Men, Dwarves, Elves, Isengard, Mordor}
}

func (f Faction) Name() string { return factions[f].name }

func (f Faction) Team() Team { return factions[f].team }

// UnitNames returns the pool of names units of this faction are drawn from.
func (f Faction) UnitNames() []string {
	names := make([]string, len(factions[f].unitNames))
	copy(names, factions[f].unitNames)
	return names
}

func (f Faction) String() string { return f.Name() }

// FactionByName looks a faction up by its display name.
func FactionByName(name string) (Faction, bool) {
	for _, f := range Factions() {
		if f.Name() == name {
			return f, true
		}
	}
	return 0, false
}

// FactionsOf returns the factions belonging to team in catalog order.
func FactionsOf(team Team) []Faction {
	var members []Faction
	for _, f := range Factions() {
		if f.Team() == team {
			members = append(members, f)
		}
	}
	return members
}

// RandomFaction picks uniformly among the factions of team.
func RandomFaction(team Team, r *rand.Rand) Faction {
	members := FactionsOf(team)
	return members[r.Intn(len(members))]
}

func (f Faction) randomUnitName(r *rand.Rand) string {
	names := factions[f].unitNames
	return names[r.Intn(len(names))]
}

package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

type StandardRules struct {
	MinStat        int     // Lowest damage/health a new unit can roll
	MaxStat        int     // Highest damage/health a new unit can roll
	EventChance    int     // Percent chance an arrival event fires
	AttritionRate  float64 // Share of an army lost to attrition
	Reinforcements int     // Units gained from reinforcement
}

func NewStandardRules() *StandardRules {
	return &StandardRules{
		MinStat:        20,
		MaxStat:        34,
		EventChance:    50,
		AttritionRate:  0.2,
		Reinforcements: 2,
	}
}

// Validate panics on rules under which battles could never end.
func (sr *StandardRules) Validate() {
	if sr.MinStat < 1 || sr.MaxStat < sr.MinStat {
		panic(fmt.Sprintf("invalid stat range [%d, %d]", sr.MinStat, sr.MaxStat))
	}
	if sr.EventChance < 0 || sr.EventChance > 100 {
		panic(fmt.Sprintf("invalid event chance %d", sr.EventChance))
	}
}

// RollUnit draws damage then health, each uniform in [MinStat, MaxStat].
func (sr *StandardRules) RollUnit(r *rand.Rand) (int, int) {
	span := sr.MaxStat - sr.MinStat + 1
	damage := r.Intn(span) + sr.MinStat
	health := r.Intn(span) + sr.MinStat
	return damage, health
}

func (sr *StandardRules) EventFires(r *rand.Rand) bool {
	return r.Intn(100) < sr.EventChance
}

func (sr *StandardRules) AttritionLosses(units int) int {
	return int(float64(units) * sr.AttritionRate)
}

func (sr *StandardRules) ReinforcementSize() int {
	return sr.Reinforcements
}

func (sr *StandardRules) DefectorCount(units int) int {
	return units / 2
}

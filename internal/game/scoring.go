package game

import "sort"

// FieldTechBonus sums level * PerLevelBonus over the cards actually
// fielded this round. Held-but-not-fielded cards do not count.
func (r Rules) FieldTechBonus(fielded []Card, prof Proficiency) int {
	bonus := 0
	for _, card := range fielded {
		bonus += prof.LevelOf(card) * r.PerLevelBonus
	}
	return bonus
}

func (r Rules) RoundScore(oracleScore, fieldBonus int) int {
	return oracleScore + fieldBonus
}

// ResourceGain floors the round score by the divisor and adds the flat
// bonus. Never negative.
func (r Rules) ResourceGain(roundScore int) int {
	gain := roundScore/r.ResourceDivisor + r.ResourceFlatBonus
	if gain < 0 {
		return 0
	}
	return gain
}

// FinalBonus pays out once per card that reached max level, at
// FinalRanking entry.
func (r Rules) FinalBonus(prof Proficiency) int {
	return prof.MaxedCount(r.MaxProficiencyLevel) * r.FinalBonusPerMaxedCard
}

type Standing struct {
	Rank     int    `json:"rank"`
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
}

// Standings ranks players descending by score. The sort is stable so ties
// keep roster join order, making the result reproducible.
func Standings(roster []*Player) []Standing {
	ordered := make([]*Player, len(roster))
	copy(ordered, roster)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Score > ordered[j].Score
	})
	out := make([]Standing, 0, len(ordered))
	for i, p := range ordered {
		out = append(out, Standing{Rank: i + 1, PlayerID: p.ID, Name: p.Name, Score: p.Score})
	}
	return out
}

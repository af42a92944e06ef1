package game

import "testing"

func TestFieldTechBonusCountsOnlyFielded(t *testing.T) {
	r := DefaultRules()
	prof := Proficiency{"react": 3, "redis": 2}
	fielded := []Card{{ID: "react", BaseLevel: 1}}

	if got := r.FieldTechBonus(fielded, prof); got != 15 {
		t.Fatalf("expected 15, got %d", got)
	}
	if got := r.FieldTechBonus(nil, prof); got != 0 {
		t.Fatalf("expected 0 for empty field, got %d", got)
	}
}

func TestFieldTechBonusFallsBackToBaseLevel(t *testing.T) {
	r := DefaultRules()
	fielded := []Card{{ID: "vue", BaseLevel: 2}}
	if got := r.FieldTechBonus(fielded, Proficiency{}); got != 10 {
		t.Fatalf("expected base-level bonus 10, got %d", got)
	}
}

func TestRoundScoreAndResourceGain(t *testing.T) {
	// Level-3 card at 5 per level, oracle 60: 75 round score, gain 6.
	r := DefaultRules()
	prof := Proficiency{"react": 3}
	fielded := []Card{{ID: "react", BaseLevel: 1}}

	bonus := r.FieldTechBonus(fielded, prof)
	score := r.RoundScore(60, bonus)
	if score != 75 {
		t.Fatalf("expected round score 75, got %d", score)
	}
	if gain := r.ResourceGain(score); gain != 6 {
		t.Fatalf("expected resource gain 6, got %d", gain)
	}
}

func TestResourceGainNeverNegative(t *testing.T) {
	r := DefaultRules()
	r.ResourceFlatBonus = -10
	if gain := r.ResourceGain(0); gain != 0 {
		t.Fatalf("expected clamped gain 0, got %d", gain)
	}
}

func TestFinalBonusCountsMaxedCards(t *testing.T) {
	r := DefaultRules()
	prof := Proficiency{"react": 5, "vue": 4, "redis": 5}
	if got := r.FinalBonus(prof); got != 200 {
		t.Fatalf("expected 200, got %d", got)
	}
	if got := r.FinalBonus(Proficiency{}); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestStandingsStableOnTies(t *testing.T) {
	roster := []*Player{
		{ID: "a", Name: "A", Score: 50},
		{ID: "b", Name: "B", Score: 80},
		{ID: "c", Name: "C", Score: 50},
	}
	for i := 0; i < 3; i++ {
		got := Standings(roster)
		if got[0].PlayerID != "b" || got[1].PlayerID != "a" || got[2].PlayerID != "c" {
			t.Fatalf("run %d: unexpected order %v", i, got)
		}
		if got[0].Rank != 1 || got[2].Rank != 3 {
			t.Fatalf("run %d: unexpected ranks %v", i, got)
		}
	}
}

package game

import "testing"

func TestAdvanceIncrementsByOneAndClamps(t *testing.T) {
	prof := Proficiency{"react": 4, "vue": 5}
	fielded := []Card{{ID: "react", BaseLevel: 1}, {ID: "vue", BaseLevel: 1}}

	prof.Advance(fielded, 5)
	if prof["react"] != 5 {
		t.Fatalf("expected react at 5, got %d", prof["react"])
	}
	if prof["vue"] != 5 {
		t.Fatalf("expected vue capped at 5, got %d", prof["vue"])
	}

	// Advancing again keeps everything inside the cap.
	prof.Advance(fielded, 5)
	for id, lvl := range prof {
		if lvl < 1 || lvl > 5 {
			t.Fatalf("%s escaped [1,5]: %d", id, lvl)
		}
	}
}

func TestAdvanceSeedsFromBaseLevel(t *testing.T) {
	prof := Proficiency{}
	prof.Advance([]Card{{ID: "django", BaseLevel: 2}}, 5)
	if prof["django"] != 3 {
		t.Fatalf("expected base 2 + 1 = 3, got %d", prof["django"])
	}
}

func TestSeedKeepsEarlierLevel(t *testing.T) {
	prof := Proficiency{"react": 4}
	prof.Seed(Card{ID: "react", BaseLevel: 1}, 5)
	if prof["react"] != 4 {
		t.Fatalf("re-acquisition must keep the leveled entry, got %d", prof["react"])
	}

	prof.Seed(Card{ID: "vue", BaseLevel: 1}, 5)
	if prof["vue"] != 1 {
		t.Fatalf("first acquisition seeds base level, got %d", prof["vue"])
	}
}

func TestSetClamps(t *testing.T) {
	prof := Proficiency{}
	prof.Set("react", 9, 5)
	if prof["react"] != 5 {
		t.Fatalf("expected clamp to 5, got %d", prof["react"])
	}
	prof.Set("react", 0, 5)
	if prof["react"] != 1 {
		t.Fatalf("expected clamp to 1, got %d", prof["react"])
	}
}

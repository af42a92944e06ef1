package game

import (
	"errors"
	"testing"
	"time"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e := NewEngine(DefaultCatalog(), DefaultRules(), nil, "m1")
	if _, err := e.AddPlayer("p1", "Alice", false); err != nil {
		t.Fatalf("add player: %v", err)
	}
	if _, err := e.AddPlayer("p2", "Bob", false); err != nil {
		t.Fatalf("add player: %v", err)
	}
	e.StartMatch(time.Now())
	e.BeginPreparation(time.Now())
	return e
}

func TestSampleHasNoDuplicates(t *testing.T) {
	cat := DefaultCatalog()
	for i := 0; i < 20; i++ {
		sample := cat.Sample(5)
		if len(sample) != 5 {
			t.Fatalf("expected 5 cards, got %d", len(sample))
		}
		seen := map[string]bool{}
		for _, c := range sample {
			if seen[c.ID] {
				t.Fatalf("duplicate card %s in sample", c.ID)
			}
			seen[c.ID] = true
		}
	}
}

func TestSampleCapsAtCatalogSize(t *testing.T) {
	cat := DefaultCatalog()
	if got := len(cat.Sample(1000)); got != cat.Size() {
		t.Fatalf("expected %d, got %d", cat.Size(), got)
	}
}

func TestPurchaseDeductsAndShrinksOffer(t *testing.T) {
	e := newTestEngine(t)
	p := e.State.PlayerByID("p1")
	before := p.Resource
	offerBefore := len(e.State.Shop)
	cost := e.State.Shop[0].Cost

	card, err := e.Purchase("p1", 0)
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if p.Resource != before-cost {
		t.Fatalf("expected resource %d, got %d", before-cost, p.Resource)
	}
	if len(e.State.Shop) != offerBefore-1 {
		t.Fatalf("offer must shrink by one, got %d", len(e.State.Shop))
	}
	if len(p.Holding) != 1 || p.Holding[0].ID != card.ID {
		t.Fatalf("card not in holding: %+v", p.Holding)
	}
	if p.Proficiency[card.ID] != card.BaseLevel {
		t.Fatalf("proficiency not seeded: %v", p.Proficiency)
	}
}

func TestPurchaseInsufficientLeavesStateUnchanged(t *testing.T) {
	e := newTestEngine(t)
	p := e.State.PlayerByID("p1")
	p.Resource = 0
	offerBefore := len(e.State.Shop)

	_, err := e.Purchase("p1", 0)
	if !errors.Is(err, ErrInsufficientResource) {
		t.Fatalf("expected ErrInsufficientResource, got %v", err)
	}
	if p.Resource != 0 || len(p.Holding) != 0 || len(e.State.Shop) != offerBefore {
		t.Fatalf("state mutated on rejected purchase")
	}
}

func TestPurchaseKeepsLeveledProficiency(t *testing.T) {
	e := newTestEngine(t)
	p := e.State.PlayerByID("p1")
	cardID := e.State.Shop[0].ID
	p.Proficiency[cardID] = 3
	p.Resource = 100

	if _, err := e.Purchase("p1", 0); err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if p.Proficiency[cardID] != 3 {
		t.Fatalf("re-acquired card lost its level: %d", p.Proficiency[cardID])
	}
}

func TestRerollInsufficientFailsAndOfferUnchanged(t *testing.T) {
	// Reroll cost 3 against resource 2 must reject with the offer intact.
	e := newTestEngine(t)
	p := e.State.PlayerByID("p1")
	p.Resource = 2
	offer := append([]Card(nil), e.State.Shop...)

	err := e.Reroll("p1")
	if !errors.Is(err, ErrInsufficientResource) {
		t.Fatalf("expected ErrInsufficientResource, got %v", err)
	}
	if p.Resource != 2 {
		t.Fatalf("resource changed on rejected reroll: %d", p.Resource)
	}
	for i, c := range e.State.Shop {
		if c.ID != offer[i].ID {
			t.Fatalf("offer changed on rejected reroll")
		}
	}
}

func TestRerollDeductsAndReplacesOffer(t *testing.T) {
	e := newTestEngine(t)
	p := e.State.PlayerByID("p1")
	p.Resource = 10

	if err := e.Reroll("p1"); err != nil {
		t.Fatalf("reroll: %v", err)
	}
	if p.Resource != 10-e.Rules.RerollCost {
		t.Fatalf("expected %d, got %d", 10-e.Rules.RerollCost, p.Resource)
	}
	if len(e.State.Shop) != e.Rules.ShopSize {
		t.Fatalf("offer not refilled, got %d", len(e.State.Shop))
	}
}

func TestPurchaseOutsidePreparationRejected(t *testing.T) {
	e := newTestEngine(t)
	e.BeginEvaluation(time.Now())
	if _, err := e.Purchase("p1", 0); !errors.Is(err, ErrPhaseMismatch) {
		t.Fatalf("expected ErrPhaseMismatch, got %v", err)
	}
}

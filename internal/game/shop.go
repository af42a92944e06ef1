package game

// RefreshShop replaces the whole offer with a fresh catalog sample. Every
// card in the offer shows its catalog base level; ownership history only
// matters once a card lands in a player's holding.
func (e *Engine) RefreshShop() {
	e.State.Shop = e.Catalog.Sample(e.Rules.ShopSize)
}

// Purchase moves offer[index] into the buyer's holding. The resource check
// happens before any mutation, so a rejected purchase leaves state
// untouched. The offer shrinks and is not refilled until the next reroll.
func (e *Engine) Purchase(playerID string, index int) (Card, error) {
	p := e.State.PlayerByID(playerID)
	if p == nil {
		return Card{}, ErrUnknownPlayer
	}
	if !phaseAllows(e.State.Phase, "purchase") {
		return Card{}, ErrPhaseMismatch
	}
	if index < 0 || index >= len(e.State.Shop) {
		return Card{}, ErrUnknownCard
	}
	card := e.State.Shop[index]
	if p.Resource < card.Cost {
		return Card{}, ErrInsufficientResource
	}

	p.Resource -= card.Cost
	if e.Ledger != nil {
		e.Ledger.Debit(p.ID, card.Cost, p.Resource, "card_purchase", "card", card.ID)
	}
	p.Holding = append(p.Holding, card)
	p.Proficiency.Seed(card, e.Rules.MaxProficiencyLevel)
	e.State.Shop = append(e.State.Shop[:index], e.State.Shop[index+1:]...)
	return card, nil
}

// Reroll is the paid variant; it rejects atomically when the player cannot
// cover the configured cost.
func (e *Engine) Reroll(playerID string) error {
	p := e.State.PlayerByID(playerID)
	if p == nil {
		return ErrUnknownPlayer
	}
	if !phaseAllows(e.State.Phase, "reroll") {
		return ErrPhaseMismatch
	}
	cost := e.Rules.RerollCost
	if cost > 0 && p.Resource < cost {
		return ErrInsufficientResource
	}
	if cost > 0 {
		p.Resource -= cost
		if e.Ledger != nil {
			e.Ledger.Debit(p.ID, cost, p.Resource, "shop_reroll", "round", e.roundRef())
		}
	}
	e.RefreshShop()
	return nil
}

// FreeReroll is the forced round-start refresh; no cost, no phase gate.
func (e *Engine) FreeReroll() {
	e.RefreshShop()
}

package game

// Proficiency maps card id to the player's level for that card. Absence
// means the card was never acquired this match; entries are never deleted
// mid-match. Levels stay inside [1, maxLevel].
type Proficiency map[string]int

// LevelOf falls back to the card's catalog base level when the ledger has
// no entry.
func (p Proficiency) LevelOf(card Card) int {
	if lvl, ok := p[card.ID]; ok {
		return lvl
	}
	return card.BaseLevel
}

// Seed records the first-acquisition level. A card owned and leveled
// earlier in the match keeps its ledger level.
func (p Proficiency) Seed(card Card, maxLevel int) {
	if _, ok := p[card.ID]; !ok {
		p[card.ID] = clampLevel(card.BaseLevel, maxLevel)
	}
}

func (p Proficiency) Set(cardID string, level, maxLevel int) {
	p[cardID] = clampLevel(level, maxLevel)
}

// Advance bumps each fielded card's level by exactly one, capped at
// maxLevel. Cards already at max are unaffected.
func (p Proficiency) Advance(fielded []Card, maxLevel int) {
	for _, card := range fielded {
		p[card.ID] = clampLevel(p.LevelOf(card)+1, maxLevel)
	}
}

// MaxedCount reports the cards that reached maxLevel.
func (p Proficiency) MaxedCount(maxLevel int) int {
	n := 0
	for _, lvl := range p {
		if lvl >= maxLevel {
			n++
		}
	}
	return n
}

func clampLevel(level, maxLevel int) int {
	if level < 1 {
		return 1
	}
	if maxLevel >= 1 && level > maxLevel {
		return maxLevel
	}
	return level
}

package game

import (
	"math/rand"
	"strconv"
	"strings"
	"time"

	"pitch-arena/internal/ledger"
)

// Engine drives one match. All methods assume the caller serializes access
// to the same match; the coordinator holds a per-match lock around every
// call, so there is a single authoritative timeline per aggregate.
type Engine struct {
	Catalog *Catalog
	Rules   Rules
	Ledger  *ledger.Ledger
	State   *MatchState

	rnd *rand.Rand
}

func NewEngine(catalog *Catalog, rules Rules, led *ledger.Ledger, matchID string) *Engine {
	return &Engine{
		Catalog: catalog,
		Rules:   rules,
		Ledger:  led,
		State: &MatchState{
			MatchID: matchID,
			Round:   1,
			Phase:   PhaseWaiting,
			Pending: map[string]Evaluation{},
		},
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Advance moves the match to the given phase and stamps PhaseStartedAt.
// Re-advancing into the current phase resets the deadline.
func (e *Engine) Advance(phase Phase, now time.Time) {
	e.State.Phase = phase
	e.State.PhaseStartedAt = now
}

// AddPlayer appends to the roster in join order. The first player becomes
// host. Valid only before the match starts.
func (e *Engine) AddPlayer(id, name string, filler bool) (*Player, error) {
	if e.State.Phase != PhaseWaiting && e.State.Phase != PhaseMatching {
		return nil, ErrPhaseMismatch
	}
	p := &Player{
		ID:          id,
		Name:        name,
		Resource:    e.Rules.InitialResource,
		Proficiency: Proficiency{},
		Connected:   true,
		Filler:      filler,
	}
	e.State.Roster = append(e.State.Roster, p)
	if e.State.HostID == "" && !filler {
		e.State.HostID = id
	}
	return p, nil
}

// StartMatch finalizes the roster, draws the theme and judging direction,
// stocks the shop and enters Matching. Players confirm readiness there.
func (e *Engine) StartMatch(now time.Time) {
	e.State.Round = 1
	e.State.Theme = Themes[e.rnd.Intn(len(Themes))]
	e.State.Direction = Directions[e.rnd.Intn(len(Directions))]
	e.State.History = nil
	e.State.Pending = map[string]Evaluation{}
	e.RefreshShop()
	e.Advance(PhaseMatching, now)
}

func (e *Engine) SetReady(playerID string) error {
	p := e.State.PlayerByID(playerID)
	if p == nil {
		return ErrUnknownPlayer
	}
	if !phaseAllows(e.State.Phase, "ready") {
		return ErrPhaseMismatch
	}
	p.Ready = true
	return nil
}

// AllReady ignores disconnected players and auto-readies fillers, so a
// leaver never wedges an unbounded phase.
func (e *Engine) AllReady() bool {
	for _, p := range e.State.Roster {
		if !p.Connected || p.Filler {
			continue
		}
		if !p.Ready {
			return false
		}
	}
	return true
}

func (e *Engine) clearReady() {
	for _, p := range e.State.Roster {
		p.Ready = false
	}
}

// BeginPreparation opens the buy/field/pitch window for the current round.
func (e *Engine) BeginPreparation(now time.Time) {
	e.clearReady()
	e.Advance(PhasePreparation, now)
}

func (e *Engine) BeginSubmissionReview(now time.Time) {
	e.clearReady()
	e.Advance(PhaseSubmissionReview, now)
}

func (e *Engine) BeginEvaluation(now time.Time) {
	e.State.Pending = map[string]Evaluation{}
	e.Advance(PhaseEvaluation, now)
}

func (e *Engine) SelectForField(playerID string, cardIDs []string) error {
	p := e.State.PlayerByID(playerID)
	if p == nil {
		return ErrUnknownPlayer
	}
	if !phaseAllows(e.State.Phase, "field") {
		return ErrPhaseMismatch
	}
	if len(cardIDs) > e.Rules.MaxFielded {
		return ErrInvalidSelection
	}
	selection := make([]Card, 0, len(cardIDs))
	seen := map[string]bool{}
	for _, id := range cardIDs {
		if seen[id] {
			return ErrInvalidSelection
		}
		seen[id] = true
		found := false
		for _, held := range p.Holding {
			if held.ID == id {
				selection = append(selection, held)
				found = true
				break
			}
		}
		if !found {
			return ErrInvalidSelection
		}
	}
	p.Fielded = selection
	return nil
}

func (e *Engine) SubmitPitch(playerID, text string) error {
	p := e.State.PlayerByID(playerID)
	if p == nil {
		return ErrUnknownPlayer
	}
	if !phaseAllows(e.State.Phase, "pitch") {
		return ErrPhaseMismatch
	}
	p.Pitch = strings.TrimSpace(text)
	return nil
}

// Submission is what goes to the oracle for one player. A missing or
// invalid submission still consumes the round with the default input.
type Submission struct {
	PlayerID   string
	Pitch      string
	TechNames  []string
	TechLevels map[string]int
}

func (e *Engine) SubmissionFor(p *Player) Submission {
	sub := Submission{
		PlayerID:   p.ID,
		Pitch:      p.Pitch,
		TechLevels: map[string]int{},
	}
	if sub.Pitch == "" {
		sub.Pitch = "no idea submitted"
	}
	if len(p.Fielded) == 0 {
		sub.TechNames = []string{"no technology"}
		return sub
	}
	for _, card := range p.Fielded {
		sub.TechNames = append(sub.TechNames, card.Name)
		sub.TechLevels[card.Name] = p.Proficiency.LevelOf(card)
	}
	return sub
}

// RecordEvaluation stores one player's oracle verdict for the round.
func (e *Engine) RecordEvaluation(playerID string, ev Evaluation) {
	e.State.Pending[playerID] = ev
}

func (e *Engine) EvaluationComplete() bool {
	return len(e.State.Pending) >= len(e.State.Roster)
}

// SettleRound converts pending evaluations into final player state, in
// roster order. Each player's score -> resource -> proficiency sequence
// applies atomically relative to that player's own data. Per-round fields
// are cleared afterwards and the match enters RoundResult.
func (e *Engine) SettleRound(now time.Time) []RoundOutcome {
	outcomes := make([]RoundOutcome, 0, len(e.State.Roster))
	for _, p := range e.State.Roster {
		ev, ok := e.State.Pending[p.ID]
		if !ok {
			ev = Evaluation{Score: e.Rules.NeutralFallbackScore, Fallback: true}
		}
		fieldBonus := e.Rules.FieldTechBonus(p.Fielded, p.Proficiency)
		roundScore := e.Rules.RoundScore(ev.Score, fieldBonus)
		gain := e.Rules.ResourceGain(roundScore)

		p.Score += roundScore
		p.Resource += gain
		if e.Ledger != nil {
			e.Ledger.Credit(p.ID, gain, p.Resource, "round_settlement", "round", e.roundRef())
		}
		p.Proficiency.Advance(p.Fielded, e.Rules.MaxProficiencyLevel)

		out := RoundOutcome{
			Round:           e.State.Round,
			PlayerID:        p.ID,
			OracleScore:     ev.Score,
			FieldBonus:      fieldBonus,
			RoundScore:      roundScore,
			ResourceGain:    gain,
			FieldedNames:    cardNames(p.Fielded),
			Commentary:      ev.Commentary,
			IllustrationURL: ev.IllustrationURL,
			Fallback:        ev.Fallback,
		}
		outcomes = append(outcomes, out)
		e.State.History = append(e.State.History, out)

		p.Fielded = nil
		p.Pitch = ""
	}
	e.State.Pending = map[string]Evaluation{}
	e.clearReady()
	e.Advance(PhaseRoundResult, now)
	return outcomes
}

// AdvanceRound moves past RoundResult: either into the next Preparation
// (with a free shop reroll) or into FinalRanking when rounds are spent.
func (e *Engine) AdvanceRound(now time.Time) bool {
	next := e.State.Round + 1
	e.State.Round = next
	if next > e.Rules.MaxRounds {
		e.EnterFinalRanking(now)
		return true
	}
	e.FreeReroll()
	e.BeginPreparation(now)
	return false
}

// EnterFinalRanking applies the max-level lump bonus exactly once and
// parks the match in its terminal phase.
func (e *Engine) EnterFinalRanking(now time.Time) []Standing {
	if !e.State.finalBonusApplied {
		for _, p := range e.State.Roster {
			bonus := e.Rules.FinalBonus(p.Proficiency)
			p.Score += bonus
		}
		e.State.finalBonusApplied = true
	}
	e.Advance(PhaseFinalRanking, now)
	return Standings(e.State.Roster)
}

// Restart rewinds everything to a fresh Waiting state with the same
// roster identities.
func (e *Engine) Restart(now time.Time) error {
	if !phaseAllows(e.State.Phase, "restart") {
		return ErrPhaseMismatch
	}
	for _, p := range e.State.Roster {
		p.Score = 0
		p.Resource = e.Rules.InitialResource
		p.Holding = nil
		p.Fielded = nil
		p.Pitch = ""
		p.Proficiency = Proficiency{}
		p.Ready = false
	}
	e.State.Round = 1
	e.State.History = nil
	e.State.Pending = map[string]Evaluation{}
	e.State.Shop = nil
	e.State.finalBonusApplied = false
	e.Advance(PhaseWaiting, now)
	return nil
}

// Disconnect degrades the player to a liveness flag; round timers are
// unaffected and the match continues on schedule.
func (e *Engine) Disconnect(playerID string) {
	if p := e.State.PlayerByID(playerID); p != nil {
		p.Connected = false
	}
}

func (e *Engine) Reconnect(playerID string) {
	if p := e.State.PlayerByID(playerID); p != nil {
		p.Connected = true
	}
}

func (e *Engine) roundRef() string {
	return e.State.MatchID + ":" + strconv.Itoa(e.State.Round)
}

func cardNames(cards []Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.Name)
	}
	return out
}

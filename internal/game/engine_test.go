package game

import (
	"errors"
	"testing"
	"time"
)

func TestPhaseExpiryIsPureAndConvergent(t *testing.T) {
	r := DefaultRules()
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m := &MatchState{Phase: PhasePreparation, PhaseStartedAt: start}

	early := start.Add(r.PreparationBudget - time.Second)
	late := start.Add(r.PreparationBudget + time.Minute)

	if m.PhaseExpired(early, r) {
		t.Fatalf("expired before budget")
	}
	// Same inputs, same answer, any number of times.
	for i := 0; i < 3; i++ {
		if !m.PhaseExpired(late, r) {
			t.Fatalf("missed-tick recheck %d did not converge", i)
		}
	}
	if m.TimeLeft(late, r) != 0 {
		t.Fatalf("time left must floor at zero")
	}
}

func TestUnboundedPhasesNeverExpire(t *testing.T) {
	r := DefaultRules()
	for _, phase := range []Phase{PhaseWaiting, PhaseMatching, PhaseEvaluation, PhaseFinalRanking} {
		m := &MatchState{Phase: phase, PhaseStartedAt: time.Unix(0, 0)}
		if m.PhaseExpired(time.Now(), r) {
			t.Fatalf("%s expired from a timer", phase)
		}
	}
}

func TestAdvanceResetsDeadline(t *testing.T) {
	e := newTestEngine(t)
	first := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	e.Advance(PhasePreparation, first)
	later := first.Add(30 * time.Second)
	e.Advance(PhasePreparation, later)
	if !e.State.PhaseStartedAt.Equal(later) {
		t.Fatalf("re-advance must restamp PhaseStartedAt")
	}
}

func TestSelectForFieldValidation(t *testing.T) {
	e := newTestEngine(t)
	p := e.State.PlayerByID("p1")
	p.Resource = 100
	for i := 0; i < 3; i++ {
		if _, err := e.Purchase("p1", 0); err != nil {
			t.Fatalf("purchase %d: %v", i, err)
		}
	}
	held := []string{p.Holding[0].ID, p.Holding[1].ID}
	if err := e.SelectForField("p1", held); err != nil {
		t.Fatalf("valid selection rejected: %v", err)
	}
	if len(p.Fielded) != 2 {
		t.Fatalf("expected 2 fielded, got %d", len(p.Fielded))
	}

	if err := e.SelectForField("p1", []string{"not-held"}); !errors.Is(err, ErrInvalidSelection) {
		t.Fatalf("expected ErrInvalidSelection for unheld card, got %v", err)
	}
	over := []string{p.Holding[0].ID, p.Holding[1].ID, p.Holding[2].ID, p.Holding[2].ID}
	if err := e.SelectForField("p1", over); !errors.Is(err, ErrInvalidSelection) {
		t.Fatalf("expected ErrInvalidSelection for oversized selection, got %v", err)
	}
	// Failed edits leave the previous selection in place.
	if len(p.Fielded) != 2 {
		t.Fatalf("rejected selection clobbered fielded set")
	}
}

func TestSubmissionDefaultsWhenEmpty(t *testing.T) {
	e := newTestEngine(t)
	sub := e.SubmissionFor(e.State.PlayerByID("p1"))
	if sub.Pitch != "no idea submitted" {
		t.Fatalf("expected default pitch, got %q", sub.Pitch)
	}
	if len(sub.TechNames) != 1 || sub.TechNames[0] != "no technology" {
		t.Fatalf("expected default tech names, got %v", sub.TechNames)
	}
}

func TestSettleRoundAppliesScoreResourceAndLevels(t *testing.T) {
	e := newTestEngine(t)
	p := e.State.PlayerByID("p1")
	p.Resource = 100
	if _, err := e.Purchase("p1", 0); err != nil {
		t.Fatalf("purchase: %v", err)
	}
	cardID := p.Holding[0].ID
	p.Proficiency[cardID] = 3
	if err := e.SelectForField("p1", []string{cardID}); err != nil {
		t.Fatalf("field: %v", err)
	}

	resourceBefore := p.Resource
	e.BeginEvaluation(time.Now())
	e.RecordEvaluation("p1", Evaluation{Score: 60})
	e.RecordEvaluation("p2", Evaluation{Score: 40})
	outcomes := e.SettleRound(time.Now())

	if e.State.Phase != PhaseRoundResult {
		t.Fatalf("expected round_result, got %s", e.State.Phase)
	}
	if p.Score != 75 {
		t.Fatalf("expected score 75, got %d", p.Score)
	}
	if p.Resource != resourceBefore+6 {
		t.Fatalf("expected resource %d, got %d", resourceBefore+6, p.Resource)
	}
	if p.Proficiency[cardID] != 4 {
		t.Fatalf("expected level 4 after fielding, got %d", p.Proficiency[cardID])
	}
	if len(p.Fielded) != 0 || p.Pitch != "" {
		t.Fatalf("per-round fields not cleared")
	}
	if len(outcomes) != 2 || len(e.State.History) != 2 {
		t.Fatalf("expected outcome per player, got %d/%d", len(outcomes), len(e.State.History))
	}
	if len(e.State.Pending) != 0 {
		t.Fatalf("pending evaluations not cleared")
	}
}

func TestSettleRoundFallsBackWhenEvaluationMissing(t *testing.T) {
	e := newTestEngine(t)
	e.BeginEvaluation(time.Now())
	e.RecordEvaluation("p1", Evaluation{Score: 80})
	outcomes := e.SettleRound(time.Now())

	var p2Outcome *RoundOutcome
	for i := range outcomes {
		if outcomes[i].PlayerID == "p2" {
			p2Outcome = &outcomes[i]
		}
	}
	if p2Outcome == nil {
		t.Fatalf("no outcome for p2")
	}
	if !p2Outcome.Fallback || p2Outcome.OracleScore != e.Rules.NeutralFallbackScore {
		t.Fatalf("expected neutral fallback, got %+v", p2Outcome)
	}
}

func TestAdvanceRoundGoesToPreparationThenFinalRanking(t *testing.T) {
	e := newTestEngine(t)
	e.BeginEvaluation(time.Now())
	e.SettleRound(time.Now())

	if done := e.AdvanceRound(time.Now()); done {
		t.Fatalf("match ended after round 1 of 2")
	}
	if e.State.Phase != PhasePreparation || e.State.Round != 2 {
		t.Fatalf("expected preparation round 2, got %s round %d", e.State.Phase, e.State.Round)
	}
	if len(e.State.Shop) != e.Rules.ShopSize {
		t.Fatalf("free reroll did not restock the shop")
	}

	e.BeginEvaluation(time.Now())
	e.SettleRound(time.Now())
	if done := e.AdvanceRound(time.Now()); !done {
		t.Fatalf("match must end after the last round")
	}
	if e.State.Phase != PhaseFinalRanking {
		t.Fatalf("expected final_ranking, got %s", e.State.Phase)
	}
}

func TestFinalBonusAppliedExactlyOnce(t *testing.T) {
	e := newTestEngine(t)
	p := e.State.PlayerByID("p1")
	p.Score = 120
	p.Proficiency["react"] = 5

	e.EnterFinalRanking(time.Now())
	if p.Score != 220 {
		t.Fatalf("expected 220 after single maxed-card bonus, got %d", p.Score)
	}
	// Re-entering the terminal phase must not pay again.
	e.EnterFinalRanking(time.Now())
	if p.Score != 220 {
		t.Fatalf("final bonus applied twice: %d", p.Score)
	}
}

func TestRestartResetsMatch(t *testing.T) {
	e := newTestEngine(t)
	p := e.State.PlayerByID("p1")
	p.Score = 300
	p.Proficiency["react"] = 5
	e.EnterFinalRanking(time.Now())

	if err := e.Restart(time.Now()); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if e.State.Phase != PhaseWaiting || e.State.Round != 1 {
		t.Fatalf("expected waiting round 1, got %s round %d", e.State.Phase, e.State.Round)
	}
	if p.Score != 0 || p.Resource != e.Rules.InitialResource || len(p.Proficiency) != 0 {
		t.Fatalf("player state not reset: %+v", p)
	}

	// Restart is only valid from the terminal phase.
	e.BeginPreparation(time.Now())
	if err := e.Restart(time.Now()); !errors.Is(err, ErrPhaseMismatch) {
		t.Fatalf("expected ErrPhaseMismatch, got %v", err)
	}
}

func TestDisconnectKeepsMatchOnSchedule(t *testing.T) {
	e := newTestEngine(t)
	e.Disconnect("p2")
	p2 := e.State.PlayerByID("p2")
	if p2.Connected {
		t.Fatalf("disconnect did not flag liveness")
	}
	if err := e.SetReady("p1"); err != nil {
		t.Fatalf("ready: %v", err)
	}
	if !e.AllReady() {
		t.Fatalf("disconnected player must not block readiness")
	}
}

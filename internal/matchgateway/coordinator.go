package matchgateway

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"pitch-arena/internal/game"
	"pitch-arena/internal/ledger"
	"pitch-arena/internal/oracle"

	"github.com/rs/zerolog/log"
)

const (
	defaultSweepInterval = 500 * time.Millisecond
	// Slack past the per-player oracle grace before the sweep force-settles
	// an Evaluation phase whose dispatch goroutines never reported back.
	evaluationSettleSlack = 5 * time.Second
)

var (
	errSessionNotFound = errors.New("session_not_found")
	errNameRequired    = errors.New("name_required")
	errNotHost         = errors.New("not_host")
	errUnknownAction   = errors.New("unknown_action")
)

var fillerNames = []string{"Engineer Taro", "Coder Hanako", "Developer Jiro"}

type session struct {
	id       string
	playerID string
	name     string
	runtime  *matchRuntime
	buffer   *EventBuffer
}

// matchRuntime owns one match aggregate. Its mutex serializes every engine
// call, giving the match a single authoritative timeline. Lock order is
// always Coordinator.mu before matchRuntime.mu, never the reverse.
type matchRuntime struct {
	id           string
	mu           sync.Mutex
	engine       *game.Engine
	ledger       *ledger.Ledger
	sessions     map[string]*session
	publicBuffer *EventBuffer
}

type Coordinator struct {
	catalog   *game.Catalog
	rules     game.Rules
	judge     oracle.Evaluator
	lobbySize int

	mu       sync.Mutex
	sessions map[string]*session
	matches  map[string]*matchRuntime
	lobby    *matchRuntime
}

func NewCoordinator(catalog *game.Catalog, rules game.Rules, judge oracle.Evaluator, lobbySize int) *Coordinator {
	if lobbySize < 1 {
		lobbySize = 4
	}
	return &Coordinator{
		catalog:   catalog,
		rules:     rules,
		judge:     judge,
		lobbySize: lobbySize,
		sessions:  map[string]*session{},
		matches:   map[string]*matchRuntime{},
	}
}

// StartJanitor drives phase expiry. Deadlines are recomputed from
// PhaseStartedAt on every sweep, so a missed or late tick converges to the
// same transition the punctual tick would have made.
func (c *Coordinator) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				c.sweepPhaseTransitions(now)
			}
		}
	}()
}

func (c *Coordinator) sweepPhaseTransitions(now time.Time) {
	c.mu.Lock()
	runtimes := make([]*matchRuntime, 0, len(c.matches))
	for _, rt := range c.matches {
		runtimes = append(runtimes, rt)
	}
	c.mu.Unlock()

	for _, rt := range runtimes {
		rt.mu.Lock()
		st := rt.engine.State
		switch {
		case st.PhaseExpired(now, c.rules):
			switch st.Phase {
			case game.PhasePreparation:
				c.beginSubmissionReviewLocked(rt, now)
			case game.PhaseSubmissionReview:
				c.beginEvaluationLocked(rt, now)
			case game.PhaseRoundResult:
				c.advanceRoundLocked(rt, now)
			}
		case st.Phase == game.PhaseEvaluation &&
			now.Sub(st.PhaseStartedAt) >= c.rules.OracleGrace+evaluationSettleSlack:
			// Dispatch goroutines normally default their own player; this
			// only fires if a result went missing entirely.
			log.Warn().Str("match_id", rt.id).Msg("evaluation overran grace, settling with defaults")
			c.settleLocked(rt, now)
		}
		rt.mu.Unlock()
	}
}

// Join puts the player into the open lobby, creating one when needed.
// The first human in a lobby is its host.
func (c *Coordinator) Join(req JoinRequest) (*JoinResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errNameRequired
	}

	c.mu.Lock()
	rt := c.lobby
	if rt == nil {
		rt = c.newRuntime()
		c.lobby = rt
		c.matches[rt.id] = rt
	}

	rt.mu.Lock()
	playerID := ledger.NewID()
	player, err := rt.engine.AddPlayer(playerID, name, false)
	if err != nil {
		rt.mu.Unlock()
		c.mu.Unlock()
		return nil, err
	}
	sess := &session{
		id:       ledger.NewID(),
		playerID: playerID,
		name:     name,
		runtime:  rt,
		buffer:   NewEventBuffer(256),
	}
	rt.sessions[playerID] = sess
	c.sessions[sess.id] = sess
	full := len(rt.engine.State.Roster) >= c.lobbySize
	if full {
		c.lobby = nil
	}
	host := rt.engine.State.HostID == playerID

	sess.buffer.Append("session_joined", sess.id, map[string]any{
		"match_id":  rt.id,
		"player_id": playerID,
		"host":      host,
	})
	rt.publicBuffer.Append("player_joined", rt.id, map[string]any{
		"match_id": rt.id,
		"name":     player.Name,
		"players":  len(rt.engine.State.Roster),
	})
	if full {
		rt.engine.StartMatch(time.Now())
		c.emitPhaseLocked(rt, "match_started")
	}
	rt.mu.Unlock()
	c.mu.Unlock()

	return &JoinResponse{
		SessionID: sess.id,
		PlayerID:  playerID,
		MatchID:   rt.id,
		Host:      host,
		StreamURL: "/api/sessions/" + sess.id + "/events",
	}, nil
}

func (c *Coordinator) newRuntime() *matchRuntime {
	led := ledger.New()
	id := ledger.NewID()
	return &matchRuntime{
		id:           id,
		engine:       game.NewEngine(c.catalog, c.rules, led, id),
		ledger:       led,
		sessions:     map[string]*session{},
		publicBuffer: NewEventBuffer(256),
	}
}

// SubmitAction routes one player verb into the match, serialized on the
// runtime lock.
func (c *Coordinator) SubmitAction(sessionID string, req ActionRequest) (*ActionResponse, error) {
	sess := c.findSession(sessionID)
	if sess == nil {
		return nil, errSessionNotFound
	}
	rt := sess.runtime
	now := time.Now()

	rt.mu.Lock()
	var err error
	detachLobby := false
	switch req.Type {
	case "purchase":
		_, err = rt.engine.Purchase(sess.playerID, req.Index)
	case "reroll":
		err = rt.engine.Reroll(sess.playerID)
	case "field":
		err = rt.engine.SelectForField(sess.playerID, req.CardIDs)
	case "pitch":
		err = rt.engine.SubmitPitch(sess.playerID, req.Text)
	case "ready":
		err = rt.engine.SetReady(sess.playerID)
		if err == nil {
			c.maybeAdvanceOnReadyLocked(rt, now)
		}
	case "start":
		err = c.startMatchLocked(rt, sess.playerID, now)
		detachLobby = err == nil
	case "next":
		err = c.nextLocked(rt, sess.playerID, now)
	case "restart":
		err = c.restartLocked(rt, sess.playerID, now)
	default:
		err = errUnknownAction
	}
	if err != nil {
		rt.mu.Unlock()
		return nil, err
	}
	c.emitSnapshotsLocked(rt, now)
	resp := &ActionResponse{OK: true, Phase: string(rt.engine.State.Phase)}
	rt.mu.Unlock()

	if detachLobby {
		c.mu.Lock()
		if c.lobby == rt {
			c.lobby = nil
		}
		c.mu.Unlock()
	}
	return resp, nil
}

// startMatchLocked is the host closing the lobby early: the roster is
// topped up with filler participants and the match enters Matching.
func (c *Coordinator) startMatchLocked(rt *matchRuntime, playerID string, now time.Time) error {
	if rt.engine.State.HostID != playerID {
		return errNotHost
	}
	if rt.engine.State.Phase != game.PhaseWaiting {
		return game.ErrPhaseMismatch
	}
	for i := 0; len(rt.engine.State.Roster) < c.lobbySize; i++ {
		name := fillerNames[i%len(fillerNames)]
		if _, err := rt.engine.AddPlayer(ledger.NewID(), name, true); err != nil {
			return err
		}
	}
	rt.engine.StartMatch(now)
	c.emitPhaseLocked(rt, "match_started")
	return nil
}

func (c *Coordinator) nextLocked(rt *matchRuntime, playerID string, now time.Time) error {
	if rt.engine.State.HostID != playerID {
		return errNotHost
	}
	if rt.engine.State.Phase != game.PhaseRoundResult {
		return game.ErrPhaseMismatch
	}
	c.advanceRoundLocked(rt, now)
	return nil
}

func (c *Coordinator) restartLocked(rt *matchRuntime, playerID string, now time.Time) error {
	if rt.engine.State.HostID != playerID {
		return errNotHost
	}
	if err := rt.engine.Restart(now); err != nil {
		return err
	}
	c.emitPhaseLocked(rt, "match_reset")
	return nil
}

// maybeAdvanceOnReadyLocked advances the unbounded phases that wait on an
// explicit all-ready signal.
func (c *Coordinator) maybeAdvanceOnReadyLocked(rt *matchRuntime, now time.Time) {
	if !rt.engine.AllReady() {
		return
	}
	switch rt.engine.State.Phase {
	case game.PhaseMatching:
		rt.engine.BeginPreparation(now)
		c.emitPhaseLocked(rt, "round_started")
	case game.PhaseSubmissionReview:
		c.beginEvaluationLocked(rt, now)
	case game.PhaseRoundResult:
		c.advanceRoundLocked(rt, now)
	}
}

func (c *Coordinator) beginSubmissionReviewLocked(rt *matchRuntime, now time.Time) {
	rt.engine.BeginSubmissionReview(now)
	c.emitPhaseLocked(rt, "submission_review")
}

// beginEvaluationLocked snapshots every player's submission and fans the
// oracle calls out concurrently. Each call carries its own grace timeout
// and defaults itself on failure, so the phase timer never blocks on the
// oracle.
func (c *Coordinator) beginEvaluationLocked(rt *matchRuntime, now time.Time) {
	rt.engine.BeginEvaluation(now)
	c.emitPhaseLocked(rt, "evaluation_started")

	st := rt.engine.State
	theme, direction := st.Theme, st.Direction
	subs := make([]game.Submission, 0, len(st.Roster))
	for _, p := range st.Roster {
		subs = append(subs, rt.engine.SubmissionFor(p))
	}
	for _, sub := range subs {
		go c.evaluatePlayer(rt, theme, direction, sub)
	}
}

func (c *Coordinator) evaluatePlayer(rt *matchRuntime, theme, direction string, sub game.Submission) {
	ctx, cancel := context.WithTimeout(context.Background(), c.rules.OracleGrace)
	defer cancel()

	res, err := c.judge.Evaluate(ctx, oracle.Request{
		Theme:      theme,
		Direction:  direction,
		Pitch:      sub.Pitch,
		TechNames:  sub.TechNames,
		TechLevels: sub.TechLevels,
	})
	ev := game.Evaluation{
		Score:           oracle.ClampScore(res.TotalScore),
		Commentary:      res.Commentary,
		IllustrationURL: res.IllustrationURL,
	}
	if err != nil {
		log.Warn().Err(err).
			Str("match_id", rt.id).
			Str("player_id", sub.PlayerID).
			Msg("oracle call failed, using neutral fallback")
		ev = game.Evaluation{Score: c.rules.NeutralFallbackScore, Fallback: true}
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.engine.State.Phase != game.PhaseEvaluation {
		return
	}
	rt.engine.RecordEvaluation(sub.PlayerID, ev)
	if rt.engine.EvaluationComplete() {
		c.settleLocked(rt, time.Now())
	}
}

func (c *Coordinator) settleLocked(rt *matchRuntime, now time.Time) {
	outcomes := rt.engine.SettleRound(now)
	rt.publicBuffer.Append("round_settled", rt.id, map[string]any{
		"match_id": rt.id,
		"round":    outcomes[0].Round,
		"outcomes": outcomes,
	})
	c.emitPhaseLocked(rt, "round_result")
	c.emitSnapshotsLocked(rt, now)
}

func (c *Coordinator) advanceRoundLocked(rt *matchRuntime, now time.Time) {
	if rt.engine.AdvanceRound(now) {
		standings := game.Standings(rt.engine.State.Roster)
		rt.publicBuffer.Append("final_ranking", rt.id, map[string]any{
			"match_id":  rt.id,
			"standings": standings,
		})
		c.emitPhaseLocked(rt, "final_ranking")
	} else {
		c.emitPhaseLocked(rt, "round_started")
	}
	c.emitSnapshotsLocked(rt, now)
}

// Leave flags the player disconnected; the match and its timers continue
// on schedule for everybody else.
func (c *Coordinator) Leave(sessionID string) error {
	c.mu.Lock()
	sess := c.sessions[sessionID]
	if sess == nil {
		c.mu.Unlock()
		return errSessionNotFound
	}
	delete(c.sessions, sessionID)
	c.mu.Unlock()

	rt := sess.runtime
	rt.mu.Lock()
	rt.engine.Disconnect(sess.playerID)
	delete(rt.sessions, sess.playerID)
	rt.publicBuffer.Append("player_left", rt.id, map[string]any{
		"match_id":  rt.id,
		"player_id": sess.playerID,
	})
	rt.mu.Unlock()

	sess.buffer.Append("session_closed", sessionID, map[string]any{"reason": "client_closed"})
	sess.buffer.Close()
	return nil
}

func (c *Coordinator) State(sessionID string) (game.Snapshot, error) {
	sess := c.findSession(sessionID)
	if sess == nil {
		return game.Snapshot{}, errSessionNotFound
	}
	rt := sess.runtime
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.engine.SnapshotFor(sess.playerID, time.Now()), nil
}

// PublicState hides every player's private holding by rendering for an
// empty viewer id.
func (c *Coordinator) PublicState(matchID string) (game.Snapshot, bool) {
	c.mu.Lock()
	rt := c.matches[matchID]
	c.mu.Unlock()
	if rt == nil {
		return game.Snapshot{}, false
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.engine.SnapshotFor("", time.Now()), true
}

func (c *Coordinator) ListMatches() []MatchSummary {
	c.mu.Lock()
	runtimes := make([]*matchRuntime, 0, len(c.matches))
	for _, rt := range c.matches {
		runtimes = append(runtimes, rt)
	}
	c.mu.Unlock()

	out := make([]MatchSummary, 0, len(runtimes))
	for _, rt := range runtimes {
		rt.mu.Lock()
		st := rt.engine.State
		out = append(out, MatchSummary{
			MatchID: rt.id,
			Phase:   string(st.Phase),
			Round:   st.Round,
			Players: len(st.Roster),
			Theme:   st.Theme,
		})
		rt.mu.Unlock()
	}
	return out
}

// LedgerEntries exposes a player's resource transaction history.
func (c *Coordinator) LedgerEntries(sessionID string) ([]ledger.Entry, error) {
	sess := c.findSession(sessionID)
	if sess == nil {
		return nil, errSessionNotFound
	}
	return sess.runtime.ledger.ForPlayer(sess.playerID), nil
}

func (c *Coordinator) findSession(sessionID string) *session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessions[sessionID]
}

// PublicBuffer exposes a match's spectator event stream.
func (c *Coordinator) PublicBuffer(matchID string) *EventBuffer {
	c.mu.Lock()
	defer c.mu.Unlock()
	rt := c.matches[matchID]
	if rt == nil {
		return nil
	}
	return rt.publicBuffer
}

func (c *Coordinator) getSessionBuffer(sessionID string) *EventBuffer {
	c.mu.Lock()
	defer c.mu.Unlock()
	sess := c.sessions[sessionID]
	if sess == nil {
		return nil
	}
	return sess.buffer
}

// emitPhaseLocked fans a phase transition to every session buffer and the
// public buffer. Callers hold rt.mu.
func (c *Coordinator) emitPhaseLocked(rt *matchRuntime, event string) {
	st := rt.engine.State
	data := map[string]any{
		"match_id": rt.id,
		"phase":    string(st.Phase),
		"round":    st.Round,
	}
	for _, sess := range rt.sessions {
		sess.buffer.Append(event, sess.id, data)
	}
	rt.publicBuffer.Append(event, rt.id, data)
}

func (c *Coordinator) emitSnapshotsLocked(rt *matchRuntime, now time.Time) {
	for _, sess := range rt.sessions {
		sess.buffer.Append("state_update", sess.id, rt.engine.SnapshotFor(sess.playerID, now))
	}
}

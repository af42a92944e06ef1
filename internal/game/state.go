package game

import "time"

type Phase string

const (
	PhaseWaiting          Phase = "waiting"
	PhaseMatching         Phase = "matching"
	PhasePreparation      Phase = "preparation"
	PhaseSubmissionReview Phase = "submission_review"
	PhaseEvaluation       Phase = "evaluation"
	PhaseRoundResult      Phase = "round_result"
	PhaseFinalRanking     Phase = "final_ranking"
)

// Rules are the per-match numeric knobs. Defaults mirror the classic
// two-round setup; everything is overridable through config.
type Rules struct {
	MaxRounds              int
	InitialResource        int
	ShopSize               int
	MaxFielded             int
	RerollCost             int
	MaxProficiencyLevel    int
	FinalBonusPerMaxedCard int
	PerLevelBonus          int
	ResourceDivisor        int
	ResourceFlatBonus      int
	NeutralFallbackScore   int
	PreparationBudget      time.Duration
	SubmissionReviewBudget time.Duration
	RoundResultBudget      time.Duration
	OracleGrace            time.Duration
}

func DefaultRules() Rules {
	return Rules{
		MaxRounds:              2,
		InitialResource:        10,
		ShopSize:               5,
		MaxFielded:             3,
		RerollCost:             3,
		MaxProficiencyLevel:    5,
		FinalBonusPerMaxedCard: 100,
		PerLevelBonus:          5,
		ResourceDivisor:        50,
		ResourceFlatBonus:      5,
		NeutralFallbackScore:   50,
		PreparationBudget:      45 * time.Second,
		SubmissionReviewBudget: 10 * time.Second,
		RoundResultBudget:      20 * time.Second,
		OracleGrace:            15 * time.Second,
	}
}

// PhaseBudget returns the wall-clock budget for a phase. The second return
// is false for unbounded phases, which only advance on an explicit signal.
func (r Rules) PhaseBudget(p Phase) (time.Duration, bool) {
	switch p {
	case PhasePreparation:
		return r.PreparationBudget, true
	case PhaseSubmissionReview:
		return r.SubmissionReviewBudget, true
	case PhaseRoundResult:
		return r.RoundResultBudget, true
	default:
		return 0, false
	}
}

type Player struct {
	ID          string
	Name        string
	Score       int
	Resource    int
	Holding     []Card
	Fielded     []Card
	Pitch       string
	Proficiency Proficiency
	Connected   bool
	Ready       bool
	Filler      bool
}

// Evaluation is the oracle verdict for one player's round submission.
// Only Score feeds the scoring math; the rest is presentation passthrough.
type Evaluation struct {
	Score           int
	Commentary      string
	IllustrationURL string
	Fallback        bool
}

type RoundOutcome struct {
	Round           int      `json:"round"`
	PlayerID        string   `json:"player_id"`
	OracleScore     int      `json:"oracle_score"`
	FieldBonus      int      `json:"field_bonus"`
	RoundScore      int      `json:"round_score"`
	ResourceGain    int      `json:"resource_gain"`
	FieldedNames    []string `json:"fielded_names"`
	Commentary      string   `json:"commentary,omitempty"`
	IllustrationURL string   `json:"illustration_url,omitempty"`
	Fallback        bool     `json:"fallback,omitempty"`
}

// MatchState is the aggregate root. All mutation goes through Engine
// methods; the coordinator serializes access per match.
type MatchState struct {
	MatchID        string
	HostID         string
	Roster         []*Player
	Round          int
	Phase          Phase
	PhaseStartedAt time.Time
	Theme          string
	Direction      string
	Shop           []Card
	History        []RoundOutcome
	Pending        map[string]Evaluation

	finalBonusApplied bool
}

func (m *MatchState) PlayerByID(id string) *Player {
	for _, p := range m.Roster {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// PhaseExpired is a pure function of (now, PhaseStartedAt, budget); it is
// safe to recompute on every tick, so a missed tick still converges.
func (m *MatchState) PhaseExpired(now time.Time, rules Rules) bool {
	budget, bounded := rules.PhaseBudget(m.Phase)
	if !bounded {
		return false
	}
	return now.Sub(m.PhaseStartedAt) >= budget
}

// TimeLeft recomputes the remaining budget from the timestamp delta.
// Unbounded phases report zero.
func (m *MatchState) TimeLeft(now time.Time, rules Rules) time.Duration {
	budget, bounded := rules.PhaseBudget(m.Phase)
	if !bounded {
		return 0
	}
	left := budget - now.Sub(m.PhaseStartedAt)
	if left < 0 {
		return 0
	}
	return left
}

var Themes = []string{
	"Heart", "Light", "Power", "Life", "Dream",
	"Sky", "Time", "Love", "Way", "Beauty",
}

var Directions = []string{
	"tech-focused", "business-focused", "fun-focused",
}

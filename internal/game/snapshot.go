package game

import "time"

type CardView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Cost     int    `json:"cost"`
	Level    int    `json:"level"`
}

type OpponentView struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Score        int    `json:"score"`
	Resource     int    `json:"resource"`
	FieldedCount int    `json:"fielded_count"`
	Connected    bool   `json:"connected"`
	Ready        bool   `json:"ready"`
}

// Snapshot is the per-viewer state document pushed over SSE and returned
// by the state endpoint. Holding and fielded cards are only the viewer's
// own; opponents appear as public counters.
type Snapshot struct {
	Type           string         `json:"type"`
	MatchID        string         `json:"match_id"`
	Phase          string         `json:"phase"`
	Round          int            `json:"round"`
	MaxRounds      int            `json:"max_rounds"`
	Theme          string         `json:"theme"`
	Direction      string         `json:"direction"`
	PhaseTimeLeft  int64          `json:"phase_time_left_ms"`
	Shop           []CardView     `json:"shop"`
	Score          int            `json:"score"`
	Resource       int            `json:"resource"`
	Holding        []CardView     `json:"holding"`
	Fielded        []CardView     `json:"fielded"`
	Pitch          string         `json:"pitch"`
	Proficiency    map[string]int `json:"proficiency"`
	Opponents      []OpponentView `json:"opponents"`
	HostID         string         `json:"host_id"`
	LastOutcomes   []RoundOutcome `json:"last_outcomes,omitempty"`
	FinalStandings []Standing     `json:"final_standings,omitempty"`
}

func (e *Engine) SnapshotFor(viewerID string, now time.Time) Snapshot {
	s := e.State
	snap := Snapshot{
		Type:          "state_update",
		MatchID:       s.MatchID,
		Phase:         string(s.Phase),
		Round:         s.Round,
		MaxRounds:     e.Rules.MaxRounds,
		Theme:         s.Theme,
		Direction:     s.Direction,
		PhaseTimeLeft: s.TimeLeft(now, e.Rules).Milliseconds(),
		Shop:          cardViews(s.Shop, nil),
		HostID:        s.HostID,
	}
	viewer := s.PlayerByID(viewerID)
	if viewer != nil {
		snap.Score = viewer.Score
		snap.Resource = viewer.Resource
		snap.Holding = cardViews(viewer.Holding, viewer.Proficiency)
		snap.Fielded = cardViews(viewer.Fielded, viewer.Proficiency)
		snap.Pitch = viewer.Pitch
		snap.Proficiency = map[string]int{}
		for id, lvl := range viewer.Proficiency {
			snap.Proficiency[id] = lvl
		}
	}
	for _, p := range s.Roster {
		if p.ID == viewerID {
			continue
		}
		snap.Opponents = append(snap.Opponents, OpponentView{
			ID:           p.ID,
			Name:         p.Name,
			Score:        p.Score,
			Resource:     p.Resource,
			FieldedCount: len(p.Fielded),
			Connected:    p.Connected,
			Ready:        p.Ready,
		})
	}
	if s.Phase == PhaseRoundResult && len(s.History) > 0 {
		lastRound := s.History[len(s.History)-1].Round
		for _, out := range s.History {
			if out.Round == lastRound {
				snap.LastOutcomes = append(snap.LastOutcomes, out)
			}
		}
	}
	if s.Phase == PhaseFinalRanking {
		snap.FinalStandings = Standings(s.Roster)
	}
	return snap
}

// cardViews renders catalog cards for the wire; prof overlays the
// viewer's levels, nil keeps catalog base levels (shop display).
func cardViews(cards []Card, prof Proficiency) []CardView {
	out := make([]CardView, 0, len(cards))
	for _, c := range cards {
		lvl := c.BaseLevel
		if prof != nil {
			lvl = prof.LevelOf(c)
		}
		out = append(out, CardView{ID: c.ID, Name: c.Name, Category: c.Category, Cost: c.Cost, Level: lvl})
	}
	return out
}

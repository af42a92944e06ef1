package matchgateway

type JoinRequest struct {
	Name string `json:"name"`
}

type JoinResponse struct {
	SessionID string `json:"session_id"`
	PlayerID  string `json:"player_id"`
	MatchID   string `json:"match_id"`
	Host      bool   `json:"host"`
	StreamURL string `json:"stream_url"`
}

// ActionRequest carries every per-player verb; the coordinator threads the
// acting player explicitly from the session, never from ambient state.
type ActionRequest struct {
	Type    string   `json:"type"` // purchase|reroll|field|pitch|ready|start|next|restart
	Index   int      `json:"index,omitempty"`
	CardIDs []string `json:"card_ids,omitempty"`
	Text    string   `json:"text,omitempty"`
}

type ActionResponse struct {
	OK    bool   `json:"ok"`
	Phase string `json:"phase"`
}

type MatchSummary struct {
	MatchID string `json:"match_id"`
	Phase   string `json:"phase"`
	Round   int    `json:"round"`
	Players int    `json:"players"`
	Theme   string `json:"theme,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

package spectatorgateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pitch-arena/internal/game"
	"pitch-arena/internal/matchgateway"
	"pitch-arena/internal/oracle"
)

func newCoordinatorWithMatch(t *testing.T) (*matchgateway.Coordinator, string) {
	t.Helper()
	rules := game.DefaultRules()
	rules.OracleGrace = 2 * time.Second
	coord := matchgateway.NewCoordinator(game.DefaultCatalog(), rules, oracle.NewMockJudge(), 4)
	join, err := coord.Join(matchgateway.JoinRequest{Name: "Alice"})
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	return coord, join.MatchID
}

func TestStateHandlerReturnsPublicView(t *testing.T) {
	coord, matchID := newCoordinatorWithMatch(t)
	h := StateHandler(coord)

	req := httptest.NewRequest(http.MethodGet, "/api/public/spectate/state?match_id="+matchID, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var snap map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap["match_id"] != matchID {
		t.Fatalf("unexpected match_id: %v", snap["match_id"])
	}
	if hold, ok := snap["holding"].([]any); ok && len(hold) > 0 {
		t.Fatalf("public view must not expose a holding, got %v", hold)
	}
}

func TestStateHandlerRequiresMatchID(t *testing.T) {
	coord, _ := newCoordinatorWithMatch(t)
	h := StateHandler(coord)

	req := httptest.NewRequest(http.MethodGet, "/api/public/spectate/state", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/public/spectate/state?match_id=missing", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestEventsHandlerUnknownMatch(t *testing.T) {
	coord, _ := newCoordinatorWithMatch(t)
	h := EventsHandler(coord)

	req := httptest.NewRequest(http.MethodGet, "/api/public/spectate/events?match_id=missing", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

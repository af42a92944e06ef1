package httptransport

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pitch-arena/internal/game"
	"pitch-arena/internal/matchgateway"
	"pitch-arena/internal/oracle"

	"github.com/go-chi/chi/v5"
)

func newRouterForTest() *chi.Mux {
	rules := game.DefaultRules()
	rules.OracleGrace = 2 * time.Second
	coord := matchgateway.NewCoordinator(game.DefaultCatalog(), rules, oracle.NewMockJudge(), 4)
	return NewRouter(coord)
}

func TestHealthz(t *testing.T) {
	r := newRouterForTest()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz status %d", rec.Code)
	}
}

func TestRouterRegistersCoreRoutes(t *testing.T) {
	r := newRouterForTest()
	want := map[string]bool{
		"POST /api/sessions":                      false,
		"DELETE /api/sessions/{session_id}":       false,
		"POST /api/sessions/{session_id}/actions": false,
		"GET /api/sessions/{session_id}/state":    false,
		"GET /api/sessions/{session_id}/ledger":   false,
		"GET /api/sessions/{session_id}/events":   false,
		"GET /api/public/matches":                 false,
		"GET /api/public/matches/{match_id}":      false,
		"GET /healthz":                            false,
		"POST /mcp":                               false,
	}
	err := chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		key := method + " " + route
		if _, ok := want[key]; ok {
			want[key] = true
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	for key, seen := range want {
		if !seen {
			t.Fatalf("route not registered: %s", key)
		}
	}
}

func TestJoinThroughRouter(t *testing.T) {
	r := newRouterForTest()
	body, _ := json.Marshal(matchgateway.JoinRequest{Name: "Alice"})
	req := httptest.NewRequest(http.MethodPost, "/api/sessions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("join status %d: %s", rec.Code, rec.Body.String())
	}
	var join matchgateway.JoinResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &join); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if join.SessionID == "" {
		t.Fatalf("missing session_id: %+v", join)
	}
}

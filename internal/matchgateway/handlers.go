package matchgateway

import (
	"encoding/json"
	"errors"
	"net/http"

	"pitch-arena/internal/game"

	"github.com/go-chi/chi/v5"
)

func SessionsCreateHandler(coord *Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req JoinRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid_json")
			return
		}
		res, err := coord.Join(req)
		if err != nil {
			status, code := mapGatewayErr(err)
			writeErr(w, status, code)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(res)
	}
}

func SessionsDeleteHandler(coord *Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "session_id")
		if sessionID == "" {
			writeErr(w, http.StatusBadRequest, "session_not_found")
			return
		}
		if err := coord.Leave(sessionID); err != nil {
			status, code := mapGatewayErr(err)
			writeErr(w, status, code)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}
}

func ActionsHandler(coord *Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "session_id")
		if sessionID == "" {
			writeErr(w, http.StatusBadRequest, "session_not_found")
			return
		}
		var req ActionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid_json")
			return
		}
		res, err := coord.SubmitAction(sessionID, req)
		if err != nil {
			status, code := mapGatewayErr(err)
			writeErr(w, status, code)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(res)
	}
}

func StateHandler(coord *Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "session_id")
		snap, err := coord.State(sessionID)
		if err != nil {
			status, code := mapGatewayErr(err)
			writeErr(w, status, code)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(snap)
	}
}

func LedgerHandler(coord *Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "session_id")
		entries, err := coord.LedgerEntries(sessionID)
		if err != nil {
			status, code := mapGatewayErr(err)
			writeErr(w, status, code)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"entries": entries})
	}
}

func PublicMatchesHandler(coord *Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"matches": coord.ListMatches()})
	}
}

func PublicMatchStateHandler(coord *Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := chi.URLParam(r, "match_id")
		snap, ok := coord.PublicState(matchID)
		if !ok {
			writeErr(w, http.StatusNotFound, "match_not_found")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(snap)
	}
}

// MapGatewayErr is exported for the MCP layer, which shares the same
// error vocabulary over a different transport.
func MapGatewayErr(err error) (int, string) {
	return mapGatewayErr(err)
}

func mapGatewayErr(err error) (int, string) {
	switch {
	case errors.Is(err, errSessionNotFound):
		return http.StatusNotFound, "session_not_found"
	case errors.Is(err, errNameRequired):
		return http.StatusBadRequest, "name_required"
	case errors.Is(err, errNotHost):
		return http.StatusForbidden, "not_host"
	case errors.Is(err, errUnknownAction):
		return http.StatusBadRequest, "unknown_action"
	case errors.Is(err, game.ErrInsufficientResource):
		return http.StatusBadRequest, "insufficient_resource"
	case errors.Is(err, game.ErrInvalidSelection):
		return http.StatusBadRequest, "invalid_selection"
	case errors.Is(err, game.ErrPhaseMismatch):
		return http.StatusConflict, "phase_mismatch"
	case errors.Is(err, game.ErrUnknownPlayer):
		return http.StatusNotFound, "unknown_player"
	case errors.Is(err, game.ErrUnknownCard):
		return http.StatusBadRequest, "unknown_card"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func writeErr(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: code})
}

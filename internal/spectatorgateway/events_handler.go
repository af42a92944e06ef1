package spectatorgateway

import (
	"net/http"

	"pitch-arena/internal/matchgateway"
)

// EventsHandler streams a match's public event feed: joins, phase
// transitions, round settlements and final standings. Nothing
// player-private ever lands on this buffer.
func EventsHandler(coord *matchgateway.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("match_id")
		buf := coord.PublicBuffer(matchID)
		if buf == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"match_not_found"}`))
			return
		}
		metricSpectatorSSEConnectionsTotal.Add(1)
		metricSpectatorSSEConnectionsActive.Add(1)
		defer metricSpectatorSSEConnectionsActive.Add(-1)

		matchgateway.ServeStream(w, r, buf, "")
	}
}

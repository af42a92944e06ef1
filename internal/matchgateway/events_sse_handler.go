package matchgateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

var ssePingInterval = 15 * time.Second

// EventsSSEHandler streams a session's private event feed.
func EventsSSEHandler(coord *Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "session_id")
		buf := coord.getSessionBuffer(sessionID)
		if buf == nil {
			writeErr(w, http.StatusNotFound, "session_not_found")
			return
		}
		ServeStream(w, r, buf, sessionID)
	}
}

// ServeStream replays buf against the client's Last-Event-ID cursor, then
// streams live events with periodic pings until the client disconnects or
// the buffer closes. It owns the response once called.
func ServeStream(w http.ResponseWriter, r *http.Request, buf *EventBuffer, sessionID string) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeErr(w, http.StatusInternalServerError, "stream_not_supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	for _, ev := range buf.ReplayAfter(r.Header.Get("Last-Event-ID")) {
		if err := WriteSSE(w, ev); err != nil {
			return
		}
	}
	flusher.Flush()

	ch, cancel := buf.Subscribe()
	defer cancel()
	ticker := time.NewTicker(ssePingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, open := <-ch:
			if !open {
				return
			}
			if err := WriteSSE(w, ev); err != nil {
				return
			}
			flusher.Flush()
		case <-ticker.C:
			ping := StreamEvent{
				Event:     "ping",
				SessionID: sessionID,
				ServerTS:  time.Now().UnixMilli(),
				Data:      map[string]any{"ts": time.Now().UnixMilli()},
			}
			if err := WriteSSE(w, ping); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func WriteSSE(w http.ResponseWriter, ev StreamEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if ev.EventID != "" {
		if _, err := fmt.Fprintf(w, "id: %s\n", ev.EventID); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "event: %s\n", ev.Event); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", data)
	return err
}

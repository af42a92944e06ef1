package httptransport

import (
	"encoding/json"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"pitch-arena/internal/matchgateway"
	"pitch-arena/internal/mcpserver"
	"pitch-arena/internal/spectatorgateway"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

func NewRouter(coord *matchgateway.Coordinator) *chi.Mux {
	mcpSrv := mcpserver.New(coord)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.With(APILogMiddleware()).Get("/healthz", healthHandler())
	r.With(APILogMiddleware()).MethodFunc(http.MethodOptions, "/mcp", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Allow", "POST, GET, DELETE, OPTIONS")
		w.WriteHeader(http.StatusNoContent)
	})
	r.With(APILogMiddleware()).Method(http.MethodPost, "/mcp", mcpSrv.Handler())
	r.With(APILogMiddleware()).Method(http.MethodGet, "/mcp", mcpSrv.Handler())
	r.With(APILogMiddleware()).Method(http.MethodDelete, "/mcp", mcpSrv.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(APILogMiddleware())

		r.Get("/public/matches", matchgateway.PublicMatchesHandler(coord))
		r.Get("/public/matches/{match_id}", matchgateway.PublicMatchStateHandler(coord))
		r.Get("/public/spectate/events", spectatorgateway.EventsHandler(coord))
		r.Get("/public/spectate/state", spectatorgateway.StateHandler(coord))

		r.With(countRequests(metricSessionCreateTotal), BodyCaptureMiddleware(4096)).
			Post("/sessions", matchgateway.SessionsCreateHandler(coord))
		r.Delete("/sessions/{session_id}", matchgateway.SessionsDeleteHandler(coord))
		r.With(countRequests(metricActionSubmitTotal), BodyCaptureMiddleware(4096)).
			Post("/sessions/{session_id}/actions", matchgateway.ActionsHandler(coord))
		r.Get("/sessions/{session_id}/state", matchgateway.StateHandler(coord))
		r.Get("/sessions/{session_id}/ledger", matchgateway.LedgerHandler(coord))
		r.With(trackSSE).Get("/sessions/{session_id}/events", matchgateway.EventsSSEHandler(coord))

		r.Get("/debug/vars", expvar.Handler().ServeHTTP)
	})

	staticDir := filepath.Join("web", "static")
	if info, err := os.Stat(staticDir); err == nil && info.IsDir() {
		r.Handle("/*", http.FileServer(http.Dir(staticDir)))
	} else {
		log.Warn().Str("path", staticDir).Msg("static directory not found; skipping catch-all static route")
	}
	return r
}

func healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}
}

func LogRoutes(r chi.Router) {
	type routeDef struct {
		Method string
		Path   string
	}
	routes := make([]routeDef, 0, 64)
	err := chi.Walk(r, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, routeDef{Method: method, Path: route})
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("walk routes failed")
		return
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Registered routes (%d):\n", len(routes)))
	for _, rt := range routes {
		b.WriteString(fmt.Sprintf("  %-6s %s\n", rt.Method, rt.Path))
	}
	fmt.Print(b.String())
}

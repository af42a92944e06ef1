package main

import (
	"context"
	"net/http"
	"time"

	"pitch-arena/internal/config"
	"pitch-arena/internal/game"
	"pitch-arena/internal/logging"
	"pitch-arena/internal/matchgateway"
	"pitch-arena/internal/oracle"
	httptransport "pitch-arena/internal/transport/http"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.LoadApp()
	if err != nil {
		panic(err)
	}
	logging.Init(cfg.Log)

	catalog := loadCatalog(cfg.Server.CatalogPath)
	rules := cfg.Game.Rules(cfg.Server.OracleTimeoutSecs)
	judge := newJudge(cfg.Server)

	coord := matchgateway.NewCoordinator(catalog, rules, judge, cfg.Server.LobbySize)
	coord.StartJanitor(context.Background(), time.Duration(cfg.Server.SweepIntervalMsec)*time.Millisecond)

	r := httptransport.NewRouter(coord)
	httptransport.LogRoutes(r)

	server := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	log.Info().Str("addr", cfg.Server.HTTPAddr).Msg("http listening")
	log.Fatal().Err(server.ListenAndServe()).Msg("server stopped")
}

func loadCatalog(path string) *game.Catalog {
	if path == "" {
		return game.DefaultCatalog()
	}
	catalog, err := game.LoadCatalog(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("load card catalog failed")
	}
	log.Info().Str("path", path).Int("cards", catalog.Size()).Msg("card catalog loaded")
	return catalog
}

// newJudge selects the scoring backend: the remote judge when an endpoint
// and key are configured, the deterministic mock otherwise.
func newJudge(cfg config.ServerConfig) oracle.Evaluator {
	if cfg.OracleURL != "" && cfg.OracleAPIKey != "" {
		log.Info().Str("url", cfg.OracleURL).Msg("using remote scoring oracle")
		return oracle.NewLLMJudge(cfg.OracleURL, cfg.OracleAPIKey, time.Duration(cfg.OracleTimeoutSecs)*time.Second)
	}
	log.Info().Msg("no oracle configured; using mock judge")
	return oracle.NewMockJudge()
}

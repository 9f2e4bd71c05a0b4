package main

import (
	"errors"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/kkws0615/STOCKup/config"
	"github.com/kkws0615/STOCKup/dashboard"
	"github.com/kkws0615/STOCKup/observability"
	"github.com/kkws0615/STOCKup/resolver"
	"github.com/kkws0615/STOCKup/services"
	"github.com/kkws0615/STOCKup/watchlist"
)

func main() {
	// Load environment variables; .env is optional and production sets the
	// environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		observability.InitLogger(false)
		observability.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.Production)
	observability.InitMetrics()

	// Upstream market-data clients
	historyService := services.NewHistoryServiceWithBaseURL(cfg.MarketData.HistoryBaseURL)
	searchService := services.NewSearchServiceWithBaseURL(cfg.MarketData.SearchBaseURL)

	// Core collaborators
	res := resolver.NewResolver(historyService, searchService)
	cache := dashboard.NewHistoryCache()
	assembler := dashboard.NewAssembler(historyService, cache, cfg.CacheTTL(), cfg.Dashboard.Lookback)
	sessions := watchlist.NewSessions(cfg.SessionMaxIdle())

	app := NewApp(res, assembler, sessions)
	handler := NewAPIHandler(app, cfg)
	router := NewRouter(handler, cfg)

	observability.Info("server starting",
		"addr", cfg.HTTP.Addr,
		"lookback", string(cfg.Dashboard.Lookback),
		"cache_ttl", cfg.CacheTTL().String())

	if err := http.ListenAndServe(cfg.HTTP.Addr, router); err != nil && !errors.Is(err, http.ErrServerClosed) {
		observability.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

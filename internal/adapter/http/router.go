package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/ledgerlite/ledgerlite/internal/adapter/http/handler"
	"github.com/ledgerlite/ledgerlite/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler *handler.AccountHandler
	JournalHandler *handler.JournalHandler
	ReportHandler  *handler.ReportHandler
	HealthHandler  *handler.HealthHandler

	Logger zerolog.Logger

	// ReportsDir, when set, is served read-only under /reports for
	// downloading stored report artifacts.
	ReportsDir string
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)

	// Operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	if cfg.ReportsDir != "" {
		fs := http.StripPrefix("/reports/", http.FileServer(http.Dir(cfg.ReportsDir)))
		r.Get("/reports/*", fs.ServeHTTP)
	}

	// API v1: every business route requires a caller identity.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Actor)

		// Chart of accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{number}", cfg.AccountHandler.Get)
			r.Patch("/{number}", cfg.AccountHandler.Update)
			r.Post("/{number}/archive", cfg.AccountHandler.Archive)
			r.Get("/{number}/ledger", cfg.AccountHandler.Ledger)
		})

		// Journal entries
		r.Route("/journal-entries", func(r chi.Router) {
			r.Post("/", cfg.JournalHandler.Submit)
			r.Get("/", cfg.JournalHandler.List)
			r.Get("/{id}", cfg.JournalHandler.Get)
			r.Post("/{id}/approve", cfg.JournalHandler.Approve)
			r.Post("/{id}/reject", cfg.JournalHandler.Reject)
		})

		// Reports
		r.Route("/reports", func(r chi.Router) {
			r.Get("/balance-sheet", cfg.ReportHandler.BalanceSheet)
			r.Get("/income-statement", cfg.ReportHandler.IncomeStatement)
			r.Get("/trial-balance", cfg.ReportHandler.TrialBalance)
			r.Get("/ratios", cfg.ReportHandler.Ratios)
		})
	})

	return r
}

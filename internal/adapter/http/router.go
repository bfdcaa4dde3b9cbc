package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/luminafin/lumina/internal/adapter/http/handler"
	"github.com/luminafin/lumina/internal/adapter/http/middleware"
	"github.com/luminafin/lumina/internal/infrastructure/metrics"
)

// RouterConfig holds dependencies for the router. AssistantHandler may
// be nil when no collaborator is configured; its routes then answer 503.
type RouterConfig struct {
	LedgerHandler    *handler.LedgerHandler
	ReportHandler    *handler.ReportHandler
	SnapshotHandler  *handler.SnapshotHandler
	AssistantHandler *handler.AssistantHandler
	HealthHandler    *handler.HealthHandler
	Logger           zerolog.Logger
	Metrics          *metrics.Metrics
	CORSOrigins      []string
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	r.Use(middleware.Recovery)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// Operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", cfg.LedgerHandler.Commit)
			r.Get("/", cfg.LedgerHandler.List)
		})

		r.Get("/wallets", cfg.LedgerHandler.Wallets)
		r.Get("/categories", cfg.LedgerHandler.Categories)
		r.Get("/tags", cfg.LedgerHandler.Tags)

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", cfg.LedgerHandler.GetSettings)
			r.Put("/", cfg.LedgerHandler.UpdateSettings)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/overview", cfg.ReportHandler.Overview)
			r.Get("/budgets", cfg.ReportHandler.Budgets)
		})

		r.Get("/ledger/audit", cfg.LedgerHandler.Audit)

		r.Get("/export/json", cfg.SnapshotHandler.ExportJSON)
		r.Get("/export/csv", cfg.SnapshotHandler.ExportCSV)
		r.Post("/import", cfg.SnapshotHandler.Import)
		r.Post("/reset", cfg.LedgerHandler.Reset)

		r.Route("/assistant", func(r chi.Router) {
			if cfg.AssistantHandler != nil {
				r.Post("/receipt", cfg.AssistantHandler.ScanReceipt)
				r.Post("/insights", cfg.AssistantHandler.Insights)
			} else {
				r.Post("/receipt", assistantDisabled)
				r.Post("/insights", assistantDisabled)
			}
		})
	})

	return r
}

func assistantDisabled(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusServiceUnavailable)
	w.Write([]byte(`{"error":"assistant not configured"}`))
}

package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"portfoliotracker/pkg/portfolio"
)

// NewRouter builds the HTTP API router.
func NewRouter(core *portfolio.Core, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLoggingMiddleware(logger))
	r.Use(recoveryLoggingMiddleware(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	h := &handler{core: core, logger: logger}

	r.Get("/api/health", h.health)

	// Holdings
	r.Get("/api/holdings", h.getHoldings)
	r.Post("/api/holdings", h.addHolding)
	r.Put("/api/holdings/{id}", h.updateHolding)
	r.Delete("/api/holdings/{id}", h.deleteHolding)

	// Portfolio analytics
	r.Get("/api/portfolio/summary", h.getPortfolioSummary)
	r.Get("/api/rebalance", h.getRebalancePlan)
	r.Post("/api/rebalance/advice", h.getRebalanceAdvice)

	// Target allocations
	r.Get("/api/allocations", h.getAllocations)
	r.Put("/api/allocations", h.updateAllocations)

	// Export and audit trail
	r.Get("/api/export/csv", h.exportCSV)
	r.Get("/api/audit", h.getAuditLog)

	return r
}

type handler struct {
	core   *portfolio.Core
	logger *slog.Logger
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

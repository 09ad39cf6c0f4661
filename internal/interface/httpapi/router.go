package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"skypulse-engine/pkg/logger"
)

// NewRouter creates the chi router with middleware and API routes.
// metricsHandler is mounted on /metrics when non-nil.
func NewRouter(h *Handler, metricsHandler http.Handler, log logger.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))

	r.Get("/health", h.HealthCheck)
	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/prices", func(r chi.Router) {
			r.Post("/", h.RecordPrice)
			r.Get("/stats", h.GetStatistics)
			r.Get("/history", h.GetHistory)
			r.Get("/prediction", h.GetPrediction)
			r.Get("/seasonal", h.GetSeasonal)
			r.Get("/should-buy", h.GetShouldBuy)
		})

		r.Route("/alerts", func(r chi.Router) {
			r.Get("/", h.ListAlerts)
			r.Post("/", h.CreateAlert)
		})
	})

	return r
}

const healthCheckTimeout = 2 * time.Second

// HealthCheck reports overall status and every registered dependency.
// Any unreachable dependency makes the service degraded.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	status := "healthy"
	dependencies := make(map[string]string, len(h.checks))
	for _, c := range h.checks {
		if c.check.Healthy(ctx) {
			dependencies[c.name] = "healthy"
			continue
		}
		dependencies[c.name] = "unhealthy"
		status = "degraded"
		h.logger.Warn("Dependency unhealthy", "dependency", c.name)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":       status,
		"version":      h.version,
		"dependencies": dependencies,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
	})
}

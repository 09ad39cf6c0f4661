// Package httpapi exposes price intelligence over a JSON HTTP API.
package httpapi

import (
	"context"
	"time"

	"skypulse-engine/internal/domain/entity"
	"skypulse-engine/internal/domain/repository"
	"skypulse-engine/pkg/logger"
)

// PriceService is the price intelligence surface the API needs
type PriceService interface {
	RecordPriceWithCurrency(route string, price float64, currency string, observedAt time.Time) error
	History(route string, days int) []entity.PricePoint
	RouteStatistics(route string) (entity.RouteStatistics, bool)
	Predict(route string) *entity.PricePrediction
	SeasonalPatterns(route string) map[entity.Season]entity.SeasonalPattern
	SeasonalRecommendation(route string, travelDate time.Time) entity.SeasonalAdvice
	ShouldBuy(route string, targetPrice *float64) entity.BuyDecision
	CreateAlert(route string, targetPrice float64) (*entity.PriceAlert, error)
	ActiveAlerts(route string) []*entity.PriceAlert
}

// HealthChecker reports whether a dependency is reachable
type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

// HealthCheckFunc adapts a plain function to HealthChecker
type HealthCheckFunc func(ctx context.Context) bool

// Healthy calls f
func (f HealthCheckFunc) Healthy(ctx context.Context) bool { return f(ctx) }

type namedCheck struct {
	name  string
	check HealthChecker
}

// Handler holds shared dependencies for all endpoint handlers
type Handler struct {
	prices       PriceService
	observations repository.PriceObservationRepository
	logger       logger.Logger
	version      string
	checks       []namedCheck
}

// NewHandler creates a Handler. observations may be nil, in which case
// prices recorded through the API are kept in memory only.
func NewHandler(prices PriceService, observations repository.PriceObservationRepository, logger logger.Logger, version string) *Handler {
	return &Handler{
		prices:       prices,
		observations: observations,
		logger:       logger,
		version:      version,
	}
}

// AddHealthCheck registers a dependency reported by /health
func (h *Handler) AddHealthCheck(name string, check HealthChecker) {
	h.checks = append(h.checks, namedCheck{name: name, check: check})
}

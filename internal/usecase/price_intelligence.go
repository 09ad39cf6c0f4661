package usecase

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"skypulse-engine/internal/domain/entity"
	"skypulse-engine/pkg/logger"
	"skypulse-engine/pkg/metrics"
)

const (
	// HistoryRetention bounds every route's price history
	HistoryRetention = 365 * 24 * time.Hour

	minPointsForTrend      = 2
	minPointsForPrediction = 5
	minPointsForSeasonal   = 10
	minPointsPerSeason     = 3
)

// PriceIntelligence keeps per-route price history and alerts and derives
// trends, seasonal patterns and predictions from them. All state sits
// behind one lock so pruning, cache invalidation and alert evaluation are
// observed together.
type PriceIntelligence struct {
	mu       sync.RWMutex
	history  map[string][]entity.PricePoint
	alerts   map[string][]*entity.PriceAlert
	seasonal map[string]map[entity.Season]entity.SeasonalPattern

	now     func() time.Time
	logger  logger.Logger
	metrics *metrics.Metrics
}

// NewPriceIntelligence creates an empty price intelligence engine
func NewPriceIntelligence(logger logger.Logger, metrics *metrics.Metrics) *PriceIntelligence {
	return &PriceIntelligence{
		history:  make(map[string][]entity.PricePoint),
		alerts:   make(map[string][]*entity.PriceAlert),
		seasonal: make(map[string]map[entity.Season]entity.SeasonalPattern),
		now:      time.Now,
		logger:   logger,
		metrics:  metrics,
	}
}

// SetClock replaces the engine clock
func (pi *PriceIntelligence) SetClock(now func() time.Time) {
	pi.mu.Lock()
	defer pi.mu.Unlock()
	pi.now = now
}

// Now returns the engine clock's current time
func (pi *PriceIntelligence) Now() time.Time {
	pi.mu.RLock()
	defer pi.mu.RUnlock()
	return pi.now()
}

// RecordPrice appends an observation for route, prunes points outside the
// retention window and triggers pending alerts whose target the price
// reaches. A zero observedAt means now.
func (pi *PriceIntelligence) RecordPrice(route string, price float64, observedAt time.Time) error {
	return pi.RecordPriceWithCurrency(route, price, entity.DefaultCurrency, observedAt)
}

// RecordPriceWithCurrency is RecordPrice with an explicit currency
func (pi *PriceIntelligence) RecordPriceWithCurrency(route string, price float64, currency string, observedAt time.Time) error {
	if err := validateObservation(route, price); err != nil {
		pi.metrics.IncError("record_price")
		return err
	}
	if strings.TrimSpace(currency) == "" {
		currency = entity.DefaultCurrency
	}

	pi.mu.Lock()
	defer pi.mu.Unlock()

	if observedAt.IsZero() {
		observedAt = pi.now()
	}
	pi.appendLocked(route, entity.PricePoint{ObservedAt: observedAt, Price: price, Currency: currency})
	triggered := pi.checkAlertsLocked(route, price, observedAt)

	pi.metrics.IncPricesRecorded()
	pi.metrics.AddAlertsTriggered(triggered)
	pi.logger.Debug("Price recorded", "route", route, "price", price, "points", len(pi.history[route]))
	return nil
}

// Restore bulk-loads persisted observations without evaluating alerts.
// Observations are applied in time order.
func (pi *PriceIntelligence) Restore(observations []*entity.PriceObservation) int {
	sorted := make([]*entity.PriceObservation, 0, len(observations))
	for _, o := range observations {
		if o == nil || validateObservation(o.Route, o.Price) != nil {
			continue
		}
		sorted = append(sorted, o)
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ObservedAt.Before(sorted[j].ObservedAt) })

	pi.mu.Lock()
	defer pi.mu.Unlock()
	for _, o := range sorted {
		currency := o.Currency
		if currency == "" {
			currency = entity.DefaultCurrency
		}
		pi.appendLocked(o.Route, entity.PricePoint{ObservedAt: o.ObservedAt, Price: o.Price, Currency: currency})
	}
	return len(sorted)
}

// appendLocked adds the point, prunes and invalidates the seasonal cache.
func (pi *PriceIntelligence) appendLocked(route string, point entity.PricePoint) {
	points := append(pi.history[route], point)

	// Retention is measured from the newest known time, so backfilled
	// history is pruned against itself rather than the wall clock.
	reference := pi.now()
	for _, p := range points {
		if p.ObservedAt.After(reference) {
			reference = p.ObservedAt
		}
	}
	cutoff := reference.Add(-HistoryRetention)

	kept := points[:0]
	for _, p := range points {
		if p.ObservedAt.After(cutoff) {
			kept = append(kept, p)
		}
	}
	pi.history[route] = kept
	delete(pi.seasonal, route)
}

// History returns the points observed within the last days days
func (pi *PriceIntelligence) History(route string, days int) []entity.PricePoint {
	pi.mu.RLock()
	defer pi.mu.RUnlock()

	cutoff := pi.now().AddDate(0, 0, -days)
	result := make([]entity.PricePoint, 0)
	for _, p := range pi.history[route] {
		if p.ObservedAt.After(cutoff) {
			result = append(result, p)
		}
	}
	return result
}

// CurrentPrice returns the most recently recorded price for route
func (pi *PriceIntelligence) CurrentPrice(route string) (float64, bool) {
	pi.mu.RLock()
	defer pi.mu.RUnlock()
	return pi.currentPriceLocked(route)
}

func (pi *PriceIntelligence) currentPriceLocked(route string) (float64, bool) {
	points := pi.history[route]
	if len(points) == 0 {
		return 0, false
	}
	return points[len(points)-1].Price, true
}

// currentCurrencyLocked returns the currency of the newest point
func (pi *PriceIntelligence) currentCurrencyLocked(route string) string {
	points := pi.history[route]
	if len(points) == 0 || points[len(points)-1].Currency == "" {
		return entity.DefaultCurrency
	}
	return points[len(points)-1].Currency
}

// Routes lists every route with retained history
func (pi *PriceIntelligence) Routes() []string {
	pi.mu.RLock()
	defer pi.mu.RUnlock()
	routes := make([]string, 0, len(pi.history))
	for route, points := range pi.history {
		if len(points) > 0 {
			routes = append(routes, route)
		}
	}
	sort.Strings(routes)
	return routes
}

func (pi *PriceIntelligence) pricesLocked(route string) []float64 {
	points := pi.history[route]
	prices := make([]float64, len(points))
	for i, p := range points {
		prices[i] = p.Price
	}
	return prices
}

func validateObservation(route string, price float64) error {
	if strings.TrimSpace(route) == "" {
		return ErrInvalidRoute
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidPrice, price)
	}
	return nil
}

package usecase

import (
	"skypulse-engine/internal/domain/entity"
	"skypulse-engine/pkg/utils"
)

// RouteStatistics summarises the full retained history of route. ok is
// false when the route has no history.
func (pi *PriceIntelligence) RouteStatistics(route string) (entity.RouteStatistics, bool) {
	pi.mu.RLock()
	defer pi.mu.RUnlock()

	points := pi.history[route]
	if len(points) == 0 {
		return entity.RouteStatistics{}, false
	}

	prices := pi.pricesLocked(route)
	summary := utils.SummarizePrices(prices)
	return entity.RouteStatistics{
		Route:        route,
		CurrentPrice: prices[len(prices)-1],
		AveragePrice: summary.Mean,
		MinPrice:     summary.Min,
		MaxPrice:     summary.Max,
		MedianPrice:  summary.Median,
		Volatility:   utils.Volatility(prices),
		SampleCount:  len(prices),
		Trend:        trendOf(prices),
		LastUpdated:  points[len(points)-1].ObservedAt,
	}, true
}

package usecase

import (
	"skypulse-engine/internal/domain/entity"
	"skypulse-engine/pkg/utils"
)

const (
	trendWindow           = 3
	trendThresholdPercent = 5.0
)

// Trend compares the mean of the last three prices with the mean of the
// three before them (or whatever precedes the last three when there are
// fewer than six points). A move beyond ±5% is rising or falling.
func (pi *PriceIntelligence) Trend(route string) entity.Trend {
	pi.mu.RLock()
	defer pi.mu.RUnlock()
	return pi.trendLocked(route)
}

func (pi *PriceIntelligence) trendLocked(route string) entity.Trend {
	return trendOf(pi.pricesLocked(route))
}

func trendOf(prices []float64) entity.Trend {
	n := len(prices)
	if n < minPointsForTrend {
		return entity.TrendUnknown
	}

	recentStart := max(n-trendWindow, 0)
	recent := prices[recentStart:]
	older := prices[max(recentStart-trendWindow, 0):recentStart]
	if len(older) == 0 {
		return entity.TrendUnknown
	}

	olderAvg := utils.Mean(older)
	if olderAvg == 0 {
		return entity.TrendUnknown
	}
	diffPercent := (utils.Mean(recent) - olderAvg) / olderAvg * 100

	switch {
	case diffPercent > trendThresholdPercent:
		return entity.TrendRising
	case diffPercent < -trendThresholdPercent:
		return entity.TrendFalling
	default:
		return entity.TrendStable
	}
}

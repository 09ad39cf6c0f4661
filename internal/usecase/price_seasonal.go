package usecase

import (
	"fmt"
	"time"

	"skypulse-engine/internal/domain/entity"
	"skypulse-engine/pkg/utils"
)

const (
	seasonalBuyFactor  = 0.8
	seasonalWaitFactor = 1.2
)

// SeasonOf buckets a date by calendar month. December and January are
// Holiday, so Winter only ever receives February.
func SeasonOf(t time.Time) entity.Season {
	switch t.Month() {
	case time.December, time.January:
		return entity.SeasonHoliday
	case time.July, time.August:
		return entity.SeasonSummer
	case time.March, time.April, time.May:
		return entity.SeasonSpring
	case time.September, time.October, time.November:
		return entity.SeasonAutumn
	case time.February:
		return entity.SeasonWinter
	default:
		return entity.SeasonOffPeak
	}
}

// SeasonalPatterns groups a route's history by season. It needs at least
// ten points overall, and a season is only reported with three or more
// samples. Results are cached until the next price is recorded for the route.
func (pi *PriceIntelligence) SeasonalPatterns(route string) map[entity.Season]entity.SeasonalPattern {
	pi.mu.Lock()
	defer pi.mu.Unlock()
	return copyPatterns(pi.seasonalLocked(route))
}

func (pi *PriceIntelligence) seasonalLocked(route string) map[entity.Season]entity.SeasonalPattern {
	if cached, ok := pi.seasonal[route]; ok {
		return cached
	}

	points := pi.history[route]
	patterns := make(map[entity.Season]entity.SeasonalPattern)
	if len(points) < minPointsForSeasonal {
		return patterns
	}

	buckets := make(map[entity.Season][]float64)
	for _, p := range points {
		season := SeasonOf(p.ObservedAt)
		buckets[season] = append(buckets[season], p.Price)
	}

	for season, prices := range buckets {
		if len(prices) < minPointsPerSeason {
			continue
		}
		summary := utils.SummarizePrices(prices)
		patterns[season] = entity.SeasonalPattern{
			Season:       season,
			AveragePrice: summary.Mean,
			MinPrice:     summary.Min,
			MaxPrice:     summary.Max,
			Volatility:   utils.Volatility(prices),
			SampleCount:  len(prices),
		}
	}

	pi.seasonal[route] = patterns
	return patterns
}

// SeasonalRecommendation compares the current price with the average of
// the season travelDate falls in.
func (pi *PriceIntelligence) SeasonalRecommendation(route string, travelDate time.Time) entity.SeasonalAdvice {
	pi.mu.Lock()
	defer pi.mu.Unlock()

	season := SeasonOf(travelDate)
	pattern, ok := pi.seasonalLocked(route)[season]
	current, hasPrice := pi.currentPriceLocked(route)
	if !ok || !hasPrice {
		return entity.SeasonalAdvice{
			Recommendation: entity.RecommendationNeutral,
			Reason:         "Not enough seasonal data",
			Season:         season,
		}
	}

	advice := entity.SeasonalAdvice{
		Season:          season,
		HasSeasonalData: true,
		SeasonalAverage: pattern.AveragePrice,
		Volatility:      pattern.Volatility,
	}

	switch {
	case current < pattern.AveragePrice*seasonalBuyFactor:
		advice.Recommendation = entity.RecommendationBuyNow
		advice.Reason = fmt.Sprintf("Current price is %.0f%% below %s average", (1-current/pattern.AveragePrice)*100, season)
	case current > pattern.AveragePrice*seasonalWaitFactor:
		advice.Recommendation = entity.RecommendationWait
		advice.Reason = fmt.Sprintf("Current price is %.0f%% above %s average", (current/pattern.AveragePrice-1)*100, season)
	default:
		advice.Recommendation = entity.RecommendationNeutral
		advice.Reason = fmt.Sprintf("Price is near %s average", season)
	}
	return advice
}

func copyPatterns(in map[entity.Season]entity.SeasonalPattern) map[entity.Season]entity.SeasonalPattern {
	out := make(map[entity.Season]entity.SeasonalPattern, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

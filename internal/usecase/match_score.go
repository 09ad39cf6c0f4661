package usecase

import (
	"math"

	"skypulse-engine/internal/domain/entity"
	"skypulse-engine/pkg/utils"
)

// MatchThreshold is the minimum score for a deal to match a subscription
const MatchThreshold = 50.0

// Component weights. A subscription with no stated preference for a
// component gets the flat credit instead.
const (
	destinationWeight = 40.0
	priceWeight       = 30.0
	dateWeight        = 20.0
	originWeight      = 10.0

	destinationFlat = 20.0
	priceFlat       = 15.0
	dateFlat        = 10.0
	originFlat      = 5.0

	// Deals up to 20% over budget keep a tapering share of the price credit.
	overBudgetTolerance = 0.2
	overBudgetCredit    = 15.0

	maxScore = 100.0
)

// ScoreBreakdown is the per-component score of a deal against a subscription
type ScoreBreakdown struct {
	Destination float64 `json:"destination"`
	Price       float64 `json:"price"`
	Dates       float64 `json:"dates"`
	Origin      float64 `json:"origin"`
}

// Total sums the components, clamped to [0, 100]
func (b ScoreBreakdown) Total() float64 {
	total := b.Destination + b.Price + b.Dates + b.Origin
	if math.IsNaN(total) || total < 0 {
		return 0
	}
	return math.Min(total, maxScore)
}

// ScoreDeal computes the weighted relevance of a deal for a subscription
func ScoreDeal(deal *entity.Deal, sub *entity.Subscription) ScoreBreakdown {
	return ScoreBreakdown{
		Destination: locationScore(deal.ArrivalCity, sub.Destination, destinationWeight, destinationFlat),
		Price:       priceScore(deal.Price, sub.MaxPrice),
		Dates:       dateScore(deal.DepartureDate, sub.StartDate, sub.EndDate),
		Origin:      locationScore(deal.DepartureCity, sub.Origin, originWeight, originFlat),
	}
}

func locationScore(dealLocation, wanted string, weight, flat float64) float64 {
	if isBlank(wanted) {
		return flat
	}
	return utils.LocationSimilarity(dealLocation, wanted) * weight
}

func priceScore(price float64, maxPrice *float64) float64 {
	if maxPrice == nil || *maxPrice <= 0 || math.IsNaN(*maxPrice) || math.IsInf(*maxPrice, 0) {
		return priceFlat
	}
	if math.IsNaN(price) || price < 0 {
		return priceFlat
	}
	budget := *maxPrice

	if price <= budget {
		// cheaper relative to budget scores higher, up to the full weight
		return (1 - 0.5*price/budget) * priceWeight
	}

	overage := (price - budget) / budget
	if overage < overBudgetTolerance {
		return overBudgetCredit * (1 - overage/overBudgetTolerance)
	}
	return 0
}

func dateScore(dealDate, start, end string) float64 {
	if isBlank(start) && isBlank(end) {
		return dateFlat
	}
	return utils.DateAffinity(dealDate, start, end) * dateWeight
}

package usecase

import (
	"fmt"

	"skypulse-engine/internal/domain/entity"
	"skypulse-engine/pkg/utils"
)

// Fixed confidence per prediction branch
const (
	confidenceTrend   = 0.75
	confidenceAverage = 0.65
	confidenceNeutral = 0.5
)

// Predict derives a buy/wait recommendation from the route's trend and
// its position relative to the historical average. It returns nil with
// fewer than five points.
func (pi *PriceIntelligence) Predict(route string) *entity.PricePrediction {
	pi.mu.RLock()
	defer pi.mu.RUnlock()
	return pi.predictLocked(route)
}

func (pi *PriceIntelligence) predictLocked(route string) *entity.PricePrediction {
	prices := pi.pricesLocked(route)
	if len(prices) < minPointsForPrediction {
		return nil
	}

	summary := utils.SummarizePrices(prices)
	current := prices[len(prices)-1]
	prediction := &entity.PricePrediction{
		CurrentPrice:  current,
		PredictedHigh: summary.Max,
	}

	switch trendOf(prices) {
	case entity.TrendFalling:
		prediction.PredictedLow = current * 0.85
		prediction.Recommendation = entity.RecommendationWait
		prediction.Confidence = confidenceTrend
		prediction.Reasoning = "Prices are trending downward. Consider waiting."
	case entity.TrendRising:
		prediction.PredictedLow = current
		prediction.Recommendation = entity.RecommendationBuyNow
		prediction.Confidence = confidenceTrend
		prediction.Reasoning = "Prices are rising. Book now to secure current rate."
	default:
		switch {
		case current < summary.Mean*0.9:
			prediction.PredictedLow = current
			prediction.Recommendation = entity.RecommendationBuyNow
			prediction.Confidence = confidenceAverage
			prediction.Reasoning = "Current price is below average - good time to buy!"
		case current > summary.Mean*1.1:
			prediction.PredictedLow = summary.Mean * 0.9
			prediction.Recommendation = entity.RecommendationWait
			prediction.Confidence = confidenceAverage
			prediction.Reasoning = "Price is above average. Consider waiting."
		default:
			prediction.PredictedLow = summary.Min
			prediction.Recommendation = entity.RecommendationNeutral
			prediction.Confidence = confidenceNeutral
			prediction.Reasoning = "Price is close to average. No strong signal."
		}
	}
	return prediction
}

// ShouldBuy answers whether to book now. An explicit target price that the
// current price already meets always wins over the trend recommendation.
// A nil or non-positive target is ignored.
func (pi *PriceIntelligence) ShouldBuy(route string, targetPrice *float64) entity.BuyDecision {
	pi.mu.RLock()
	defer pi.mu.RUnlock()

	prediction := pi.predictLocked(route)
	if prediction == nil {
		return entity.BuyDecision{Reason: "Not enough data for prediction"}
	}

	yes, no := true, false
	if targetPrice != nil && *targetPrice > 0 && prediction.CurrentPrice <= *targetPrice {
		currency := pi.currentCurrencyLocked(route)
		return entity.BuyDecision{
			ShouldBuy: &yes,
			Reason: fmt.Sprintf("Current price (%s) is below your target (%s)",
				utils.FormatPrice(prediction.CurrentPrice, currency),
				utils.FormatPrice(*targetPrice, currency)),
		}
	}

	if prediction.Recommendation == entity.RecommendationBuyNow {
		return entity.BuyDecision{ShouldBuy: &yes, Reason: prediction.Reasoning}
	}
	return entity.BuyDecision{ShouldBuy: &no, Reason: prediction.Reasoning}
}

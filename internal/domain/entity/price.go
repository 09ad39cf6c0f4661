// internal/domain/entity/price.go
package entity

import "time"

// DefaultCurrency is used for price points recorded without a currency.
const DefaultCurrency = "EUR"

// Recommendation is the buy/wait advice attached to a prediction
type Recommendation string

const (
	RecommendationBuyNow  Recommendation = "buy_now"
	RecommendationWait    Recommendation = "wait"
	RecommendationNeutral Recommendation = "neutral"
)

// Trend is the short-window momentum of a route's prices
type Trend string

const (
	TrendRising  Trend = "rising"
	TrendFalling Trend = "falling"
	TrendStable  Trend = "stable"
	TrendUnknown Trend = "unknown"
)

// Season buckets price observations by calendar month
type Season string

const (
	SeasonWinter  Season = "winter"
	SeasonSpring  Season = "spring"
	SeasonSummer  Season = "summer"
	SeasonAutumn  Season = "autumn"
	SeasonHoliday Season = "holiday"
	SeasonOffPeak Season = "off_peak"
)

// PricePoint is one immutable price observation.
type PricePoint struct {
	ObservedAt time.Time `json:"observed_at"`
	Price      float64   `json:"price"`
	Currency   string    `json:"currency"`
}

// PriceObservation is the persisted form of a PricePoint.
type PriceObservation struct {
	ID         string    `bson:"_id,omitempty"`
	Route      string    `bson:"route"`
	Price      float64   `bson:"price"`
	Currency   string    `bson:"currency"`
	ObservedAt time.Time `bson:"observedAt"`
}

// SeasonalPattern summarises the prices observed in one season.
type SeasonalPattern struct {
	Season       Season  `json:"season"`
	AveragePrice float64 `json:"average_price"`
	MinPrice     float64 `json:"min_price"`
	MaxPrice     float64 `json:"max_price"`
	Volatility   float64 `json:"volatility"`
	SampleCount  int     `json:"sample_count"`
}

// PricePrediction is derived on demand and never persisted.
type PricePrediction struct {
	CurrentPrice   float64        `json:"current_price"`
	PredictedLow   float64        `json:"predicted_low"`
	PredictedHigh  float64        `json:"predicted_high"`
	Recommendation Recommendation `json:"recommendation"`
	Confidence     float64        `json:"confidence"`
	Reasoning      string         `json:"reasoning"`
}

// PriceAlert fires once when a recorded price reaches TargetPrice.
type PriceAlert struct {
	ID           string     `json:"id"`
	Route        string     `json:"route"`
	TargetPrice  float64    `json:"target_price"`
	CreatedAt    time.Time  `json:"created_at"`
	Triggered    bool       `json:"triggered"`
	TriggeredAt  *time.Time `json:"triggered_at,omitempty"`
	TriggerPrice float64    `json:"trigger_price,omitempty"`
}

// SeasonalAdvice compares the current price with the travel season's average.
type SeasonalAdvice struct {
	Recommendation  Recommendation `json:"recommendation"`
	Reason          string         `json:"reason"`
	Season          Season         `json:"season"`
	HasSeasonalData bool           `json:"has_seasonal_data"`
	SeasonalAverage float64        `json:"seasonal_avg,omitempty"`
	Volatility      float64        `json:"volatility,omitempty"`
}

// BuyDecision answers "should I buy now". ShouldBuy is nil when there is
// not enough history to decide.
type BuyDecision struct {
	ShouldBuy *bool  `json:"should_buy"`
	Reason    string `json:"reason"`
}

// RouteStatistics is computed fresh from the retained history.
type RouteStatistics struct {
	Route        string    `json:"route"`
	CurrentPrice float64   `json:"current_price"`
	AveragePrice float64   `json:"average_price"`
	MinPrice     float64   `json:"min_price"`
	MaxPrice     float64   `json:"max_price"`
	MedianPrice  float64   `json:"median_price"`
	Volatility   float64   `json:"volatility"`
	SampleCount  int       `json:"sample_count"`
	Trend        Trend     `json:"trend"`
	LastUpdated  time.Time `json:"last_updated"`
}

package utils

import (
	"github.com/montanaflynn/stats"
)

// PriceSummary holds plain statistics over a price sample
type PriceSummary struct {
	Mean   float64
	Median float64
	Min    float64
	Max    float64
}

// SummarizePrices computes mean, median, min and max. Empty input yields zeros.
func SummarizePrices(prices []float64) PriceSummary {
	if len(prices) == 0 {
		return PriceSummary{}
	}
	data := stats.Float64Data(prices)
	mean, _ := data.Mean()
	median, _ := data.Median()
	lo, _ := data.Min()
	hi, _ := data.Max()
	return PriceSummary{Mean: mean, Median: median, Min: lo, Max: hi}
}

// Mean returns the arithmetic mean, 0 for empty input
func Mean(prices []float64) float64 {
	m, err := stats.Mean(stats.Float64Data(prices))
	if err != nil {
		return 0
	}
	return m
}

// Volatility is the coefficient of variation in percent: sample standard
// deviation over mean, times 100. It is 0 for fewer than two prices or a
// zero mean.
func Volatility(prices []float64) float64 {
	if len(prices) < 2 {
		return 0
	}
	data := stats.Float64Data(prices)
	mean, err := data.Mean()
	if err != nil || mean == 0 {
		return 0
	}
	sd, err := data.StandardDeviationSample()
	if err != nil {
		return 0
	}
	return sd / mean * 100
}

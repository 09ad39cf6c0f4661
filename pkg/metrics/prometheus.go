package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics. A nil *Metrics is valid and records nothing.
type Metrics struct {
	DealsProcessed   prometheus.Counter
	MatchesCreated   prometheus.Counter
	SummaryFallbacks prometheus.Counter
	PricesRecorded   prometheus.Counter
	AlertsTriggered  prometheus.Counter
	MatchingTime     prometheus.Histogram
	ErrorsCount      *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics on the given registerer
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		DealsProcessed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deals_processed_total",
			Help:      "The total number of deals scored against subscriptions",
		}),
		MatchesCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_created_total",
			Help:      "The total number of deal matches created",
		}),
		SummaryFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "summary_fallbacks_total",
			Help:      "The total number of matches that used the fallback rationale",
		}),
		PricesRecorded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prices_recorded_total",
			Help:      "The total number of recorded price observations",
		}),
		AlertsTriggered: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "price_alerts_triggered_total",
			Help:      "The total number of triggered price alerts",
		}),
		MatchingTime: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "deal_matching_time_seconds",
			Help:      "Time taken to match one deal against all subscriptions",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}

func (m *Metrics) IncDealsProcessed() {
	if m == nil {
		return
	}
	m.DealsProcessed.Inc()
}

func (m *Metrics) AddMatches(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.MatchesCreated.Add(float64(n))
}

func (m *Metrics) IncSummaryFallback() {
	if m == nil {
		return
	}
	m.SummaryFallbacks.Inc()
}

func (m *Metrics) IncPricesRecorded() {
	if m == nil {
		return
	}
	m.PricesRecorded.Inc()
}

func (m *Metrics) AddAlertsTriggered(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.AlertsTriggered.Add(float64(n))
}

func (m *Metrics) ObserveMatching(d time.Duration) {
	if m == nil {
		return
	}
	m.MatchingTime.Observe(d.Seconds())
}

func (m *Metrics) IncError(operation string) {
	if m == nil {
		return
	}
	m.ErrorsCount.WithLabelValues(operation).Inc()
}

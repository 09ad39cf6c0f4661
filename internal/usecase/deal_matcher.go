package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"skypulse-engine/internal/domain/entity"
	"skypulse-engine/internal/domain/repository"
	"skypulse-engine/pkg/logger"
	"skypulse-engine/pkg/metrics"
	"skypulse-engine/templates"
)

// DealMatcher scores deals against subscriptions and attaches a rationale to every match
type DealMatcher struct {
	summarizer repository.Summarizer
	logger     logger.Logger
	metrics    *metrics.Metrics
	now        func() time.Time
}

// NewDealMatcher creates a new deal matcher. summarizer may be nil, in
// which case every match uses the fallback rationale.
func NewDealMatcher(summarizer repository.Summarizer, logger logger.Logger, metrics *metrics.Metrics) *DealMatcher {
	return &DealMatcher{
		summarizer: summarizer,
		logger:     logger,
		metrics:    metrics,
		now:        time.Now,
	}
}

// Score returns the 0-100 relevance of a deal for a subscription
func (m *DealMatcher) Score(deal *entity.Deal, sub *entity.Subscription) float64 {
	return ScoreDeal(deal, sub).Total()
}

// Match scores the deal against every active subscription and returns a
// Match for each one scoring at least MatchThreshold. Neither the deal nor
// the subscriptions are modified.
func (m *DealMatcher) Match(ctx context.Context, deal *entity.Deal, subscriptions []*entity.Subscription) ([]*entity.Match, error) {
	if err := validateDeal(deal); err != nil {
		return nil, err
	}

	started := time.Now()
	defer func() { m.metrics.ObserveMatching(time.Since(started)) }()

	m.logger.Info("Matching deal", "route", deal.Route, "subscriptions", len(subscriptions))

	matches := make([]*entity.Match, 0)
	for _, sub := range subscriptions {
		if sub == nil || !sub.IsActive {
			continue
		}

		score := m.Score(deal, sub)
		if score < MatchThreshold {
			continue
		}

		match := &entity.Match{
			ID:             uuid.NewString(),
			SubscriptionID: sub.ID,
			DealID:         deal.ID,
			MatchScore:     score,
			Summary:        m.rationale(ctx, deal, sub),
			CreatedAt:      m.now().UTC(),
		}
		matches = append(matches, match)

		m.logger.Info("Match created", "subscriptionID", sub.ID, "dealID", deal.ID, "score", score)
	}

	m.metrics.IncDealsProcessed()
	m.metrics.AddMatches(len(matches))

	if len(matches) == 0 {
		m.logger.Info("No matches found for deal", "route", deal.Route)
	}
	return matches, nil
}

// rationale asks the summarizer for an explanation and falls back to a
// fixed sentence when it is unavailable or returns nothing.
func (m *DealMatcher) rationale(ctx context.Context, deal *entity.Deal, sub *entity.Subscription) string {
	if m.summarizer != nil {
		summary, err := m.summarizer.Summarize(ctx, entity.RationaleRequest{
			SubscriptionText: sub.Prompt,
			Route:            deal.Route,
			Price:            deal.Price,
			Currency:         deal.Currency,
			Airline:          deal.Airline,
			DepartureDate:    deal.DepartureDate,
			ReturnDate:       deal.ReturnDate,
		})
		if err != nil {
			m.logger.Warn("Summarizer failed, using fallback rationale", "dealID", deal.ID, "error", err)
		} else if summary = strings.TrimSpace(summary); summary != "" {
			return summary
		}
	}

	m.metrics.IncSummaryFallback()
	return templates.FallbackRationale(deal.Route, deal.Price, deal.Currency, sub.Destination)
}

func validateDeal(deal *entity.Deal) error {
	if deal == nil {
		return fmt.Errorf("%w: nil deal", ErrInvalidDeal)
	}
	if math.IsNaN(deal.Price) || math.IsInf(deal.Price, 0) || deal.Price < 0 {
		return fmt.Errorf("%w: price %v", ErrInvalidDeal, deal.Price)
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

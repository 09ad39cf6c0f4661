package usecase

import (
	"context"
	"fmt"
	"strings"

	"skypulse-engine/internal/domain/entity"
	"skypulse-engine/internal/domain/repository"
	"skypulse-engine/pkg/logger"
)

// DefaultBatchSize is used when the processor is created with a non-positive batch size
const DefaultBatchSize = 100

// BatchResult summarises one ProcessPendingDeals run
type BatchResult struct {
	Deals   int
	Matches int
	Failed  int
}

// DealProcessor feeds unmatched deals through the matcher and price intelligence
type DealProcessor struct {
	dealRepo         repository.DealRepository
	subscriptionRepo repository.SubscriptionRepository
	matchRepo        repository.MatchRepository
	observationRepo  repository.PriceObservationRepository
	matcher          *DealMatcher
	prices           *PriceIntelligence
	batchSize        int
	logger           logger.Logger
}

// NewDealProcessor creates a new deal processor. observationRepo may be nil,
// in which case recorded prices only live in memory.
func NewDealProcessor(
	dealRepo repository.DealRepository,
	subscriptionRepo repository.SubscriptionRepository,
	matchRepo repository.MatchRepository,
	observationRepo repository.PriceObservationRepository,
	matcher *DealMatcher,
	prices *PriceIntelligence,
	batchSize int,
	logger logger.Logger,
) *DealProcessor {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &DealProcessor{
		dealRepo:         dealRepo,
		subscriptionRepo: subscriptionRepo,
		matchRepo:        matchRepo,
		observationRepo:  observationRepo,
		matcher:          matcher,
		prices:           prices,
		batchSize:        batchSize,
		logger:           logger,
	}
}

// Warmup restores the retained price history from the observation store
func (p *DealProcessor) Warmup(ctx context.Context) (int, error) {
	if p.observationRepo == nil {
		return 0, nil
	}

	since := p.prices.Now().Add(-HistoryRetention)
	observations, err := p.observationRepo.FindSince(ctx, since)
	if err != nil {
		return 0, fmt.Errorf("failed to load price observations: %w", err)
	}

	restored := p.prices.Restore(observations)
	p.logger.Info("Price history restored", "observations", restored, "routes", len(p.prices.Routes()))
	return restored, nil
}

// ProcessPendingDeals matches every unmatched deal against the active
// subscriptions. A failing deal is marked failed and does not stop the batch.
func (p *DealProcessor) ProcessPendingDeals(ctx context.Context) (BatchResult, error) {
	var result BatchResult

	deals, err := p.dealRepo.FindUnmatched(ctx, p.batchSize)
	if err != nil {
		return result, fmt.Errorf("failed to find unmatched deals: %w", err)
	}
	if len(deals) == 0 {
		return result, nil
	}

	// Subscriptions are read once so every deal in the batch sees the same set
	subscriptions, err := p.subscriptionRepo.FindActive(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to load active subscriptions: %w", err)
	}

	p.logger.Info("Processing pending deals", "count", len(deals), "subscriptions", len(subscriptions))

	for _, deal := range deals {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		result.Deals++

		count, err := p.ProcessDeal(ctx, deal, subscriptions)
		if err != nil {
			result.Failed++
			p.logger.Error("Failed to process deal", "dealID", deal.ID, "error", err)
			if markErr := p.dealRepo.MarkFailed(ctx, deal.ID, err.Error()); markErr != nil {
				p.logger.Error("Failed to mark deal as failed", "dealID", deal.ID, "error", markErr)
			}
			continue
		}
		result.Matches += count
	}

	p.logger.Info("Pending deals processed", "deals", result.Deals, "matches", result.Matches, "failed", result.Failed)
	return result, nil
}

// ProcessDeal matches a single deal, stores its matches and records its price
func (p *DealProcessor) ProcessDeal(ctx context.Context, deal *entity.Deal, subscriptions []*entity.Subscription) (int, error) {
	matches, err := p.matcher.Match(ctx, deal, subscriptions)
	if err != nil {
		return 0, err
	}

	if len(matches) > 0 {
		if err := p.matchRepo.SaveAll(ctx, matches); err != nil {
			return 0, fmt.Errorf("failed to save matches: %w", err)
		}
	}

	p.recordDealPrice(ctx, deal)

	if err := p.dealRepo.MarkMatched(ctx, deal.ID, len(matches)); err != nil {
		return len(matches), fmt.Errorf("failed to mark deal as matched: %w", err)
	}
	return len(matches), nil
}

// recordDealPrice feeds the deal price into price intelligence under the
// deal's route. Deals without a route or a positive price are not recorded.
func (p *DealProcessor) recordDealPrice(ctx context.Context, deal *entity.Deal) {
	route := strings.TrimSpace(deal.Route)
	if route == "" || deal.Price <= 0 {
		return
	}

	observedAt := deal.ParsedAt
	if observedAt.IsZero() {
		observedAt = p.prices.Now().UTC()
	}

	if err := p.prices.RecordPriceWithCurrency(route, deal.Price, deal.Currency, observedAt); err != nil {
		p.logger.Warn("Failed to record deal price", "dealID", deal.ID, "route", route, "error", err)
		return
	}

	if p.observationRepo == nil {
		return
	}
	observation := &entity.PriceObservation{
		Route:      route,
		Price:      deal.Price,
		Currency:   currencyOrDefault(deal.Currency),
		ObservedAt: observedAt,
	}
	if err := p.observationRepo.Save(ctx, observation); err != nil {
		p.logger.Warn("Failed to persist price observation", "route", route, "error", err)
	}
}

func currencyOrDefault(currency string) string {
	if strings.TrimSpace(currency) == "" {
		return entity.DefaultCurrency
	}
	return currency
}

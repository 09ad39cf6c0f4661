package usecase

import (
	"context"
	"errors"
	"math"
	"testing"

	"skypulse-engine/internal/domain/entity"
	"skypulse-engine/pkg/logger"
)

type fakeSummarizer struct {
	text  string
	err   error
	calls int
}

func (f *fakeSummarizer) Summarize(_ context.Context, _ entity.RationaleRequest) (string, error) {
	f.calls++
	return f.text, f.err
}

func floatPtr(v float64) *float64 { return &v }

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 0.01 }

func TestScoreDealComponents(t *testing.T) {
	tests := []struct {
		name string
		deal entity.Deal
		sub  entity.Subscription
		want ScoreBreakdown
	}{
		{
			name: "no preferences gives flat credits",
			deal: entity.Deal{ArrivalCity: "Tokyo", DepartureCity: "Berlin", Price: 999},
			sub:  entity.Subscription{IsActive: true},
			want: ScoreBreakdown{Destination: 20, Price: 15, Dates: 10, Origin: 5},
		},
		{
			name: "price at budget",
			deal: entity.Deal{Price: 500},
			sub:  entity.Subscription{MaxPrice: floatPtr(500)},
			want: ScoreBreakdown{Destination: 20, Price: 15, Dates: 10, Origin: 5},
		},
		{
			name: "fifteen percent over budget tapers",
			deal: entity.Deal{Price: 115},
			sub:  entity.Subscription{MaxPrice: floatPtr(100)},
			want: ScoreBreakdown{Destination: 20, Price: 3.75, Dates: 10, Origin: 5},
		},
		{
			name: "twenty five percent over budget scores zero",
			deal: entity.Deal{Price: 125},
			sub:  entity.Subscription{MaxPrice: floatPtr(100)},
			want: ScoreBreakdown{Destination: 20, Price: 0, Dates: 10, Origin: 5},
		},
		{
			name: "non-positive budget treated as unset",
			deal: entity.Deal{Price: 125},
			sub:  entity.Subscription{MaxPrice: floatPtr(0)},
			want: ScoreBreakdown{Destination: 20, Price: 15, Dates: 10, Origin: 5},
		},
		{
			name: "alias and month match",
			deal: entity.Deal{ArrivalCity: "CDG", DepartureCity: "NYC", DepartureDate: "April 12", Price: 300},
			sub: entity.Subscription{
				Destination: "Paris",
				Origin:      "New York",
				StartDate:   "April 2026",
			},
			want: ScoreBreakdown{Destination: 38, Price: 15, Dates: 20, Origin: 9.5},
		},
		{
			name: "wrong destination and month",
			deal: entity.Deal{ArrivalCity: "Rome", DepartureDate: "2026-09-01", Price: 300},
			sub:  entity.Subscription{Destination: "Paris", StartDate: "2026-04-01", EndDate: "2026-05-01"},
			want: ScoreBreakdown{Destination: 0, Price: 15, Dates: 6, Origin: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreDeal(&tt.deal, &tt.sub)
			if !almostEqual(got.Destination, tt.want.Destination) ||
				!almostEqual(got.Price, tt.want.Price) ||
				!almostEqual(got.Dates, tt.want.Dates) ||
				!almostEqual(got.Origin, tt.want.Origin) {
				t.Fatalf("ScoreDeal() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestScoreBreakdownTotalClamps(t *testing.T) {
	if got := (ScoreBreakdown{Destination: 80, Price: 30}).Total(); got != 100 {
		t.Fatalf("Total() = %v, want 100", got)
	}
	if got := (ScoreBreakdown{Destination: -10}).Total(); got != 0 {
		t.Fatalf("Total() = %v, want 0", got)
	}
}

func TestMatchEndToEnd(t *testing.T) {
	summarizer := &fakeSummarizer{text: "  Paris in spring for under budget!  "}
	matcher := NewDealMatcher(summarizer, logger.NewNopLogger(), nil)

	deal := &entity.Deal{ID: "deal-1", Route: "BER-PAR", ArrivalCity: "Paris", Price: 449, Currency: "EUR"}
	subs := []*entity.Subscription{
		{ID: 1, Destination: "Paris", MaxPrice: floatPtr(500), IsActive: true},
		{ID: 2, Destination: "Tokyo", MaxPrice: floatPtr(300), IsActive: true},
		{ID: 3, IsActive: false},
		nil,
	}

	matches, err := matcher.Match(context.Background(), deal, subs)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("Match() returned %d matches, want 1", len(matches))
	}

	m := matches[0]
	if m.SubscriptionID != 1 || m.DealID != "deal-1" {
		t.Fatalf("unexpected match ids: %+v", m)
	}
	if !almostEqual(m.MatchScore, 71.53) {
		t.Fatalf("MatchScore = %v, want ~71.53", m.MatchScore)
	}
	if m.Summary != "Paris in spring for under budget!" {
		t.Fatalf("Summary = %q", m.Summary)
	}
	if m.ID == "" || m.Notified || m.EmailSent || m.NotifiedAt != nil {
		t.Fatalf("new match should have an id and clear notification state: %+v", m)
	}
	if summarizer.calls != 1 {
		t.Fatalf("summarizer called %d times, want 1", summarizer.calls)
	}
}

func TestMatchNoPreferencesHitsThreshold(t *testing.T) {
	matcher := NewDealMatcher(nil, logger.NewNopLogger(), nil)
	deal := &entity.Deal{Route: "LHR-JFK", ArrivalCity: "New York", Price: 320, Currency: "GBP"}

	matches, err := matcher.Match(context.Background(), deal, []*entity.Subscription{{ID: 7, IsActive: true}})
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if len(matches) != 1 || matches[0].MatchScore != MatchThreshold {
		t.Fatalf("expected one match at threshold, got %+v", matches)
	}
	want := "Great deal on LHR-JFK for £320! This matches your search for travel deals."
	if matches[0].Summary != want {
		t.Fatalf("Summary = %q, want %q", matches[0].Summary, want)
	}
}

func TestMatchFallbackRationale(t *testing.T) {
	tests := []struct {
		name       string
		summarizer *fakeSummarizer
	}{
		{name: "summarizer error", summarizer: &fakeSummarizer{err: errors.New("connection refused")}},
		{name: "empty summary", summarizer: &fakeSummarizer{text: "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matcher := NewDealMatcher(tt.summarizer, logger.NewNopLogger(), nil)
			deal := &entity.Deal{Route: "BER-PAR", ArrivalCity: "Paris", Price: 449, Currency: "EUR"}
			sub := &entity.Subscription{ID: 1, Destination: "Paris", IsActive: true}

			matches, err := matcher.Match(context.Background(), deal, []*entity.Subscription{sub})
			if err != nil {
				t.Fatalf("Match() error = %v", err)
			}
			if len(matches) != 1 {
				t.Fatalf("got %d matches, want 1", len(matches))
			}
			want := "Great deal on BER-PAR for €449! This matches your search for Paris."
			if matches[0].Summary != want {
				t.Fatalf("Summary = %q, want %q", matches[0].Summary, want)
			}
			if tt.summarizer.calls != 1 {
				t.Fatalf("summarizer called %d times, want 1", tt.summarizer.calls)
			}
		})
	}
}

func TestMatchDoesNotMutateInputs(t *testing.T) {
	matcher := NewDealMatcher(nil, logger.NewNopLogger(), nil)
	deal := &entity.Deal{Route: "BER-PAR", ArrivalCity: "Paris", Price: 449}
	sub := &entity.Subscription{ID: 1, Destination: "paris", MaxPrice: floatPtr(500), IsActive: true}
	dealCopy, subCopy := *deal, *sub

	if _, err := matcher.Match(context.Background(), deal, []*entity.Subscription{sub}); err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if deal.Route != dealCopy.Route || deal.Price != dealCopy.Price || deal.MatchCount != dealCopy.MatchCount {
		t.Fatalf("deal mutated: %+v", deal)
	}
	if sub.Destination != subCopy.Destination || *sub.MaxPrice != 500 || !sub.IsActive {
		t.Fatalf("subscription mutated: %+v", sub)
	}
}

func TestMatchRejectsInvalidDeal(t *testing.T) {
	matcher := NewDealMatcher(nil, logger.NewNopLogger(), nil)
	subs := []*entity.Subscription{{ID: 1, IsActive: true}}

	for _, deal := range []*entity.Deal{nil, {Price: -1}, {Price: math.NaN()}} {
		if _, err := matcher.Match(context.Background(), deal, subs); !errors.Is(err, ErrInvalidDeal) {
			t.Fatalf("Match(%+v) error = %v, want ErrInvalidDeal", deal, err)
		}
	}
}

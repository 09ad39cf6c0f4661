package templates

import (
	"strings"
	"testing"

	"skypulse-engine/internal/domain/entity"
)

func TestFallbackRationale(t *testing.T) {
	got := FallbackRationale("NYC → Paris", 449, "USD", "Paris")
	want := "Great deal on NYC → Paris for $449! This matches your search for Paris."
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}

	got = FallbackRationale("Berlin-Rome", 89.9, "EUR", "  ")
	if !strings.HasSuffix(got, "This matches your search for travel deals.") {
		t.Fatalf("expected generic destination, got %q", got)
	}
}

func TestRationalePrompt(t *testing.T) {
	p := RationalePrompt(entity.RationaleRequest{
		SubscriptionText: "Flights to Paris under $500 in April",
		Route:            "NYC → Paris",
		Price:            449,
		Currency:         "USD",
		Airline:          "Air France",
		DepartureDate:    "2026-04-15",
	})
	for _, want := range []string{`"Flights to Paris under $500 in April"`, "Route: NYC → Paris", "Price: $449", "Airline: Air France", "Dates: 2026-04-15 to unknown"} {
		if !strings.Contains(p, want) {
			t.Fatalf("prompt missing %q:\n%s", want, p)
		}
	}
}

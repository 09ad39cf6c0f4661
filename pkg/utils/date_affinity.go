package utils

import (
	"strings"
	"time"
)

// Date affinity scores
const (
	DateMatch   = 1.0
	DateNeutral = 0.5
	DatePartial = 0.3
)

var monthTokens = []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}

// DateAffinity scores a free-form deal date against a subscription's date
// hints. Only month tokens are compared; years are ignored, so the same
// month a year apart still counts as a match.
func DateAffinity(dealDate, start, end string) float64 {
	dealDate = strings.TrimSpace(dealDate)
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)

	if dealDate == "" {
		return DateNeutral
	}
	if start == "" && end == "" {
		return DateNeutral
	}

	dealMonths := monthsIn(dealDate)
	for _, bound := range []string{start, end} {
		if bound == "" {
			continue
		}
		boundMonths := monthsIn(bound)
		for m := range dealMonths {
			if boundMonths[m] {
				return DateMatch
			}
		}
	}

	return DatePartial
}

// monthsIn collects the month tokens mentioned in s, either spelled out
// ("Apr", "april") or as the month of an ISO date ("2026-04-15").
func monthsIn(s string) map[string]bool {
	lower := strings.ToLower(s)
	found := make(map[string]bool)
	for _, m := range monthTokens {
		if strings.Contains(lower, m) {
			found[m] = true
		}
	}
	if t, ok := parseISOMonth(lower); ok {
		found[monthTokens[t.Month()-1]] = true
	}
	return found
}

func parseISOMonth(s string) (time.Time, bool) {
	if len(s) >= len("2006-01-02") {
		if t, err := time.Parse("2006-01-02", s[:10]); err == nil {
			return t, true
		}
	}
	if len(s) >= len("2006-01") {
		if t, err := time.Parse("2006-01", s[:7]); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

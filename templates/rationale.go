package templates

import (
	"fmt"
	"strings"

	"skypulse-engine/internal/domain/entity"
	"skypulse-engine/pkg/utils"
)

// RationaleSystemPrompt is sent as the system prompt for match rationales
const RationaleSystemPrompt = "You are a helpful travel advisor. Be concise, enthusiastic, and focus on value."

// RATIONALE_TEMPLATE is the user prompt; placeholders follow RationalePrompt's argument order
const RATIONALE_TEMPLATE = `You are a travel advisor. Explain why this flight deal is good for the user.

User's request: "%s"

Deal details:
- Route: %s
- Price: %s
- Airline: %s
- Dates: %s to %s

Write a brief, enthusiastic 2-3 sentence summary explaining why this is a great match.
Focus on value, convenience, and how it meets their needs.`

// FALLBACK_TEMPLATE is used when no rationale could be generated
const FALLBACK_TEMPLATE = "Great deal on %s for %s! This matches your search for %s."

// RationalePrompt renders the oracle prompt for a match
func RationalePrompt(req entity.RationaleRequest) string {
	return fmt.Sprintf(RATIONALE_TEMPLATE,
		req.SubscriptionText,
		req.Route,
		utils.FormatPrice(req.Price, req.Currency),
		orUnknown(req.Airline),
		orUnknown(req.DepartureDate),
		orUnknown(req.ReturnDate),
	)
}

// FallbackRationale renders the deterministic rationale. It never fails.
func FallbackRationale(route string, price float64, currency string, destination string) string {
	target := strings.TrimSpace(destination)
	if target == "" {
		target = "travel deals"
	}
	return fmt.Sprintf(FALLBACK_TEMPLATE, route, utils.FormatPrice(price, currency), target)
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}

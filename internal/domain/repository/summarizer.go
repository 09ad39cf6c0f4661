package repository

import (
	"context"

	"skypulse-engine/internal/domain/entity"
)

// Summarizer turns a deal/subscription pair into a short natural-language
// rationale. An empty string or an error means no rationale is available.
type Summarizer interface {
	Summarize(ctx context.Context, req entity.RationaleRequest) (string, error)
}

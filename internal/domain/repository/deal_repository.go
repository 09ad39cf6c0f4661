package repository

import (
	"context"

	"skypulse-engine/internal/domain/entity"
)

// DealRepository defines the interface for deal storage operations
type DealRepository interface {
	Save(ctx context.Context, deal *entity.Deal) error
	FindUnmatched(ctx context.Context, limit int) ([]*entity.Deal, error)
	MarkMatched(ctx context.Context, id string, matchCount int) error
	MarkFailed(ctx context.Context, id string, errorDetail string) error
}

package repository

import (
	"context"

	"skypulse-engine/internal/domain/entity"
)

// MatchRepository defines the interface for match storage operations
type MatchRepository interface {
	SaveAll(ctx context.Context, matches []*entity.Match) error
}

package repository

import (
	"context"
	"time"

	"skypulse-engine/internal/domain/entity"
)

// PriceObservationRepository persists recorded prices so history survives restarts
type PriceObservationRepository interface {
	Save(ctx context.Context, observation *entity.PriceObservation) error
	FindSince(ctx context.Context, since time.Time) ([]*entity.PriceObservation, error)
}

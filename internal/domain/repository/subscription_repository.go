package repository

import (
	"context"

	"skypulse-engine/internal/domain/entity"
)

// SubscriptionRepository defines the interface for subscription lookups
type SubscriptionRepository interface {
	FindActive(ctx context.Context) ([]*entity.Subscription, error)
}

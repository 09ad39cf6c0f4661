package repository

import (
	"context"
	"time"

	"skypulse-engine/internal/domain/entity"
	"skypulse-engine/internal/domain/repository"

	"gorm.io/gorm"
)

// GormSubscriptionRepository implements the SubscriptionRepository interface
type GormSubscriptionRepository struct {
	db *gorm.DB
}

// NewGormSubscriptionRepository creates a new GORM subscription repository
func NewGormSubscriptionRepository(db *gorm.DB) repository.SubscriptionRepository {
	return &GormSubscriptionRepository{
		db: db,
	}
}

// Subscriptions GORM model for database mapping
type Subscriptions struct {
	ID          uint      `gorm:"column:id;primaryKey"`
	UserID      uint      `gorm:"column:user_id;index"`
	Prompt      string    `gorm:"column:prompt"`
	Origin      string    `gorm:"column:origin"`
	Destination string    `gorm:"column:destination"`
	MaxPrice    *float64  `gorm:"column:max_price"`
	StartDate   string    `gorm:"column:start_date"`
	EndDate     string    `gorm:"column:end_date"`
	IsActive    bool      `gorm:"column:is_active;index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

// TableName overrides the default table name
func (Subscriptions) TableName() string {
	return "subscriptions"
}

// FindActive returns every active subscription
func (r *GormSubscriptionRepository) FindActive(ctx context.Context) ([]*entity.Subscription, error) {
	var rows []Subscriptions
	result := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id").
		Find(&rows)

	if result.Error != nil {
		return nil, result.Error
	}

	// Convert to domain entities
	entities := make([]*entity.Subscription, 0, len(rows))
	for _, row := range rows {
		entities = append(entities, &entity.Subscription{
			ID:          row.ID,
			UserID:      row.UserID,
			Prompt:      row.Prompt,
			Origin:      row.Origin,
			Destination: row.Destination,
			MaxPrice:    row.MaxPrice,
			StartDate:   row.StartDate,
			EndDate:     row.EndDate,
			IsActive:    row.IsActive,
			CreatedAt:   row.CreatedAt,
		})
	}

	return entities, nil
}

package repository

import (
	"context"
	"time"

	"skypulse-engine/internal/domain/entity"
	"skypulse-engine/internal/domain/repository"

	"gorm.io/gorm"
)

// GormMatchRepository implements the MatchRepository interface
type GormMatchRepository struct {
	db *gorm.DB
}

// NewGormMatchRepository creates a new GORM match repository
func NewGormMatchRepository(db *gorm.DB) repository.MatchRepository {
	return &GormMatchRepository{
		db: db,
	}
}

// DealMatches GORM model for database mapping
type DealMatches struct {
	ID             string     `gorm:"column:id;primaryKey"`
	SubscriptionID uint       `gorm:"column:subscription_id;index"`
	DealID         string     `gorm:"column:deal_id;index"`
	MatchScore     float64    `gorm:"column:match_score"`
	Summary        string     `gorm:"column:summary"`
	Notified       bool       `gorm:"column:notified"`
	NotifiedAt     *time.Time `gorm:"column:notified_at"`
	EmailSent      bool       `gorm:"column:email_sent"`
	EmailOpened    bool       `gorm:"column:email_opened"`
	LinkClicked    bool       `gorm:"column:link_clicked"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
}

// TableName overrides the default table name
func (DealMatches) TableName() string {
	return "deal_matches"
}

func toDealMatches(m *entity.Match) DealMatches {
	return DealMatches{
		ID:             m.ID,
		SubscriptionID: m.SubscriptionID,
		DealID:         m.DealID,
		MatchScore:     m.MatchScore,
		Summary:        m.Summary,
		Notified:       m.Notified,
		NotifiedAt:     m.NotifiedAt,
		EmailSent:      m.EmailSent,
		EmailOpened:    m.EmailOpened,
		LinkClicked:    m.LinkClicked,
		CreatedAt:      m.CreatedAt,
	}
}

// SaveAll inserts all matches in one transaction
func (r *GormMatchRepository) SaveAll(ctx context.Context, matches []*entity.Match) error {
	if len(matches) == 0 {
		return nil
	}

	models := make([]DealMatches, 0, len(matches))
	for _, m := range matches {
		models = append(models, toDealMatches(m))
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&models).Error
	})
}

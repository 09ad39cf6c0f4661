package repository

import (
	"context"
	"fmt"
	"time"

	"skypulse-engine/internal/domain/entity"
	"skypulse-engine/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPriceObservationRepository implements the PriceObservationRepository interface
type MongoPriceObservationRepository struct {
	collection *mongo.Collection
}

// NewMongoPriceObservationRepository creates a new MongoDB price observation repository
func NewMongoPriceObservationRepository(db *mongo.Database) repository.PriceObservationRepository {
	collection := db.Collection("price_observations")

	routeTimeIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "route", Value: 1},
			{Key: "observedAt", Value: 1},
		},
	}
	observedAtIndex := mongo.IndexModel{
		Keys: bson.M{"observedAt": 1},
	}
	collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		routeTimeIndex,
		observedAtIndex,
	})

	return &MongoPriceObservationRepository{
		collection: collection,
	}
}

// Save inserts a price observation
func (r *MongoPriceObservationRepository) Save(ctx context.Context, observation *entity.PriceObservation) error {
	if observation.ID == "" {
		observation.ID = primitive.NewObjectID().Hex()
	}

	if _, err := r.collection.InsertOne(ctx, observation); err != nil {
		return fmt.Errorf("failed to save price observation: %w", err)
	}
	return nil
}

// FindSince returns every observation at or after since, oldest first
func (r *MongoPriceObservationRepository) FindSince(ctx context.Context, since time.Time) ([]*entity.PriceObservation, error) {
	cursor, err := r.collection.Find(ctx,
		bson.M{"observedAt": bson.M{"$gte": since}},
		options.Find().SetSort(bson.D{{Key: "observedAt", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var observations []*entity.PriceObservation
	if err := cursor.All(ctx, &observations); err != nil {
		return nil, err
	}

	return observations, nil
}

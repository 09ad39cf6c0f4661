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

// MongoDealRepository implements the DealRepository interface
type MongoDealRepository struct {
	collection *mongo.Collection
}

// NewMongoDealRepository creates a new MongoDB deal repository
func NewMongoDealRepository(db *mongo.Database) repository.DealRepository {
	collection := db.Collection("deals")

	ctx := context.Background()

	// Compound index for finding unmatched deals oldest first
	pendingIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "matchStatus", Value: 1},
			{Key: "parsedAt", Value: 1},
		},
	}

	// Index on route for price lookups
	routeIndex := mongo.IndexModel{
		Keys: bson.M{"route": 1},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		pendingIndex,
		routeIndex,
	})

	return &MongoDealRepository{
		collection: collection,
	}
}

// Save inserts a deal. New deals start out pending.
func (r *MongoDealRepository) Save(ctx context.Context, deal *entity.Deal) error {
	if deal.ID == "" {
		deal.ID = primitive.NewObjectID().Hex()
	}
	if deal.MatchStatus == "" {
		deal.MatchStatus = entity.DealStatusPending
	}
	if deal.ParsedAt.IsZero() {
		deal.ParsedAt = time.Now().UTC()
	}

	_, err := r.collection.InsertOne(ctx, deal)
	if err != nil {
		return fmt.Errorf("failed to save deal: %w", err)
	}
	return nil
}

// FindUnmatched finds deals that have not been through the matcher yet
func (r *MongoDealRepository) FindUnmatched(ctx context.Context, limit int) ([]*entity.Deal, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"matchStatus": ""},
			{"matchStatus": entity.DealStatusPending},
			{"matchStatus": bson.M{"$exists": false}},
		},
	}

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "parsedAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var deals []*entity.Deal
	if err := cursor.All(ctx, &deals); err != nil {
		return nil, err
	}

	return deals, nil
}

// MarkMatched records that the deal was matched and how many matches it produced
func (r *MongoDealRepository) MarkMatched(ctx context.Context, id string, matchCount int) error {
	return r.updateStatus(ctx, id, bson.M{
		"matchStatus": entity.DealStatusMatched,
		"matchedAt":   time.Now().UTC(),
		"matchCount":  matchCount,
	})
}

// MarkFailed records that the deal could not be processed
func (r *MongoDealRepository) MarkFailed(ctx context.Context, id string, errorDetail string) error {
	return r.updateStatus(ctx, id, bson.M{
		"matchStatus": entity.DealStatusFailed,
		"matchedAt":   time.Now().UTC(),
		"errorDetail": errorDetail,
	})
}

func (r *MongoDealRepository) updateStatus(ctx context.Context, id string, fields bson.M) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
	)
	if err != nil {
		return fmt.Errorf("failed to update deal status: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no deal found with id: %s", id)
	}

	return nil
}

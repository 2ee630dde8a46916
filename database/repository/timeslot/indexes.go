package timeslotRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the timeslots collection.
func (repo *mongoTimeSlotRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// Unique index on TimeSlot ID
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Uniqueness invariant: one slot per owner per UTC start.
		{
			Keys:    bson.D{{Key: "owner", Value: 1}, {Key: "startTime", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_owner_start"),
		},
		// Idempotent re-generation key.
		{
			Keys: bson.D{
				{Key: "owner", Value: 1}, {Key: "date", Value: 1},
				{Key: "blockStart", Value: 1}, {Key: "localStart", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("unique_generation_key"),
		},
		// Primary query pattern: owner + date range + status.
		{
			Keys:    bson.D{{Key: "owner", Value: 1}, {Key: "date", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("owner_date_status_idx"),
		},
	}

	_, err := repo.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create timeslot indexes: %w", err)
	}
	return nil
}

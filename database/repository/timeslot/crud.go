package timeslotRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"slotify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (repo *mongoTimeSlotRepo) InsertMany(ctx context.Context, slots []models.TimeSlot) (int, error) {
	if len(slots) == 0 {
		return 0, nil
	}
	docs := make([]interface{}, len(slots))
	for i, s := range slots {
		docs[i] = s
	}
	// Unordered so one duplicate key does not abort the batch; the unique
	// index on (owner, startTime) backs the uniqueness invariant.
	res, err := repo.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil {
		var bulkErr mongo.BulkWriteException
		if errors.As(err, &bulkErr) {
			return bulkInsertedCount(len(docs), bulkErr), nil
		}
		return 0, fmt.Errorf("failed to insert timeslots: %w", err)
	}
	return len(res.InsertedIDs), nil
}

// bulkInsertedCount derives the real insert count of a partially failed
// unordered InsertMany: the driver reports IDs for every attempted document,
// so the per-document write errors must be subtracted.
func bulkInsertedCount(attempted int, bulkErr mongo.BulkWriteException) int {
	n := attempted - len(bulkErr.WriteErrors)
	if n < 0 {
		return 0
	}
	return n
}

func (repo *mongoTimeSlotRepo) GetByID(ctx context.Context, slotID string) (*models.TimeSlot, error) {
	var slot models.TimeSlot
	err := repo.coll.FindOne(ctx, bson.M{"id": slotID}).Decode(&slot)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch timeslot %s: %w", slotID, err)
	}
	return &slot, nil
}

func (repo *mongoTimeSlotRepo) ExistingKeys(ctx context.Context, owner, fromDate, toDate string) (map[models.SlotKey]struct{}, error) {
	filter := bson.M{
		"owner": owner,
		"date":  bson.M{"$gte": fromDate, "$lte": toDate},
	}
	proj := options.Find().SetProjection(bson.M{
		"owner": 1, "date": 1, "blockStart": 1, "localStart": 1,
	})
	cursor, err := repo.coll.Find(ctx, filter, proj)
	if err != nil {
		return nil, fmt.Errorf("failed to query slot keys for %s: %w", owner, err)
	}
	defer cursor.Close(ctx)

	keys := make(map[models.SlotKey]struct{})
	for cursor.Next(ctx) {
		var slot models.TimeSlot
		if err := cursor.Decode(&slot); err != nil {
			return nil, fmt.Errorf("failed to decode slot key row: %w", err)
		}
		keys[slot.Key()] = struct{}{}
	}
	return keys, cursor.Err()
}

func (repo *mongoTimeSlotRepo) ListByOwner(ctx context.Context, owner, fromDate, toDate string) ([]models.TimeSlot, error) {
	filter := bson.M{
		"owner": owner,
		"date":  bson.M{"$gte": fromDate, "$lte": toDate},
	}
	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list timeslots for %s: %w", owner, err)
	}
	defer cursor.Close(ctx)

	var slots []models.TimeSlot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("failed to decode timeslots: %w", err)
	}
	return slots, nil
}

func (repo *mongoTimeSlotRepo) DeleteFutureUnbooked(ctx context.Context, owner string, from time.Time) (int64, error) {
	filter := bson.M{
		"owner":     owner,
		"startTime": bson.M{"$gte": from},
		"status":    bson.M{"$ne": models.SlotBooked},
	}
	res, err := repo.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to delete future unbooked slots for %s: %w", owner, err)
	}
	return res.DeletedCount, nil
}

func (repo *mongoTimeSlotRepo) SetBlocked(ctx context.Context, slotID string, blocked bool, reason string) error {
	status := models.SlotBlocked
	if !blocked {
		status = models.SlotAvailable
		reason = ""
	}
	update := bson.M{"$set": bson.M{"status": status, "blockReason": reason}}
	// A booked slot stays booked; blocking only applies to open capacity.
	filter := bson.M{"id": slotID, "status": bson.M{"$ne": models.SlotBooked}}
	res, err := repo.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update blocked flag for timeslot: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("timeslot %s not found or already booked", slotID)
	}
	return nil
}

func (repo *mongoTimeSlotRepo) GetMaxAvailableDate(ctx context.Context, owner string) (string, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "date", Value: -1}})
	var slot models.TimeSlot
	err := repo.coll.FindOne(ctx, bson.M{"owner": owner, "status": models.SlotAvailable}, opts).Decode(&slot)
	if err == mongo.ErrNoDocuments {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to fetch max available date for %s: %w", owner, err)
	}
	return slot.Date, nil
}

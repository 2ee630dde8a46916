package timeslotRepo

import (
	"context"
	"log"
	"time"

	"slotify/database"
	"slotify/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// TimeSlotRepository persists materialized slots. Reads used for the
// idempotency check must reflect committed state (see ExistingKeys).
type TimeSlotRepository interface {
	InsertMany(ctx context.Context, slots []models.TimeSlot) (int, error)
	GetByID(ctx context.Context, slotID string) (*models.TimeSlot, error)
	ExistingKeys(ctx context.Context, owner, fromDate, toDate string) (map[models.SlotKey]struct{}, error)
	ListByOwner(ctx context.Context, owner, fromDate, toDate string) ([]models.TimeSlot, error)
	DeleteFutureUnbooked(ctx context.Context, owner string, from time.Time) (int64, error)
	SetBlocked(ctx context.Context, slotID string, blocked bool, reason string) error
	GetMaxAvailableDate(ctx context.Context, owner string) (string, error)
}

type mongoTimeSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoTimeSlotRepo constructs a new MongoDB TimeSlotRepository and
// ensures the collection's indexes exist.
func NewMongoTimeSlotRepo() TimeSlotRepository {
	repo := &mongoTimeSlotRepo{
		coll: database.DB().Collection("timeslots"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		log.Printf("timeslot index creation failed: %v", err)
	}
	return repo
}

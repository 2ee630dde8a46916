package schedulerRepo

import (
	"context"
	"errors"
	"time"

	"slotify/database"
	"slotify/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrSlotUnavailable signals that a conditional slot reservation matched no
// document: the slot is missing, blocked, or already booked. One of two
// racing reservations always observes this.
var ErrSlotUnavailable = errors.New("slot is not available")

// ErrStatusChanged signals that a guarded booking transition matched no
// document because the booking's status moved between read and write.
var ErrStatusChanged = errors.New("booking status changed concurrently")

// BookingUpdate carries the fields a lifecycle transition writes.
type BookingUpdate struct {
	Status             models.BookingStatus
	ConfirmedAt        *time.Time
	CancelledBy        models.Role
	CancelledAt        *time.Time
	CancellationReason string
	RejectionReason    string
	NoShowMarkedBy     models.Role
	NoShowMarkedAt     *time.Time
}

// SchedulerRepository owns the cross-collection writes of the booking
// lifecycle. Each method is atomic: booking and slot either both change or
// neither does.
type SchedulerRepository interface {
	// CreateBookingWithReservation inserts the booking and flips its slot
	// from available to booked in one transaction. Returns
	// ErrSlotUnavailable when the conditional slot update matches nothing.
	CreateBookingWithReservation(ctx context.Context, booking *models.Booking) error

	// TransitionBooking applies update to the booking only while its current
	// status is one of from, optionally releasing the slot back to
	// available. Returns ErrStatusChanged on a lost race.
	TransitionBooking(ctx context.Context, bookingID string, from []models.BookingStatus, update BookingUpdate, releaseSlot bool) error

	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	ListBookingsByProvider(ctx context.Context, providerID string) ([]models.Booking, error)
	ListBookingsByClient(ctx context.Context, clientID string) ([]models.Booking, error)
}

// MongoSchedulerRepo is the MongoDB implementation of SchedulerRepository.
type MongoSchedulerRepo struct {
	bookingColl *mongo.Collection
	slotColl    *mongo.Collection
}

// NewMongoSchedulerRepo constructs a new MongoDB SchedulerRepository.
func NewMongoSchedulerRepo() *MongoSchedulerRepo {
	db := database.DB()
	return &MongoSchedulerRepo{
		bookingColl: db.Collection("bookings"),
		slotColl:    db.Collection("timeslots"),
	}
}

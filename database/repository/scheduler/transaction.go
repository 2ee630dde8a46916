package schedulerRepo

import (
	"context"
	"fmt"

	"slotify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateBookingWithReservation inserts the booking and reserves its slot in
// a single session transaction. The slot update is conditional on
// status=available so only one of two racing reservations can succeed.
func (repo *MongoSchedulerRepo) CreateBookingWithReservation(ctx context.Context, booking *models.Booking) error {
	client := repo.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := repo.bookingColl.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}

		filter := bson.M{
			"id":     booking.SlotID,
			"status": models.SlotAvailable,
		}
		update := bson.M{"$set": bson.M{
			"status":    models.SlotBooked,
			"bookingId": booking.ID,
		}}
		res, err := repo.slotColl.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("reserve slot failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrSlotUnavailable
		}
		return nil
	}

	return repo.runInTransaction(ctx, sess, txnFn)
}

// TransitionBooking applies a guarded status update; the filter re-checks
// the current status so a double confirm/cancel loses cleanly.
func (repo *MongoSchedulerRepo) TransitionBooking(
	ctx context.Context,
	bookingID string,
	from []models.BookingStatus,
	update BookingUpdate,
	releaseSlot bool,
) error {
	set := bson.M{"status": update.Status}
	if update.ConfirmedAt != nil {
		set["confirmedAt"] = update.ConfirmedAt
	}
	if update.CancelledAt != nil {
		set["cancelledBy"] = update.CancelledBy
		set["cancelledAt"] = update.CancelledAt
		set["cancellationReason"] = update.CancellationReason
	}
	if update.RejectionReason != "" {
		set["rejectionReason"] = update.RejectionReason
	}
	if update.NoShowMarkedAt != nil {
		set["noShowMarkedBy"] = update.NoShowMarkedBy
		set["noShowMarkedAt"] = update.NoShowMarkedAt
	}

	filter := bson.M{
		"id":     bookingID,
		"status": bson.M{"$in": from},
	}

	applyBooking := func(sc context.Context) (*models.Booking, error) {
		res := repo.bookingColl.FindOneAndUpdate(sc, filter, bson.M{"$set": set})
		var prev models.Booking
		if err := res.Decode(&prev); err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, ErrStatusChanged
			}
			return nil, fmt.Errorf("booking transition failed: %w", err)
		}
		return &prev, nil
	}

	if !releaseSlot {
		_, err := applyBooking(ctx)
		return err
	}

	client := repo.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		prev, err := applyBooking(sc)
		if err != nil {
			return err
		}
		slotUpdate := bson.M{"$set": bson.M{"status": models.SlotAvailable}, "$unset": bson.M{"bookingId": ""}}
		if _, err := repo.slotColl.UpdateOne(sc, bson.M{"id": prev.SlotID}, slotUpdate); err != nil {
			return fmt.Errorf("release slot failed: %w", err)
		}
		return nil
	}

	return repo.runInTransaction(ctx, sess, txnFn)
}

func (repo *MongoSchedulerRepo) runInTransaction(ctx context.Context, sess mongo.Session, txnFn func(mongo.SessionContext) error) error {
	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}

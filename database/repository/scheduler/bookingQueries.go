package schedulerRepo

import (
	"context"
	"fmt"

	"slotify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (repo *MongoSchedulerRepo) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	var booking models.Booking
	err := repo.bookingColl.FindOne(ctx, bson.M{"id": bookingID}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking %s: %w", bookingID, err)
	}
	return &booking, nil
}

func (repo *MongoSchedulerRepo) ListBookingsByProvider(ctx context.Context, providerID string) ([]models.Booking, error) {
	return repo.listBookings(ctx, bson.M{"providerId": providerID})
}

func (repo *MongoSchedulerRepo) ListBookingsByClient(ctx context.Context, clientID string) ([]models.Booking, error) {
	return repo.listBookings(ctx, bson.M{"clientId": clientID})
}

func (repo *MongoSchedulerRepo) listBookings(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "scheduledAt", Value: 1}})
	cursor, err := repo.bookingColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

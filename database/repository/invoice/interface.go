package invoiceRepo

import (
	"context"
	"fmt"

	"slotify/database"
	"slotify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// InvoiceRepository persists invoice records linked to bookings. The Stripe
// invoice is the billing source of truth; these rows exist for lookup and
// audit.
type InvoiceRepository interface {
	Create(ctx context.Context, inv models.Invoice) error
	GetByBooking(ctx context.Context, bookingID string) (*models.Invoice, error)
}

type mongoInvoiceRepo struct {
	coll *mongo.Collection
}

// NewMongoInvoiceRepo constructs a new MongoDB InvoiceRepository.
func NewMongoInvoiceRepo() InvoiceRepository {
	return &mongoInvoiceRepo{
		coll: database.DB().Collection("invoices"),
	}
}

func (repo *mongoInvoiceRepo) Create(ctx context.Context, inv models.Invoice) error {
	if _, err := repo.coll.InsertOne(ctx, inv); err != nil {
		return fmt.Errorf("failed to insert invoice: %w", err)
	}
	return nil
}

func (repo *mongoInvoiceRepo) GetByBooking(ctx context.Context, bookingID string) (*models.Invoice, error) {
	var inv models.Invoice
	err := repo.coll.FindOne(ctx, bson.M{"bookingId": bookingID}).Decode(&inv)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch invoice for booking %s: %w", bookingID, err)
	}
	return &inv, nil
}

package billing

import (
	"context"
	"time"

	"slotify/models"
)

// InvoiceService raises invoices for bookings created against slots that
// carry a billing override. Invoice creation happens before the booking row
// is committed; a failure here aborts booking creation.
type InvoiceService interface {
	CreateInvoice(ctx context.Context, customerID, merchantID string, amount float64, currency string, dueAt time.Time) (*models.Invoice, error)
}

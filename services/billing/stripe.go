package billing

import (
	"context"
	"fmt"
	"time"

	"slotify/models"
	"slotify/utils"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/invoice"
	"github.com/stripe/stripe-go/v76/invoiceitem"
	"go.uber.org/zap"
)

// StripeInvoiceService creates real invoices through Stripe. The customer ID
// is expected to be a Stripe customer; the merchant is recorded in metadata.
type StripeInvoiceService struct {
	Logger *zap.Logger
}

func NewStripeInvoiceService() *StripeInvoiceService {
	return &StripeInvoiceService{Logger: utils.GetLogger()}
}

func (s *StripeInvoiceService) CreateInvoice(
	ctx context.Context,
	customerID, merchantID string,
	amount float64,
	currency string,
	dueAt time.Time,
) (*models.Invoice, error) {
	itemParams := &stripe.InvoiceItemParams{
		Customer: stripe.String(customerID),
		Amount:   stripe.Int64(int64(amount * 100)),
		Currency: stripe.String(currency),
	}
	itemParams.Context = ctx
	if _, err := invoiceitem.New(itemParams); err != nil {
		return nil, fmt.Errorf("failed to create stripe invoice item: %w", err)
	}

	invParams := &stripe.InvoiceParams{
		Customer:         stripe.String(customerID),
		CollectionMethod: stripe.String(string(stripe.InvoiceCollectionMethodSendInvoice)),
		DueDate:          stripe.Int64(dueAt.Unix()),
	}
	invParams.Context = ctx
	invParams.AddMetadata("merchantId", merchantID)

	stripeInv, err := invoice.New(invParams)
	if err != nil {
		return nil, fmt.Errorf("failed to create stripe invoice: %w", err)
	}

	inv := &models.Invoice{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		MerchantID: merchantID,
		Amount:     amount,
		Currency:   currency,
		DueAt:      dueAt,
		Status:     string(stripeInv.Status),
		ExternalID: stripeInv.ID,
		CreatedAt:  time.Now().UTC(),
	}
	s.Logger.Info("invoice created",
		zap.String("invoiceId", inv.ID),
		zap.String("stripeId", stripeInv.ID),
		zap.Float64("amount", amount),
		zap.String("currency", currency))
	return inv, nil
}

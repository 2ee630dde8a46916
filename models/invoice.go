package models

import "time"

// Invoice represents an invoice raised when a booking is created against a
// slot carrying a billing override.
type Invoice struct {
	ID         string    `bson:"id" json:"id"`
	BookingID  string    `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
	CustomerID string    `bson:"customerId" json:"customerId"`
	MerchantID string    `bson:"merchantId" json:"merchantId"`
	Amount     float64   `bson:"amount" json:"amount"`
	Currency   string    `bson:"currency" json:"currency"`
	DueAt      time.Time `bson:"dueAt" json:"dueAt"`
	Status     string    `bson:"status" json:"status"` // e.g. "open"
	ExternalID string    `bson:"externalId,omitempty" json:"externalId,omitempty"` // Stripe invoice ID
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

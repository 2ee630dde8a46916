package models

import "time"

// BookingStatus is a booking's lifecycle state.
type BookingStatus string

const (
	BookingPending        BookingStatus = "pending"
	BookingConfirmed      BookingStatus = "confirmed"
	BookingRejected       BookingStatus = "rejected"
	BookingCancelled      BookingStatus = "cancelled"
	BookingCompleted      BookingStatus = "completed"
	BookingNoShowClient   BookingStatus = "no_show_client"
	BookingNoShowProvider BookingStatus = "no_show_provider"
)

// Terminal reports whether the status permits no further transitions.
func (s BookingStatus) Terminal() bool {
	switch s {
	case BookingRejected, BookingCancelled, BookingCompleted,
		BookingNoShowClient, BookingNoShowProvider:
		return true
	}
	return false
}

// IsNoShow reports whether the status records an absent party.
func (s BookingStatus) IsNoShow() bool {
	return s == BookingNoShowClient || s == BookingNoShowProvider
}

// Role identifies which party performs a booking action.
type Role string

const (
	RoleClient   Role = "client"
	RoleProvider Role = "provider"
)

// Booking is a client's exclusive claim on one slot. Bookings are never
// deleted; a terminal status ends the lifecycle instead.
type Booking struct {
	ID              string        `bson:"id" json:"id"`
	ClientID        string        `bson:"clientId" json:"clientId"`
	ProviderID      string        `bson:"providerId" json:"providerId"`
	SlotID          string        `bson:"slotId" json:"slotId"`
	Status          BookingStatus `bson:"status" json:"status"`
	ScheduledAt     time.Time     `bson:"scheduledAt" json:"scheduledAt"` // UTC slot start
	DurationMinutes int           `bson:"durationMinutes" json:"durationMinutes"`
	BookedAt        time.Time     `bson:"bookedAt" json:"bookedAt"`
	ConfirmedAt     *time.Time    `bson:"confirmedAt,omitempty" json:"confirmedAt,omitempty"`
	InvoiceID       string        `bson:"invoiceId,omitempty" json:"invoiceId,omitempty"`

	CancelledBy        Role       `bson:"cancelledBy,omitempty" json:"cancelledBy,omitempty"`
	CancelledAt        *time.Time `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	CancellationReason string     `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`

	RejectionReason string     `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
	NoShowMarkedBy  Role       `bson:"noShowMarkedBy,omitempty" json:"noShowMarkedBy,omitempty"`
	NoShowMarkedAt  *time.Time `bson:"noShowMarkedAt,omitempty" json:"noShowMarkedAt,omitempty"`
}

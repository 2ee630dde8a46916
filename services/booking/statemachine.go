package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	schedulerRepo "slotify/database/repository/scheduler"
	"slotify/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Create reserves an available slot for a client and opens a pending
// booking. The slot flip is a conditional update, so of two racing creates
// exactly one succeeds; the loser gets a ConflictError. When the slot
// carries a billing override the invoice is created before the booking row
// is committed, and an invoice failure aborts creation.
func (sm *DefaultStateMachine) Create(ctx context.Context, clientID, slotID string) (*models.Booking, error) {
	slot, err := sm.Slots.GetByID(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, NotFoundError{Resource: "slot", ID: slotID}
	}
	if slot.Status != models.SlotAvailable {
		return nil, ConflictError{Resource: "slot", Message: fmt.Sprintf("slot %s is %s", slotID, slot.Status)}
	}

	now := sm.Now().UTC()
	booking := &models.Booking{
		ID:              uuid.New().String(),
		ClientID:        clientID,
		ProviderID:      slot.Owner,
		SlotID:          slot.ID,
		Status:          models.BookingPending,
		ScheduledAt:     slot.StartTime,
		DurationMinutes: slot.DurationMinutes(),
		BookedAt:        now,
	}

	var invoice *models.Invoice
	if slot.Billing != nil {
		dueAt := now.AddDate(0, 0, slot.Billing.DueInDays)
		inv, err := sm.Billing.CreateInvoice(ctx, clientID, slot.Owner, slot.Billing.Amount, slot.Billing.Currency, dueAt)
		if err != nil {
			return nil, fmt.Errorf("invoice creation failed, booking aborted: %w", err)
		}
		booking.InvoiceID = inv.ID
		invoice = inv
	}

	if err := sm.Repo.CreateBookingWithReservation(ctx, booking); err != nil {
		if errors.Is(err, schedulerRepo.ErrSlotUnavailable) {
			return nil, ConflictError{Resource: "slot", Message: fmt.Sprintf("slot %s was booked concurrently", slotID)}
		}
		return nil, err
	}

	if invoice != nil {
		invoice.BookingID = booking.ID
		if err := sm.Invoices.Create(ctx, *invoice); err != nil {
			// The Stripe invoice exists and the booking committed; a missing
			// local record is recoverable, not a reason to fail the create.
			sm.Logger.Warn("invoice record persistence failed",
				zap.String("bookingId", booking.ID),
				zap.String("invoiceId", invoice.ID),
				zap.Error(err))
		}
	}

	sm.Logger.Info("booking created",
		zap.String("bookingId", booking.ID),
		zap.String("slotId", slot.ID),
		zap.String("clientId", clientID))
	sm.Notifier.NotifyBookingCreated(ctx, *booking)
	return booking, nil
}

// Confirm moves a pending booking to confirmed and stamps the confirmation
// time. The state machine itself imposes no timing rule here.
func (sm *DefaultStateMachine) Confirm(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := sm.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingPending {
		return nil, invalidTransition(booking.Status, models.BookingConfirmed)
	}

	now := sm.Now().UTC()
	update := schedulerRepo.BookingUpdate{Status: models.BookingConfirmed, ConfirmedAt: &now}
	if err := sm.apply(ctx, booking, []models.BookingStatus{models.BookingPending}, update, false); err != nil {
		return nil, err
	}
	booking.Status = models.BookingConfirmed
	booking.ConfirmedAt = &now
	return booking, nil
}

// Reject moves a pending booking to rejected and releases the slot back to
// available.
func (sm *DefaultStateMachine) Reject(ctx context.Context, bookingID, reason string) (*models.Booking, error) {
	booking, err := sm.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingPending {
		return nil, invalidTransition(booking.Status, models.BookingRejected)
	}

	update := schedulerRepo.BookingUpdate{Status: models.BookingRejected, RejectionReason: reason}
	if err := sm.apply(ctx, booking, []models.BookingStatus{models.BookingPending}, update, true); err != nil {
		return nil, err
	}
	booking.Status = models.BookingRejected
	booking.RejectionReason = reason
	return booking, nil
}

// Cancel moves a pending or confirmed booking to cancelled with a mandatory
// reason and releases the slot.
func (sm *DefaultStateMachine) Cancel(ctx context.Context, bookingID string, cancelledBy models.Role, reason string) (*models.Booking, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ValidationError{Field: "reason", Message: "cancellation reason is required"}
	}
	if utf8.RuneCountInString(reason) > MaxCancellationReasonLen {
		return nil, ValidationError{
			Field:   "reason",
			Message: fmt.Sprintf("cancellation reason exceeds %d characters", MaxCancellationReasonLen),
		}
	}
	if cancelledBy != models.RoleClient && cancelledBy != models.RoleProvider {
		return nil, ValidationError{Field: "cancelledBy", Message: "must be client or provider"}
	}

	booking, err := sm.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingPending && booking.Status != models.BookingConfirmed {
		return nil, invalidTransition(booking.Status, models.BookingCancelled)
	}

	now := sm.Now().UTC()
	update := schedulerRepo.BookingUpdate{
		Status:             models.BookingCancelled,
		CancelledBy:        cancelledBy,
		CancelledAt:        &now,
		CancellationReason: reason,
	}
	from := []models.BookingStatus{models.BookingPending, models.BookingConfirmed}
	if err := sm.apply(ctx, booking, from, update, true); err != nil {
		return nil, err
	}
	booking.Status = models.BookingCancelled
	booking.CancelledBy = cancelledBy
	booking.CancelledAt = &now
	booking.CancellationReason = reason
	return booking, nil
}

// MarkNoShow records that one party failed to attend a confirmed
// appointment. The timing guard is asymmetric: a client may mark the
// provider absent from scheduledAt+5m, a provider may mark the client absent
// from scheduledAt+10m. The slot stays consumed for audit.
func (sm *DefaultStateMachine) MarkNoShow(ctx context.Context, bookingID string, marker models.Role) (*models.Booking, error) {
	booking, err := sm.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status.IsNoShow() {
		return nil, BusinessLogicError{
			Code:    CodeNoShowDuplicate,
			Message: fmt.Sprintf("booking %s is already marked %s", bookingID, booking.Status),
		}
	}
	if booking.Status != models.BookingConfirmed {
		return nil, invalidTransition(booking.Status, models.BookingNoShowClient)
	}

	var window time.Duration
	var target models.BookingStatus
	switch marker {
	case models.RoleClient:
		window, target = ClientNoShowWindow, models.BookingNoShowProvider
	case models.RoleProvider:
		window, target = ProviderNoShowWindow, models.BookingNoShowClient
	default:
		return nil, ValidationError{Field: "marker", Message: "must be client or provider"}
	}

	now := sm.Now().UTC()
	earliest := booking.ScheduledAt.Add(window)
	if now.Before(earliest) {
		return nil, BusinessLogicError{
			Code:    CodeNoShowTooEarly,
			Message: fmt.Sprintf("no-show may be marked from %s", earliest.Format(time.RFC3339)),
		}
	}

	update := schedulerRepo.BookingUpdate{
		Status:         target,
		NoShowMarkedBy: marker,
		NoShowMarkedAt: &now,
	}
	// Slot is not released: the appointment time was consumed.
	if err := sm.apply(ctx, booking, []models.BookingStatus{models.BookingConfirmed}, update, false); err != nil {
		return nil, err
	}
	booking.Status = target
	booking.NoShowMarkedBy = marker
	booking.NoShowMarkedAt = &now
	return booking, nil
}

// Complete closes out a confirmed booking after the appointment took place.
func (sm *DefaultStateMachine) Complete(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := sm.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingConfirmed {
		return nil, invalidTransition(booking.Status, models.BookingCompleted)
	}

	update := schedulerRepo.BookingUpdate{Status: models.BookingCompleted}
	if err := sm.apply(ctx, booking, []models.BookingStatus{models.BookingConfirmed}, update, false); err != nil {
		return nil, err
	}
	booking.Status = models.BookingCompleted
	return booking, nil
}

func (sm *DefaultStateMachine) load(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := sm.Repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, NotFoundError{Resource: "booking", ID: bookingID}
	}
	return booking, nil
}

// apply runs the guarded repository transition and maps a lost status race
// to a ConflictError, then fires the transition notification.
func (sm *DefaultStateMachine) apply(
	ctx context.Context,
	booking *models.Booking,
	from []models.BookingStatus,
	update schedulerRepo.BookingUpdate,
	releaseSlot bool,
) error {
	previous := booking.Status
	if err := sm.Repo.TransitionBooking(ctx, booking.ID, from, update, releaseSlot); err != nil {
		if errors.Is(err, schedulerRepo.ErrStatusChanged) {
			return ConflictError{
				Resource: "booking",
				Message:  fmt.Sprintf("booking %s changed status concurrently", booking.ID),
			}
		}
		return err
	}
	notified := *booking
	notified.Status = update.Status
	sm.Notifier.NotifyBookingTransition(ctx, notified, previous)
	return nil
}

func invalidTransition(from, to models.BookingStatus) error {
	return BusinessLogicError{
		Code:    CodeInvalidTransition,
		Message: fmt.Sprintf("cannot transition booking from %s to %s", from, to),
	}
}

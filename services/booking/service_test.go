package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"slotify/models"
)

func newTestService(now time.Time) (*Service, *memStore) {
	sm, store, _, _ := newTestMachine(now)
	svc := &Service{
		Machine: sm,
		Repo:    store,
		Now:     func() time.Time { return now },
	}
	return svc, store
}

func TestServiceConfirmWithinWindow(t *testing.T) {
	bookedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc, store := newTestService(bookedAt.Add(14 * time.Minute))
	booking := seedBooking(store, models.BookingPending)
	booking.BookedAt = bookedAt

	got, err := svc.Confirm(context.Background(), "bk-1")
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if got.Status != models.BookingConfirmed {
		t.Errorf("status = %s, want confirmed", got.Status)
	}
}

func TestServiceConfirmWindowExpired(t *testing.T) {
	bookedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc, store := newTestService(bookedAt.Add(16 * time.Minute))
	booking := seedBooking(store, models.BookingPending)
	booking.BookedAt = bookedAt

	_, err := svc.Confirm(context.Background(), "bk-1")
	var ble BusinessLogicError
	if !errors.As(err, &ble) || ble.Code != CodeConfirmTooLate {
		t.Fatalf("expected %s, got %v", CodeConfirmTooLate, err)
	}
	if store.bookings["bk-1"].Status != models.BookingPending {
		t.Errorf("booking mutated after expired window")
	}
}

func TestServiceConfirmAtDeadline(t *testing.T) {
	// Exactly at the deadline still counts as inside the window.
	bookedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc, store := newTestService(bookedAt.Add(ConfirmationWindow))
	booking := seedBooking(store, models.BookingPending)
	booking.BookedAt = bookedAt

	if _, err := svc.Confirm(context.Background(), "bk-1"); err != nil {
		t.Fatalf("Confirm at deadline: %v", err)
	}
}

func TestServiceConfirmMissingBooking(t *testing.T) {
	svc, _ := newTestService(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	_, err := svc.Confirm(context.Background(), "missing")
	var nf NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestServiceConfirmNonPendingSkipsWindowCheck(t *testing.T) {
	// A non-pending booking fails on the transition rule, not the window.
	bookedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc, store := newTestService(bookedAt.Add(2 * time.Hour))
	booking := seedBooking(store, models.BookingCancelled)
	booking.BookedAt = bookedAt

	_, err := svc.Confirm(context.Background(), "bk-1")
	var ble BusinessLogicError
	if !errors.As(err, &ble) || ble.Code != CodeInvalidTransition {
		t.Fatalf("expected %s, got %v", CodeInvalidTransition, err)
	}
}

package booking

import (
	"context"
	"fmt"
	"time"

	schedulerRepo "slotify/database/repository/scheduler"
	"slotify/models"
)

// Service wraps the state machine with the surrounding business rules that
// do not belong inside it, currently the 15-minute confirmation window.
type Service struct {
	Machine StateMachineService
	Repo    schedulerRepo.SchedulerRepository
	Now     func() time.Time
}

func NewService(machine StateMachineService, repo schedulerRepo.SchedulerRepository) *Service {
	return &Service{Machine: machine, Repo: repo, Now: time.Now}
}

// Confirm enforces the confirmation window before delegating: a pending
// booking older than ConfirmationWindow can no longer be confirmed.
func (s *Service) Confirm(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := s.Repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, NotFoundError{Resource: "booking", ID: bookingID}
	}
	if booking.Status == models.BookingPending {
		deadline := booking.BookedAt.Add(ConfirmationWindow)
		if s.Now().UTC().After(deadline) {
			return nil, BusinessLogicError{
				Code:    CodeConfirmTooLate,
				Message: fmt.Sprintf("confirmation window closed at %s", deadline.Format(time.RFC3339)),
			}
		}
	}
	return s.Machine.Confirm(ctx, bookingID)
}

package booking

import (
	"context"
	"time"

	invoiceRepo "slotify/database/repository/invoice"
	schedulerRepo "slotify/database/repository/scheduler"
	timeslotRepo "slotify/database/repository/timeslot"
	"slotify/models"
	"slotify/services/billing"
	"slotify/services/notification"
	"slotify/utils"

	"go.uber.org/zap"
)

// StateMachineService governs the lifecycle of a booking against its slot.
// Every transition is atomic with the slot mutation and re-validates the
// booking's current status at execution time.
type StateMachineService interface {
	Create(ctx context.Context, clientID, slotID string) (*models.Booking, error)
	Confirm(ctx context.Context, bookingID string) (*models.Booking, error)
	Reject(ctx context.Context, bookingID, reason string) (*models.Booking, error)
	Cancel(ctx context.Context, bookingID string, cancelledBy models.Role, reason string) (*models.Booking, error)
	MarkNoShow(ctx context.Context, bookingID string, marker models.Role) (*models.Booking, error)
	Complete(ctx context.Context, bookingID string) (*models.Booking, error)
}

// DefaultStateMachine is the production implementation.
type DefaultStateMachine struct {
	Repo     schedulerRepo.SchedulerRepository
	Slots    timeslotRepo.TimeSlotRepository
	Billing  billing.InvoiceService
	Invoices invoiceRepo.InvoiceRepository
	Notifier notification.NotificationService
	Now      func() time.Time
	Logger   *zap.Logger
}

func NewDefaultStateMachine(
	repo schedulerRepo.SchedulerRepository,
	slots timeslotRepo.TimeSlotRepository,
	billingSvc billing.InvoiceService,
	invoices invoiceRepo.InvoiceRepository,
	notifier notification.NotificationService,
) *DefaultStateMachine {
	return &DefaultStateMachine{
		Repo:     repo,
		Slots:    slots,
		Billing:  billingSvc,
		Invoices: invoices,
		Notifier: notifier,
		Now:      time.Now,
		Logger:   utils.GetLogger(),
	}
}

package notification

import (
	"context"

	"slotify/models"
	"slotify/utils"

	"go.uber.org/zap"
)

// NotificationService announces booking lifecycle events. It is strictly
// fire-and-forget: a delivery failure must never roll back a transition, so
// implementations log and swallow errors.
type NotificationService interface {
	NotifyBookingCreated(ctx context.Context, booking models.Booking)
	NotifyBookingTransition(ctx context.Context, booking models.Booking, previous models.BookingStatus)
}

// DefaultNotificationService logs notifications; delivery transports hang
// off this seam.
type DefaultNotificationService struct {
	Logger *zap.Logger
}

func NewDefaultNotificationService() *DefaultNotificationService {
	return &DefaultNotificationService{Logger: utils.GetLogger()}
}

func (s *DefaultNotificationService) NotifyBookingCreated(ctx context.Context, booking models.Booking) {
	s.Logger.Info("booking created",
		zap.String("bookingId", booking.ID),
		zap.String("clientId", booking.ClientID),
		zap.String("providerId", booking.ProviderID),
		zap.Time("scheduledAt", booking.ScheduledAt))
}

func (s *DefaultNotificationService) NotifyBookingTransition(ctx context.Context, booking models.Booking, previous models.BookingStatus) {
	s.Logger.Info("booking transition",
		zap.String("bookingId", booking.ID),
		zap.String("from", string(previous)),
		zap.String("to", string(booking.Status)))
}

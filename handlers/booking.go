package handlers

import (
	"net/http"

	invoiceRepo "slotify/database/repository/invoice"
	schedulerRepo "slotify/database/repository/scheduler"
	"slotify/models"
	bookingSvc "slotify/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	Service  *bookingSvc.Service
	Machine  bookingSvc.StateMachineService
	Repo     schedulerRepo.SchedulerRepository
	Invoices invoiceRepo.InvoiceRepository
	Logger   *zap.Logger
}

func NewBookingHandler(service *bookingSvc.Service, machine bookingSvc.StateMachineService, repo schedulerRepo.SchedulerRepository, invoices invoiceRepo.InvoiceRepository, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: service, Machine: machine, Repo: repo, Invoices: invoices, Logger: logger}
}

// CreateBooking reserves a slot for a client.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var input struct {
		ClientID string `json:"clientId" binding:"required"`
		SlotID   string `json:"slotId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	booking, err := h.Machine.Create(c.Request.Context(), input.ClientID, input.SlotID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// ConfirmBooking confirms a pending booking within the confirmation window.
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	booking, err := h.Service.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// RejectBooking rejects a pending booking and frees its slot.
func (h *BookingHandler) RejectBooking(c *gin.Context) {
	var input struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&input) // reason is optional on reject

	booking, err := h.Machine.Reject(c.Request.Context(), c.Param("id"), input.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// CancelBooking cancels a pending or confirmed booking with a mandatory reason.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	var input struct {
		CancelledBy models.Role `json:"cancelledBy" binding:"required"`
		Reason      string      `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	booking, err := h.Machine.Cancel(c.Request.Context(), c.Param("id"), input.CancelledBy, input.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// MarkNoShow records an absent party on a confirmed booking.
func (h *BookingHandler) MarkNoShow(c *gin.Context) {
	var input struct {
		Marker models.Role `json:"marker" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	booking, err := h.Machine.MarkNoShow(c.Request.Context(), c.Param("id"), input.Marker)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// CompleteBooking closes a confirmed booking after the appointment.
func (h *BookingHandler) CompleteBooking(c *gin.Context) {
	booking, err := h.Machine.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ListBookings returns bookings for a provider or a client, whichever query
// parameter is present.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	if providerID := c.Query("providerId"); providerID != "" {
		bookings, err := h.Repo.ListBookingsByProvider(c.Request.Context(), providerID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, bookings)
		return
	}
	if clientID := c.Query("clientId"); clientID != "" {
		bookings, err := h.Repo.ListBookingsByClient(c.Request.Context(), clientID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, bookings)
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "providerId or clientId query parameter is required"})
}

// GetBookingInvoice fetches the invoice record raised for a booking.
func (h *BookingHandler) GetBookingInvoice(c *gin.Context) {
	inv, err := h.Invoices.GetByBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if inv == nil {
		respondError(c, bookingSvc.NotFoundError{Resource: "invoice", ID: c.Param("id")})
		return
	}
	c.JSON(http.StatusOK, inv)
}

// GetBooking fetches one booking by ID.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	booking, err := h.Repo.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if booking == nil {
		respondError(c, bookingSvc.NotFoundError{Resource: "booking", ID: c.Param("id")})
		return
	}
	c.JSON(http.StatusOK, booking)
}

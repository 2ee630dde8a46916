package handlers

import (
	"net/http"
	"time"

	exceptionRepo "slotify/database/repository/exception"
	"slotify/models"
	"slotify/services/scheduling"
	"slotify/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ExceptionHandler manages schedule exceptions (blackout windows).
type ExceptionHandler struct {
	Exceptions exceptionRepo.ExceptionRepository
	Scheduling *scheduling.Service
}

func NewExceptionHandler(exceptions exceptionRepo.ExceptionRepository, sched *scheduling.Service) *ExceptionHandler {
	return &ExceptionHandler{Exceptions: exceptions, Scheduling: sched}
}

// CreateException stores a blackout window and blocks any already-generated
// slots it covers.
func (h *ExceptionHandler) CreateException(c *gin.Context) {
	var exc models.ScheduleException
	if err := c.ShouldBindJSON(&exc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if !exc.EndDatetime.After(exc.StartDatetime) {
		utils.JSONError(c, http.StatusBadRequest, "validation failed", "endDatetime must be after startDatetime")
		return
	}
	if exc.ID == "" {
		exc.ID = uuid.New().String()
	}
	exc.CreatedAt = time.Now().UTC()

	if err := h.Exceptions.Create(c.Request.Context(), exc); err != nil {
		respondError(c, err)
		return
	}

	// Blocking spans a year of materialized slots from the exception start.
	dates := scheduling.DateRange{
		From: exc.StartDatetime.Format("2006-01-02"),
		To:   exc.StartDatetime.AddDate(1, 0, 0).Format("2006-01-02"),
	}
	blocked, err := h.Scheduling.ApplyExceptionToMaterialized(c.Request.Context(), exc, dates)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"exception": exc, "slotsBlocked": blocked})
}

// ListExceptions returns an owner's exceptions.
func (h *ExceptionHandler) ListExceptions(c *gin.Context) {
	exceptions, err := h.Exceptions.ListByOwner(c.Request.Context(), c.Param("owner"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, exceptions)
}

// DeleteException removes an exception; future regenerations stop honoring it.
func (h *ExceptionHandler) DeleteException(c *gin.Context) {
	if err := h.Exceptions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

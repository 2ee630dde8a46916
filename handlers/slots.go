package handlers

import (
	"net/http"

	timeslotRepo "slotify/database/repository/timeslot"
	"slotify/services/scheduling"

	"github.com/gin-gonic/gin"
)

// SlotHandler exposes slot generation and listing.
type SlotHandler struct {
	Scheduling *scheduling.Service
	Slots      timeslotRepo.TimeSlotRepository
}

func NewSlotHandler(sched *scheduling.Service, slots timeslotRepo.TimeSlotRepository) *SlotHandler {
	return &SlotHandler{Scheduling: sched, Slots: slots}
}

// GenerateSlots expands the owner's template over a date range on demand.
func (h *SlotHandler) GenerateSlots(c *gin.Context) {
	var input struct {
		Owner              string `json:"owner" binding:"required"`
		From               string `json:"from" binding:"required"`
		To                 string `json:"to" binding:"required"`
		MaterializeBlocked bool   `json:"materializeBlocked"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	inserted, err := h.Scheduling.RegenerateForOwner(
		c.Request.Context(),
		input.Owner,
		scheduling.DateRange{From: input.From, To: input.To},
		input.MaterializeBlocked,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inserted": inserted})
}

// ListSlots returns an owner's slots in a date range.
func (h *SlotHandler) ListSlots(c *gin.Context) {
	owner := c.Param("owner")
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to query parameters are required"})
		return
	}

	slots, err := h.Slots.ListByOwner(c.Request.Context(), owner, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	maxDate, err := h.Slots.GetMaxAvailableDate(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots, "maxAvailableDate": maxDate})
}

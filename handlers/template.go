package handlers

import (
	"net/http"
	"time"

	"slotify/config"
	"slotify/cron"
	templateRepo "slotify/database/repository/template"
	"slotify/models"
	bookingSvc "slotify/services/booking"
	"slotify/services/scheduling"
	"slotify/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TemplateHandler manages weekly availability templates.
type TemplateHandler struct {
	Scheduling *scheduling.Service
	Templates  templateRepo.TemplateRepository
	Queue      *asynq.Client
}

func NewTemplateHandler(sched *scheduling.Service, templates templateRepo.TemplateRepository, queue *asynq.Client) *TemplateHandler {
	return &TemplateHandler{Scheduling: sched, Templates: templates, Queue: queue}
}

// SaveTemplate creates or replaces a provider's weekly template. The
// response reports which major fields changed, since those trigger slot
// regeneration.
func (h *TemplateHandler) SaveTemplate(c *gin.Context) {
	var tmpl models.WeeklyTemplate
	if err := c.ShouldBindJSON(&tmpl); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if tmpl.ID == "" {
		tmpl.ID = uuid.New().String()
	}
	if tmpl.Status == "" {
		tmpl.Status = models.TemplateActive
	}

	changed, err := h.Scheduling.SaveTemplate(c.Request.Context(), tmpl)
	if err != nil {
		respondError(c, err)
		return
	}

	// A major change dropped the future unbooked slots; queue their rebuild.
	if len(changed) > 0 && h.Queue != nil {
		now := time.Now().UTC()
		from := now.Format("2006-01-02")
		to := now.AddDate(0, 0, config.AppConfig.GenerationHorizonDays).Format("2006-01-02")
		if err := cron.EnqueueRegenerate(h.Queue, tmpl.Owner, from, to); err != nil {
			utils.GetLogger().Warn("failed to enqueue slot regeneration",
				zap.String("owner", tmpl.Owner), zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, gin.H{"template": tmpl, "majorFieldsChanged": changed})
}

// GetTemplate fetches the active template for an owner.
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	owner := c.Param("owner")
	tmpl, err := h.Templates.GetByOwner(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err)
		return
	}
	if tmpl == nil {
		respondError(c, bookingSvc.NotFoundError{Resource: "template", ID: owner})
		return
	}
	c.JSON(http.StatusOK, tmpl)
}

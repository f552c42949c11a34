package handlers

import (
	"net/http"
	"time"

	"shiffy/middleware"
	"shiffy/models"
	"shiffy/services/schedule"
	"shiffy/services/weekwindow"
	"shiffy/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ScheduleHandler struct {
	Service  schedule.ScheduleService
	Window   weekwindow.Config
	Location *time.Location
	Now      func() time.Time
}

func NewScheduleHandler(svc schedule.ScheduleService, window weekwindow.Config, loc *time.Location) *ScheduleHandler {
	return &ScheduleHandler{Service: svc, Window: window, Location: loc, Now: time.Now}
}

// visibleTo hides drafts from employees.
func visibleTo(role string, s *models.Schedule) bool {
	if s == nil {
		return false
	}
	return role == utils.RoleManager || s.Status == models.ScheduleStatusPublished
}

// GetScheduleWindowHandler handles GET /api/schedules.
func (h *ScheduleHandler) GetScheduleWindowHandler(c *gin.Context) {
	shopID := c.GetString(middleware.CtxShopID)
	role := c.GetString(middleware.CtxRole)

	ref, err := referenceDate(c, h.Now, h.Location)
	if err != nil {
		respondError(c, "Invalid date", err)
		return
	}
	cfg, err := windowQuery(c, h.Window)
	if err != nil {
		respondError(c, "Invalid window", err)
		return
	}
	cfg.WeekStartsOn = h.Service.WeekStartsOn()

	window, err := h.Service.LoadWindow(c.Request.Context(), shopID, ref, cfg)
	if err != nil {
		respondError(c, "Failed to load schedules", err)
		return
	}
	for i := range window {
		if !visibleTo(role, window[i].Schedule) {
			window[i].Schedule = nil
		}
	}

	c.JSON(http.StatusOK, gin.H{"weeks": window})
}

// GetScheduleHandler handles GET /api/schedules/:weekStart.
func (h *ScheduleHandler) GetScheduleHandler(c *gin.Context) {
	shopID := c.GetString(middleware.CtxShopID)
	role := c.GetString(middleware.CtxRole)

	s, err := h.Service.GetSchedule(c.Request.Context(), shopID, c.Param("weekStart"))
	if err != nil {
		respondError(c, "Failed to fetch schedule", err)
		return
	}
	if !visibleTo(role, s) {
		respondError(c, "Failed to fetch schedule", schedule.ErrNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"schedule": s})
}

// GenerateScheduleHandler handles POST /api/schedules/:weekStart/generate.
// With ?async=true the work is queued and 202 is returned.
func (h *ScheduleHandler) GenerateScheduleHandler(c *gin.Context) {
	logger := getLogger(c)
	shopID := c.GetString(middleware.CtxShopID)
	weekStart := c.Param("weekStart")

	if c.Query("async") == "true" {
		if err := h.Service.EnqueueGeneration(c.Request.Context(), shopID, weekStart); err != nil {
			respondError(c, "Failed to queue schedule generation", err)
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"message": "Schedule generation queued", "week_start": weekStart})
		return
	}

	s, err := h.Service.GenerateSchedule(c.Request.Context(), shopID, weekStart)
	if err != nil {
		logger.Error("Failed to generate schedule", zap.String("shopId", shopID), zap.String("weekStart", weekStart), zap.Error(err))
		respondError(c, "Failed to generate schedule", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Schedule generated", "schedule": s})
}

// PublishScheduleHandler handles POST /api/schedules/:weekStart/publish.
func (h *ScheduleHandler) PublishScheduleHandler(c *gin.Context) {
	shopID := c.GetString(middleware.CtxShopID)

	s, err := h.Service.PublishSchedule(c.Request.Context(), shopID, c.Param("weekStart"))
	if err != nil {
		respondError(c, "Failed to publish schedule", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Schedule published", "schedule": s})
}

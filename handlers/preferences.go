package handlers

import (
	"net/http"

	"shiffy/middleware"
	"shiffy/models"
	"shiffy/services/schedule"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PreferenceHandler struct {
	Service schedule.ScheduleService
}

func NewPreferenceHandler(svc schedule.ScheduleService) *PreferenceHandler {
	return &PreferenceHandler{Service: svc}
}

// SubmitPreferencesHandler handles POST /api/preferences for the calling user.
func (h *PreferenceHandler) SubmitPreferencesHandler(c *gin.Context) {
	logger := getLogger(c)
	shopID := c.GetString(middleware.CtxShopID)
	userID := c.GetString(middleware.CtxUserID)

	var req models.SubmitPreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid preference submission", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	prefs, err := h.Service.SubmitPreferences(c.Request.Context(), shopID, userID, req)
	if err != nil {
		respondError(c, "Failed to save preferences", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Preferences saved", "preferences": prefs})
}

// ListPreferencesHandler handles GET /api/preferences/:weekStart.
func (h *PreferenceHandler) ListPreferencesHandler(c *gin.Context) {
	shopID := c.GetString(middleware.CtxShopID)

	prefs, err := h.Service.ListPreferences(c.Request.Context(), shopID, c.Param("weekStart"))
	if err != nil {
		respondError(c, "Failed to fetch preferences", err)
		return
	}
	if prefs == nil {
		prefs = []models.ShiftPreference{}
	}

	c.JSON(http.StatusOK, gin.H{"preferences": prefs})
}

package handlers

import (
	"errors"
	"net/http"

	"shiffy/services/schedule"
	"shiffy/services/weekwindow"
	"shiffy/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, action string, err error) {
	switch {
	case errors.Is(err, weekwindow.ErrInvalidArgument):
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
	case errors.Is(err, schedule.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Schedule not found", err.Error())
	case errors.Is(err, schedule.ErrNoPreferences), errors.Is(err, schedule.ErrScheduleLocked):
		utils.JSONError(c, http.StatusConflict, action, err.Error())
	case errors.Is(err, schedule.ErrGeneratorUnavailable):
		utils.JSONError(c, http.StatusServiceUnavailable, action, err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, action, err.Error())
	}
}

// File: handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Week window endpoints
	GetWeekWindowHandler gin.HandlerFunc
	GetWeekStartHandler  gin.HandlerFunc

	// Schedule endpoints
	GetScheduleWindowHandler gin.HandlerFunc
	GetScheduleHandler       gin.HandlerFunc
	GenerateScheduleHandler  gin.HandlerFunc
	PublishScheduleHandler   gin.HandlerFunc

	// Preference endpoints
	SubmitPreferencesHandler gin.HandlerFunc
	ListPreferencesHandler   gin.HandlerFunc

	HealthHandler gin.HandlerFunc
}

// NewHandlerBundle wires the handler structs into a bundle.
func NewHandlerBundle(weeks *WeekHandler, schedules *ScheduleHandler, prefs *PreferenceHandler) *HandlerBundle {
	return &HandlerBundle{
		GetWeekWindowHandler: weeks.GetWeekWindowHandler,
		GetWeekStartHandler:  weeks.GetWeekStartHandler,

		GetScheduleWindowHandler: schedules.GetScheduleWindowHandler,
		GetScheduleHandler:       schedules.GetScheduleHandler,
		GenerateScheduleHandler:  schedules.GenerateScheduleHandler,
		PublishScheduleHandler:   schedules.PublishScheduleHandler,

		SubmitPreferencesHandler: prefs.SubmitPreferencesHandler,
		ListPreferencesHandler:   prefs.ListPreferencesHandler,

		HealthHandler: HealthHandler,
	}
}

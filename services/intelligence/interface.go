// File: services/intelligence/interface.go
package ai

import (
	"context"

	"shiffy/models"
)

// GenerationRequest is everything the model sees for one week.
type GenerationRequest struct {
	ShopID      string
	WeekStart   string
	Days        []string // the seven ISO dates of the week
	Preferences []models.ShiftPreference
}

// ScheduleGenerator turns a week's preferences into shift assignments.
type ScheduleGenerator interface {
	Generate(ctx context.Context, req GenerationRequest) ([]models.ShiftAssignment, error)
	Model() string
}

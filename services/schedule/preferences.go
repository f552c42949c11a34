package schedule

import (
	"context"
	"errors"
	"fmt"

	"shiffy/models"
	"shiffy/services/weekwindow"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// SubmitPreferences replaces an employee's preferences for one week. Every
// entry must fall inside that week and a published week is closed.
func (s *DefaultScheduleService) SubmitPreferences(
	ctx context.Context,
	shopID, employeeID string,
	req models.SubmitPreferencesRequest,
) ([]models.ShiftPreference, error) {
	if shopID == "" {
		return nil, invalid("shopId", "is required")
	}
	if employeeID == "" {
		return nil, invalid("employeeId", "is required")
	}
	if len(req.Entries) == 0 {
		return nil, invalid("entries", "at least one entry is required")
	}
	ws, err := weekwindow.NormalizeWeekStart(req.WeekStart, s.StartsOn)
	if err != nil {
		return nil, err
	}
	days := weekwindow.WeekDates(ws)

	now := s.now().UTC()
	seen := make(map[string]bool, len(req.Entries))
	prefs := make([]models.ShiftPreference, 0, len(req.Entries))
	for i, e := range req.Entries {
		field := fmt.Sprintf("entries[%d]", i)
		if _, err := weekwindow.ParseISO(e.Date); err != nil {
			return nil, err
		}
		if !contains(days, e.Date) {
			return nil, invalid(field, fmt.Sprintf("date %s is outside the week of %s", e.Date, req.WeekStart))
		}
		if !contains(models.Shifts, e.Shift) {
			return nil, invalid(field, fmt.Sprintf("unknown shift %q", e.Shift))
		}
		if !contains(models.Availabilities, e.Availability) {
			return nil, invalid(field, fmt.Sprintf("unknown availability %q", e.Availability))
		}
		key := e.Date + "/" + e.Shift
		if seen[key] {
			return nil, invalid(field, fmt.Sprintf("duplicate entry for %s %s", e.Date, e.Shift))
		}
		seen[key] = true

		prefs = append(prefs, models.ShiftPreference{
			ShopID:       shopID,
			EmployeeID:   employeeID,
			EmployeeName: req.EmployeeName,
			WeekStart:    req.WeekStart,
			Date:         e.Date,
			Shift:        e.Shift,
			Availability: e.Availability,
			Note:         e.Note,
			CreatedAt:    now,
		})
	}

	if err := s.ensureNotPublished(ctx, shopID, req.WeekStart); err != nil {
		return nil, err
	}

	if err := s.Preferences.ReplaceForEmployee(ctx, shopID, employeeID, req.WeekStart, prefs); err != nil {
		return nil, fmt.Errorf("save preferences: %w", err)
	}

	s.log().Info("Preferences submitted",
		zap.String("shopId", shopID),
		zap.String("employeeId", employeeID),
		zap.String("weekStart", req.WeekStart),
		zap.Int("entries", len(prefs)),
	)
	return prefs, nil
}

func (s *DefaultScheduleService) ListPreferences(ctx context.Context, shopID, weekStart string) ([]models.ShiftPreference, error) {
	if shopID == "" {
		return nil, invalid("shopId", "is required")
	}
	if _, err := weekwindow.NormalizeWeekStart(weekStart, s.StartsOn); err != nil {
		return nil, err
	}
	prefs, err := s.Preferences.GetByWeek(ctx, shopID, weekStart)
	if err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}
	return prefs, nil
}

func (s *DefaultScheduleService) ensureNotPublished(ctx context.Context, shopID, weekStart string) error {
	existing, err := s.Schedules.GetByWeek(ctx, shopID, weekStart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load schedule: %w", err)
	}
	if existing.Status == models.ScheduleStatusPublished {
		return ErrScheduleLocked
	}
	return nil
}

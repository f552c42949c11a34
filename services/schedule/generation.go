package schedule

import (
	"context"
	"errors"
	"fmt"
	"sort"

	scheduleRepo "shiffy/database/repository/schedule"
	"shiffy/models"
	ai "shiffy/services/intelligence"
	"shiffy/services/tasks"
	"shiffy/services/weekwindow"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var shiftRank = map[string]int{
	models.ShiftMorning:   0,
	models.ShiftAfternoon: 1,
	models.ShiftEvening:   2,
	models.ShiftNight:     3,
}

// GenerateSchedule asks the generator for a roster, keeps only assignments
// the week's preferences allow, and stores the result as a draft.
func (s *DefaultScheduleService) GenerateSchedule(ctx context.Context, shopID, weekStart string) (*models.Schedule, error) {
	if s.Generator == nil {
		return nil, ErrGeneratorUnavailable
	}
	if shopID == "" {
		return nil, invalid("shopId", "is required")
	}
	ws, err := weekwindow.NormalizeWeekStart(weekStart, s.StartsOn)
	if err != nil {
		return nil, err
	}

	prefs, err := s.Preferences.GetByWeek(ctx, shopID, weekStart)
	if err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}
	if len(prefs) == 0 {
		return nil, ErrNoPreferences
	}
	if err := s.ensureNotPublished(ctx, shopID, weekStart); err != nil {
		return nil, err
	}

	days := weekwindow.WeekDates(ws)
	raw, err := s.Generator.Generate(ctx, ai.GenerationRequest{
		ShopID:      shopID,
		WeekStart:   weekStart,
		Days:        days,
		Preferences: prefs,
	})
	if err != nil {
		return nil, fmt.Errorf("generate schedule: %w", err)
	}

	assignments := SanitizeAssignments(raw, days, prefs)
	if dropped := len(raw) - len(assignments); dropped > 0 {
		s.log().Warn("Dropped invalid generated assignments",
			zap.String("shopId", shopID),
			zap.String("weekStart", weekStart),
			zap.Int("dropped", dropped),
		)
	}

	schedule := &models.Schedule{
		ShopID:      shopID,
		WeekStart:   weekStart,
		Status:      models.ScheduleStatusDraft,
		Assignments: assignments,
		Model:       s.Generator.Model(),
		GeneratedAt: s.now().UTC(),
	}
	if err := s.Schedules.Upsert(ctx, schedule); err != nil {
		if errors.Is(err, scheduleRepo.ErrPublished) {
			return nil, ErrScheduleLocked
		}
		return nil, fmt.Errorf("save schedule: %w", err)
	}
	s.cacheInvalidate(ctx, shopID, weekStart)

	s.log().Info("Schedule generated",
		zap.String("shopId", shopID),
		zap.String("weekStart", weekStart),
		zap.Int("assignments", len(assignments)),
	)
	return schedule, nil
}

// SanitizeAssignments drops assignments outside the week or for unknown
// shifts, removes employees who did not offer that shift, merges duplicate
// (date, shift) pairs and returns them ordered by date then shift.
func SanitizeAssignments(raw []models.ShiftAssignment, days []string, prefs []models.ShiftPreference) []models.ShiftAssignment {
	offered := make(map[string]bool)
	for _, p := range prefs {
		if p.Availability == models.AvailabilityUnavailable {
			continue
		}
		offered[p.Date+"/"+p.Shift+"/"+p.EmployeeID] = true
	}

	merged := make(map[string]*models.ShiftAssignment)
	var order []string
	for _, a := range raw {
		if !contains(days, a.Date) {
			continue
		}
		if _, ok := shiftRank[a.Shift]; !ok {
			continue
		}
		key := a.Date + "/" + a.Shift
		cur, ok := merged[key]
		if !ok {
			cur = &models.ShiftAssignment{Date: a.Date, Shift: a.Shift, EmployeeIDs: []string{}}
			merged[key] = cur
			order = append(order, key)
		}
		for _, id := range a.EmployeeIDs {
			if !offered[key+"/"+id] || contains(cur.EmployeeIDs, id) {
				continue
			}
			cur.EmployeeIDs = append(cur.EmployeeIDs, id)
		}
	}

	out := make([]models.ShiftAssignment, 0, len(order))
	for _, key := range order {
		if a := merged[key]; len(a.EmployeeIDs) > 0 {
			out = append(out, *a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return shiftRank[out[i].Shift] < shiftRank[out[j].Shift]
	})
	return out
}

// PublishSchedule makes a draft visible to employees and notifies the shop.
func (s *DefaultScheduleService) PublishSchedule(ctx context.Context, shopID, weekStart string) (*models.Schedule, error) {
	if shopID == "" {
		return nil, invalid("shopId", "is required")
	}
	if _, err := weekwindow.NormalizeWeekStart(weekStart, s.StartsOn); err != nil {
		return nil, err
	}

	schedule, err := s.Schedules.MarkPublished(ctx, shopID, weekStart, s.now().UTC())
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("publish schedule: %w", err)
	}
	s.cacheInvalidate(ctx, shopID, weekStart)

	if s.Notifier != nil {
		if err := s.Notifier.NotifySchedulePublished(ctx, schedule); err != nil {
			s.log().Warn("Publish notification failed",
				zap.String("shopId", shopID),
				zap.String("weekStart", weekStart),
				zap.Error(err),
			)
		}
	}
	return schedule, nil
}

// EnqueueGeneration queues a background generation. A generation still
// pending for the same shop and week counts as success.
func (s *DefaultScheduleService) EnqueueGeneration(ctx context.Context, shopID, weekStart string) error {
	if s.Queue == nil {
		return ErrGeneratorUnavailable
	}
	if shopID == "" {
		return invalid("shopId", "is required")
	}
	if _, err := weekwindow.NormalizeWeekStart(weekStart, s.StartsOn); err != nil {
		return err
	}

	task, opts, err := tasks.NewGenerationTask(models.GenerationPayload{ShopID: shopID, WeekStart: weekStart})
	if err != nil {
		return err
	}
	info, err := s.Queue.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrDuplicateTask) {
		s.log().Debug("Generation already pending", zap.String("shopId", shopID), zap.String("weekStart", weekStart))
		return nil
	}
	if err != nil {
		return fmt.Errorf("enqueue generation: %w", err)
	}
	s.log().Info("Generation queued", zap.String("taskId", info.ID), zap.String("queue", info.Queue))
	return nil
}

// ShopsAwaitingSchedule lists shops with preferences but no schedule for the week.
func (s *DefaultScheduleService) ShopsAwaitingSchedule(ctx context.Context, weekStart string) ([]string, error) {
	if _, err := weekwindow.NormalizeWeekStart(weekStart, s.StartsOn); err != nil {
		return nil, err
	}
	withPrefs, err := s.Preferences.ShopIDsForWeek(ctx, weekStart)
	if err != nil {
		return nil, fmt.Errorf("list shops with preferences: %w", err)
	}
	withSchedule, err := s.Schedules.ShopIDsWithSchedule(ctx, weekStart)
	if err != nil {
		return nil, fmt.Errorf("list shops with schedules: %w", err)
	}

	var out []string
	for _, id := range withPrefs {
		if !contains(withSchedule, id) {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out, nil
}

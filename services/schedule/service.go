package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shiffy/models"
	"shiffy/services/weekwindow"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// LoadWindow returns one entry per week of the window around reference, in
// ascending order. Weeks without a schedule carry a nil Schedule.
func (s *DefaultScheduleService) LoadWindow(
	ctx context.Context,
	shopID string,
	reference time.Time,
	cfg weekwindow.Config,
) ([]models.WeekSchedule, error) {
	if shopID == "" {
		return nil, invalid("shopId", "is required")
	}
	weeks, err := weekwindow.WeeksToLoad(reference, cfg)
	if err != nil {
		return nil, err
	}

	found := make(map[string]*models.Schedule, len(weeks))
	var misses []string
	for _, week := range weeks {
		cached, hit := s.cacheGet(ctx, shopID, week)
		if hit {
			found[week] = cached
			continue
		}
		misses = append(misses, week)
	}

	if len(misses) > 0 {
		stored, err := s.Schedules.GetByWeeks(ctx, shopID, misses)
		if err != nil {
			return nil, fmt.Errorf("load schedules: %w", err)
		}
		for i := range stored {
			found[stored[i].WeekStart] = &stored[i]
		}
		for _, week := range misses {
			s.cacheSet(ctx, shopID, week, found[week])
		}
	}

	out := make([]models.WeekSchedule, len(weeks))
	for i, week := range weeks {
		out[i] = models.WeekSchedule{WeekStart: week, Schedule: found[week]}
	}
	return out, nil
}

// GetSchedule loads a single week. weekStart must already be a week start.
func (s *DefaultScheduleService) GetSchedule(ctx context.Context, shopID, weekStart string) (*models.Schedule, error) {
	if shopID == "" {
		return nil, invalid("shopId", "is required")
	}
	if _, err := weekwindow.NormalizeWeekStart(weekStart, s.StartsOn); err != nil {
		return nil, err
	}

	if cached, hit := s.cacheGet(ctx, shopID, weekStart); hit {
		if cached == nil {
			return nil, ErrNotFound
		}
		return cached, nil
	}

	schedule, err := s.Schedules.GetByWeek(ctx, shopID, weekStart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		s.cacheSet(ctx, shopID, weekStart, nil)
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load schedule: %w", err)
	}
	s.cacheSet(ctx, shopID, weekStart, schedule)
	return schedule, nil
}

// Cache failures never fail a request; the repository is the source of truth.

func (s *DefaultScheduleService) cacheGet(ctx context.Context, shopID, week string) (*models.Schedule, bool) {
	if s.Cache == nil {
		return nil, false
	}
	schedule, hit, err := s.Cache.Get(ctx, shopID, week)
	if err != nil {
		s.log().Warn("Schedule cache read failed", zap.String("shopId", shopID), zap.String("weekStart", week), zap.Error(err))
		return nil, false
	}
	return schedule, hit
}

func (s *DefaultScheduleService) cacheSet(ctx context.Context, shopID, week string, schedule *models.Schedule) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Set(ctx, shopID, week, schedule); err != nil {
		s.log().Warn("Schedule cache write failed", zap.String("shopId", shopID), zap.String("weekStart", week), zap.Error(err))
	}
}

func (s *DefaultScheduleService) cacheInvalidate(ctx context.Context, shopID, week string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx, shopID, week); err != nil {
		s.log().Warn("Schedule cache invalidation failed", zap.String("shopId", shopID), zap.String("weekStart", week), zap.Error(err))
	}
}

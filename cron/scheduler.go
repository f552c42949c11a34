package cron

import (
	"context"
	"fmt"
	"time"

	"shiffy/services/schedule"
	"shiffy/services/weekwindow"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// NextWeekStart is the first day of the week following now's week.
func NextWeekStart(now time.Time, startsOn weekwindow.WeekStartsOn) string {
	return weekwindow.FormatISO(weekwindow.WeekStart(now, startsOn).AddDate(0, 0, 7))
}

// GenerationScheduler periodically queues next week's schedule for every shop
// that has preferences but no schedule yet.
type GenerationScheduler struct {
	Service  schedule.ScheduleService
	Location *time.Location
	Logger   *zap.Logger
	Now      func() time.Time

	cron *cron.Cron
}

// NewGenerationScheduler parses expr as a standard five-field cron expression
// evaluated in loc.
func NewGenerationScheduler(expr string, svc schedule.ScheduleService, loc *time.Location, logger *zap.Logger) (*GenerationScheduler, error) {
	if loc == nil {
		loc = time.UTC
	}
	s := &GenerationScheduler{
		Service:  svc,
		Location: loc,
		Logger:   logger,
		Now:      time.Now,
		cron:     cron.New(cron.WithLocation(loc)),
	}

	_, err := s.cron.AddFunc(expr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := s.RunOnce(ctx); err != nil {
			s.Logger.Error("[GenerationCron] Run failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid generation cron %q: %w", expr, err)
	}
	return s, nil
}

// RunOnce queues generation for next week and returns how many shops were queued.
func (s *GenerationScheduler) RunOnce(ctx context.Context) (int, error) {
	week := NextWeekStart(s.Now().In(s.Location), s.Service.WeekStartsOn())

	shops, err := s.Service.ShopsAwaitingSchedule(ctx, week)
	if err != nil {
		return 0, err
	}

	queued := 0
	for _, shopID := range shops {
		if err := s.Service.EnqueueGeneration(ctx, shopID, week); err != nil {
			s.Logger.Warn("[GenerationCron] Failed to queue shop",
				zap.String("shopId", shopID), zap.String("weekStart", week), zap.Error(err))
			continue
		}
		queued++
	}

	s.Logger.Info("[GenerationCron] Run complete",
		zap.String("weekStart", week), zap.Int("shops", len(shops)), zap.Int("queued", queued))
	return queued, nil
}

func (s *GenerationScheduler) Start() {
	s.cron.Start()
}

// Stop halts the schedule and returns a context done once running jobs finish.
func (s *GenerationScheduler) Stop() context.Context {
	return s.cron.Stop()
}

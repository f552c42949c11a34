package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shiffy/config"
	"shiffy/services/schedule"
	"shiffy/services/tasks"
	"shiffy/services/weekwindow"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// permanent reports errors that a retry cannot fix.
func permanent(err error) bool {
	return errors.Is(err, weekwindow.ErrInvalidArgument) ||
		errors.Is(err, schedule.ErrNoPreferences) ||
		errors.Is(err, schedule.ErrScheduleLocked)
}

// NewGenerationHandler runs GenerateSchedule for each queued task.
func NewGenerationHandler(svc schedule.ScheduleService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseGenerationPayload(task)
		if err != nil {
			logger.Error("[GenerationWorker] Invalid payload", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		logger.Info("[GenerationWorker] Generating schedule",
			zap.String("shopId", p.ShopID), zap.String("weekStart", p.WeekStart))

		s, err := svc.GenerateSchedule(ctx, p.ShopID, p.WeekStart)
		if err != nil {
			logger.Warn("[GenerationWorker] Generation failed",
				zap.String("shopId", p.ShopID), zap.String("weekStart", p.WeekStart), zap.Error(err))
			if permanent(err) {
				return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
			}
			return err
		}

		logger.Info("[GenerationWorker] Draft schedule stored",
			zap.String("scheduleId", s.ID), zap.Int("assignments", len(s.Assignments)))
		return nil
	}
}

// InitGenerationWorker starts the asynq server in the background. The caller
// owns the returned server and must call Shutdown on exit.
func InitGenerationWorker(svc schedule.ScheduleService, logger *zap.Logger) *asynq.Server {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.Handle(tasks.TypeGenerateSchedule, NewGenerationHandler(svc, logger))

	go func() {
		logger.Info("[GenerationWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Error("[GenerationWorker] Failed to start worker",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("[GenerationWorker] Max retry attempts reached, background generation disabled")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()

	return srv
}

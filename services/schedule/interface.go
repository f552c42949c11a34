package schedule

import (
	"context"
	"time"

	preferenceRepo "shiffy/database/repository/preference"
	scheduleRepo "shiffy/database/repository/schedule"
	"shiffy/models"
	ai "shiffy/services/intelligence"
	"shiffy/services/notification"
	"shiffy/services/weekwindow"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

type ScheduleService interface {
	LoadWindow(ctx context.Context, shopID string, reference time.Time, cfg weekwindow.Config) ([]models.WeekSchedule, error)
	GetSchedule(ctx context.Context, shopID, weekStart string) (*models.Schedule, error)
	SubmitPreferences(ctx context.Context, shopID, employeeID string, req models.SubmitPreferencesRequest) ([]models.ShiftPreference, error)
	ListPreferences(ctx context.Context, shopID, weekStart string) ([]models.ShiftPreference, error)
	GenerateSchedule(ctx context.Context, shopID, weekStart string) (*models.Schedule, error)
	PublishSchedule(ctx context.Context, shopID, weekStart string) (*models.Schedule, error)
	EnqueueGeneration(ctx context.Context, shopID, weekStart string) error
	ShopsAwaitingSchedule(ctx context.Context, weekStart string) ([]string, error)
	WeekStartsOn() weekwindow.WeekStartsOn
}

// TaskEnqueuer is the subset of *asynq.Client used to queue generation.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// DefaultScheduleService is the production implementation. Generator,
// Notifier and Queue may be nil; the matching operations then fail or no-op.
type DefaultScheduleService struct {
	Schedules   scheduleRepo.ScheduleRepository
	Preferences preferenceRepo.PreferenceRepository
	Cache       ScheduleCache
	Generator   ai.ScheduleGenerator
	Notifier    notification.NotificationService
	Queue       TaskEnqueuer
	StartsOn    weekwindow.WeekStartsOn
	Logger      *zap.Logger
	Clock       func() time.Time
}

func (s *DefaultScheduleService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

func (s *DefaultScheduleService) log() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

func (s *DefaultScheduleService) WeekStartsOn() weekwindow.WeekStartsOn {
	return s.StartsOn
}

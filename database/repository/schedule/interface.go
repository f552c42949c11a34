// File: database/repository/schedule/interface.go
package scheduleRepo

import (
	"context"
	"errors"
	"time"

	"shiffy/database"
	"shiffy/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrPublished is returned by Upsert when the stored week is already published.
var ErrPublished = errors.New("schedule already published")

type ScheduleRepository interface {
	GetByWeek(ctx context.Context, shopID, weekStart string) (*models.Schedule, error)
	GetByWeeks(ctx context.Context, shopID string, weekStarts []string) ([]models.Schedule, error)
	Upsert(ctx context.Context, schedule *models.Schedule) error
	MarkPublished(ctx context.Context, shopID, weekStart string, at time.Time) (*models.Schedule, error)
	ShopIDsWithSchedule(ctx context.Context, weekStart string) ([]string, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoScheduleRepo struct {
	coll *mongo.Collection
}

// NewMongoScheduleRepo constructs a new MongoDB ScheduleRepository.
func NewMongoScheduleRepo() ScheduleRepository {
	return &mongoScheduleRepo{
		coll: database.DB().Collection("schedules"),
	}
}

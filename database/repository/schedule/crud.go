// File: database/repository/schedule/crud.go
package scheduleRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shiffy/models"
)

func (r *mongoScheduleRepo) GetByWeek(ctx context.Context, shopID, weekStart string) (*models.Schedule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"shopId": shopID, "weekStart": weekStart}
	var schedule models.Schedule
	if err := r.coll.FindOne(ctx, filter).Decode(&schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *mongoScheduleRepo) GetByWeeks(ctx context.Context, shopID string, weekStarts []string) ([]models.Schedule, error) {
	if len(weekStarts) == 0 {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"shopId": shopID, "weekStart": bson.M{"$in": weekStarts}}
	opts := options.Find().SetSort(bson.D{{Key: "weekStart", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var schedules []models.Schedule
	if err := cursor.All(ctx, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

// Upsert replaces the schedule for (shopId, weekStart), keeping the stored ID
// when one already exists. A published week is never replaced: the filter
// skips it, the upsert then collides with the unique shop_week_idx and
// ErrPublished is returned.
func (r *mongoScheduleRepo) Upsert(ctx context.Context, schedule *models.Schedule) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"shopId": schedule.ShopID, "weekStart": schedule.WeekStart}
	if schedule.ID == "" {
		var existing models.Schedule
		err := r.coll.FindOne(ctx, filter, options.FindOne().SetProjection(bson.M{"id": 1})).Decode(&existing)
		switch {
		case err == nil:
			schedule.ID = existing.ID
		case errors.Is(err, mongo.ErrNoDocuments):
			schedule.ID = uuid.New().String()
		default:
			return fmt.Errorf("lookup existing schedule: %w", err)
		}
	}

	draftOnly := bson.M{
		"shopId":    schedule.ShopID,
		"weekStart": schedule.WeekStart,
		"status":    bson.M{"$ne": models.ScheduleStatusPublished},
	}
	_, err := r.coll.ReplaceOne(ctx, draftOnly, schedule, options.Replace().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		return ErrPublished
	}
	return err
}

func (r *mongoScheduleRepo) MarkPublished(ctx context.Context, shopID, weekStart string, at time.Time) (*models.Schedule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"shopId": shopID, "weekStart": weekStart}
	update := bson.M{"$set": bson.M{
		"status":      models.ScheduleStatusPublished,
		"publishedAt": at,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var schedule models.Schedule
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *mongoScheduleRepo) ShopIDsWithSchedule(ctx context.Context, weekStart string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	raw, err := r.coll.Distinct(ctx, "shopId", bson.M{"weekStart": weekStart})
	if err != nil {
		return nil, err
	}
	return toStrings(raw), nil
}

func toStrings(raw []interface{}) []string {
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

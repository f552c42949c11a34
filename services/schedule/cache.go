package schedule

import (
	"context"
	"encoding/json"
	"time"

	"shiffy/models"
	"shiffy/utils"

	"github.com/go-redis/redis/v8"
)

// ScheduleCache stores per-week lookups, including "no schedule yet".
type ScheduleCache interface {
	// Get reports hit=false on a miss. A hit may carry a nil schedule.
	Get(ctx context.Context, shopID, weekStart string) (schedule *models.Schedule, hit bool, err error)
	Set(ctx context.Context, shopID, weekStart string, schedule *models.Schedule) error
	Invalidate(ctx context.Context, shopID, weekStart string) error
}

type RedisScheduleCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisScheduleCache(client *redis.Client, ttl time.Duration) *RedisScheduleCache {
	return &RedisScheduleCache{client: client, ttl: ttl}
}

func cacheKey(shopID, weekStart string) string {
	return utils.ScheduleCachePrefix + shopID + ":" + weekStart
}

func (c *RedisScheduleCache) Get(ctx context.Context, shopID, weekStart string) (*models.Schedule, bool, error) {
	data, err := c.client.Get(ctx, cacheKey(shopID, weekStart)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var schedule *models.Schedule
	if err := json.Unmarshal(data, &schedule); err != nil {
		return nil, false, err
	}
	return schedule, true, nil
}

func (c *RedisScheduleCache) Set(ctx context.Context, shopID, weekStart string, schedule *models.Schedule) error {
	b, err := json.Marshal(schedule)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey(shopID, weekStart), b, c.ttl).Err()
}

func (c *RedisScheduleCache) Invalidate(ctx context.Context, shopID, weekStart string) error {
	return c.client.Del(ctx, cacheKey(shopID, weekStart)).Err()
}

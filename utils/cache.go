// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"shiffy/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the schedule cache client.
	CacheClient *redis.Client
	// QueueClient points at the DB asynq uses for generation tasks; kept for health checks.
	QueueClient *redis.Client
)

func newRedisClient(db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
}

func ping(client *redis.Client, name string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", name, err)
	}
}

// InitCache initializes the Redis cache client (REDIS_CACHE_DB).
func InitCache() {
	CacheClient = newRedisClient(config.AppConfig.RedisCacheDB)
	ping(CacheClient, "Cache")
}

// GetCacheClient returns the schedule cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitQueue initializes the Redis client for the task queue DB (REDIS_QUEUE_DB).
func InitQueue() {
	QueueClient = newRedisClient(config.AppConfig.RedisQueueDB)
	ping(QueueClient, "Queue")
}

// GetQueueClient returns the Redis client for the task queue DB.
func GetQueueClient() *redis.Client {
	if QueueClient == nil {
		InitQueue()
	}
	return QueueClient
}

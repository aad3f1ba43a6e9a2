package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/slatrack/slatrack/internal/ports"
	"github.com/slatrack/slatrack/internal/service/logger"
)

// RunLockConfig configures the Redis-backed run lock
type RunLockConfig struct {
	Enabled  bool
	RedisURL string
}

// redisRunLock serializes recalculation runs with a Redis SET NX lock.
// A TTL bounds how long a crashed run can keep the lock.
type redisRunLock struct {
	client *redis.Client
	logger logger.Logger
}

// NewRunLock creates a RunLocker. When disabled it returns a noop lock
// that always grants.
func NewRunLock(config RunLockConfig, log logger.Logger) (ports.RunLocker, error) {
	if !config.Enabled {
		log.Info(context.Background(), "Run lock disabled, recalculation runs will not be serialized", nil)
		return &noopRunLock{}, nil
	}

	opt, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRunLock{client: client, logger: log}, nil
}

// Acquire takes the named lock for at most ttl
func (l *redisRunLock) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := l.client.SetNX(ctx, lockKey(key), time.Now().UTC().Format(time.RFC3339), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire run lock: %w", err)
	}

	l.logger.Debug(ctx, "Run lock acquire attempt", map[string]interface{}{
		"key":      key,
		"acquired": ok,
	})

	return ok, nil
}

// Release frees the named lock
func (l *redisRunLock) Release(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, lockKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to release run lock: %w", err)
	}
	return nil
}

func lockKey(key string) string {
	return "slatrack:runlock:" + key
}

// noopRunLock grants every acquisition. Used when Redis is not configured;
// overlapping runs then fall back to last-writer-wins semantics.
type noopRunLock struct{}

func (l *noopRunLock) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return true, nil
}

func (l *noopRunLock) Release(ctx context.Context, key string) error {
	return nil
}

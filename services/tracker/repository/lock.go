package repository

import (
	"babycare/domain"
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type redisLock struct {
	client *redis.Client
}

// NewRedisLock returns nil for a nil client so callers can skip locking when
// redis is not configured.
func NewRedisLock(client *redis.Client) domain.AutoFillLock {
	if client == nil {
		return nil
	}
	return &redisLock{client: client}
}

func (rl *redisLock) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := rl.client.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	return ok, nil
}

func (rl *redisLock) Release(ctx context.Context, key string) error {
	if err := rl.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to release lock %s: %w", key, err)
	}
	return nil
}

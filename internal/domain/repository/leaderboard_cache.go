package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LeaderboardCache holds a short-lived snapshot of the computed leaderboard so
// every request does not rescan the users table.
type LeaderboardCache interface {
	Get(ctx context.Context) (string, bool, error)
	Set(ctx context.Context, payload string, ttl time.Duration) error
}

const leaderboardCacheKey = "leaderboard:top"

type redisLeaderboardCache struct {
	rdb *redis.Client
}

func NewRedisLeaderboardCache(rdb *redis.Client) LeaderboardCache {
	return &redisLeaderboardCache{rdb: rdb}
}

func (c *redisLeaderboardCache) Get(ctx context.Context) (string, bool, error) {
	payload, err := c.rdb.Get(ctx, leaderboardCacheKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redisLeaderboardCache.Get: %w", err)
	}
	return payload, true, nil
}

func (c *redisLeaderboardCache) Set(ctx context.Context, payload string, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, leaderboardCacheKey, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redisLeaderboardCache.Set: %w", err)
	}
	return nil
}

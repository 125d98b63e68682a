package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const statsKey = "analytics:visitor_stats"

// StatsCache memoizes the computed visitor-statistics snapshot. The visit
// log stays the source of truth; the cache only absorbs repeated dashboard
// refreshes within the TTL window.
type StatsCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewStatsCache creates a new StatsCache with the given snapshot TTL.
func NewStatsCache(redis *RedisClient, ttl time.Duration) *StatsCache {
	return &StatsCache{redis: redis, ttl: ttl}
}

// Get loads a cached snapshot into dest. Returns false on a miss.
func (c *StatsCache) Get(ctx context.Context, dest interface{}) (bool, error) {
	raw, err := c.redis.Get(ctx, statsKey)
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores a snapshot for the configured TTL.
func (c *StatsCache) Set(ctx context.Context, stats interface{}) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.redis.Set(ctx, statsKey, string(raw), c.ttl)
}

// Invalidate drops the cached snapshot.
func (c *StatsCache) Invalidate(ctx context.Context) error {
	return c.redis.Delete(ctx, statsKey)
}

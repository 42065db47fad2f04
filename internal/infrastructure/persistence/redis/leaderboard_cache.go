// Package redis implements the Redis cache for computed leaderboard
// snapshots. A snapshot is a frozen, ordered leaderboard; caching it means
// a paced bulk fetch over every registered profile does not have to run on
// every request.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cf-tools/cf-insight/internal/domain/rank"
	"github.com/cf-tools/cf-insight/internal/domain/shared"
)

// LeaderboardCache stores leaderboard snapshots in Redis with a TTL. A
// cache miss surfaces as shared.ErrNotFound; the caller recomputes and
// stores.
type LeaderboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLeaderboardCache creates a cache around an existing Redis client.
func NewLeaderboardCache(client *redis.Client, ttl time.Duration) *LeaderboardCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &LeaderboardCache{client: client, ttl: ttl}
}

func snapshotKey(metric rank.Metric) string {
	return fmt.Sprintf("leaderboard:%s", metric)
}

// Get returns the cached snapshot for a metric.
func (c *LeaderboardCache) Get(ctx context.Context, metric rank.Metric) (*rank.Snapshot, error) {
	data, err := c.client.Get(ctx, snapshotKey(metric)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, shared.WrapError("leaderboard_cache", "Get", shared.ErrNotFound,
			fmt.Sprintf("no cached snapshot for metric %q", metric), nil)
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}

	var snap rank.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

// Set stores a snapshot under its metric key.
func (c *LeaderboardCache) Set(ctx context.Context, snap *rank.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := c.client.Set(ctx, snapshotKey(snap.Metric), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set snapshot: %w", err)
	}
	return nil
}

// Invalidate drops the cached snapshot for a metric.
func (c *LeaderboardCache) Invalidate(ctx context.Context, metric rank.Metric) error {
	if err := c.client.Del(ctx, snapshotKey(metric)).Err(); err != nil {
		return fmt.Errorf("invalidate snapshot: %w", err)
	}
	return nil
}

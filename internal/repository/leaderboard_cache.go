package repository

import (
	"context"
	"encoding/json"
	"time"

	"training_portal_backend/internal/model"

	"github.com/go-redis/redis/v8"
)

const leaderboardKey = "leaderboard:top10"

// LeaderboardCache 排行榜的 Redis 缓存。
// 排行榜每次读都要聚合全量尝试，缓存短 TTL，提交新尝试时主动失效。
type LeaderboardCache struct {
	Redis *redis.Client
	TTL   time.Duration
}

func NewLeaderboardCache(rdb *redis.Client, ttl time.Duration) *LeaderboardCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &LeaderboardCache{Redis: rdb, TTL: ttl}
}

func (c *LeaderboardCache) Get(ctx context.Context) ([]model.LeaderboardEntry, bool) {
	data, err := c.Redis.Get(ctx, leaderboardKey).Bytes()
	if err != nil {
		return nil, false
	}
	var entries []model.LeaderboardEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, false
	}
	return entries, true
}

func (c *LeaderboardCache) Set(ctx context.Context, entries []model.LeaderboardEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return c.Redis.Set(ctx, leaderboardKey, data, c.TTL).Err()
}

func (c *LeaderboardCache) Invalidate(ctx context.Context) error {
	return c.Redis.Del(ctx, leaderboardKey).Err()
}

package repository

import (
	"context"
	"testing"
	"time"

	"training_portal_backend/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func newTestCache(t *testing.T) (*LeaderboardCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewLeaderboardCache(rdb, time.Minute), mr
}

func TestLeaderboardCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	if _, ok := cache.Get(ctx); ok {
		t.Fatalf("expected miss on empty cache")
	}

	entries := []model.LeaderboardEntry{
		{ID: "alice", Name: "Alice", Score: 120, Position: 1},
		{ID: "bob", Name: "Bob", Score: 95, Position: 2},
	}
	if err := cache.Set(ctx, entries); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	got, ok := cache.Get(ctx)
	if !ok {
		t.Fatalf("expected hit after set")
	}
	if len(got) != 2 || got[0].ID != "alice" || got[0].Position != 1 {
		t.Fatalf("unexpected entries: %+v", got)
	}
}

func TestLeaderboardCacheInvalidate(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	_ = cache.Set(ctx, []model.LeaderboardEntry{{ID: "alice", Score: 10, Position: 1}})
	if err := cache.Invalidate(ctx); err != nil {
		t.Fatalf("invalidate failed: %v", err)
	}
	if _, ok := cache.Get(ctx); ok {
		t.Fatalf("expected miss after invalidate")
	}
}

func TestLeaderboardCacheExpires(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	_ = cache.Set(ctx, []model.LeaderboardEntry{{ID: "alice", Score: 10, Position: 1}})
	mr.FastForward(2 * time.Minute)

	if _, ok := cache.Get(ctx); ok {
		t.Fatalf("expected miss after TTL")
	}
}

package cache

import (
	"context"
	"load-route-service/internal/domain"
	"slices"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*RedisRouteCache, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisRouteCache(client), srv
}

func TestRedisRouteCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)

	arrive := time.Date(2022, 3, 1, 20, 0, 0, 0, time.UTC)
	in := domain.RouteResult{
		TripID:      7,
		LoadIDs:     []int64{3, 1, 4},
		MoneyEarned: 900,
		NetProfit:   612.5,
		ArriveAt:    arrive,
		Expansions:  12,
	}

	if err := c.Set(ctx, "route:test", in, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, ok, err := c.Get(ctx, "route:test")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("expected cache hit")
	}
	if !slices.Equal(got.LoadIDs, in.LoadIDs) || got.NetProfit != in.NetProfit || !got.ArriveAt.Equal(arrive) {
		t.Fatalf("got %+v, want %+v", got, in)
	}
	if got.TripID != 0 {
		t.Fatalf("trip id should not be cached, got %d", got.TripID)
	}
}

func TestRedisRouteCacheMissAndExpiry(t *testing.T) {
	ctx := context.Background()
	c, srv := newTestCache(t)

	if _, ok, err := c.Get(ctx, "route:absent"); err != nil || ok {
		t.Fatalf("miss: ok=%v err=%v", ok, err)
	}

	if err := c.Set(ctx, "route:short", domain.RouteResult{LoadIDs: []int64{1}}, time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}
	srv.FastForward(2 * time.Second)

	if _, ok, err := c.Get(ctx, "route:short"); err != nil || ok {
		t.Fatalf("after expiry: ok=%v err=%v", ok, err)
	}
}

func TestRedisRouteCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, srv := newTestCache(t)

	if err := srv.Set("route:bad", "not json"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := c.Get(ctx, "route:bad"); err == nil {
		t.Fatal("expected decode error")
	}
}

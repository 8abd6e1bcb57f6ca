package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"load-route-service/internal/domain"
	"load-route-service/internal/platform/obs"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRouteCache is a Redis-backed cache of planned routes.
// Keys are expected to be fully qualified by the caller.
type RedisRouteCache struct {
	Client *redis.Client
}

func NewRedisRouteCache(client *redis.Client) *RedisRouteCache {
	return &RedisRouteCache{Client: client}
}

type cachedRoute struct {
	LoadIDs       []int64   `json:"load_ids"`
	MoneyEarned   float64   `json:"money_earned"`
	DistanceMiles float64   `json:"distance_miles"`
	FuelCost      float64   `json:"fuel_cost"`
	NetProfit     float64   `json:"net_profit"`
	ArriveAt      time.Time `json:"arrive_at"`
	Expansions    int       `json:"expansions"`
	Truncated     bool      `json:"truncated"`
}

// Fetch a cached route. A miss is reported as (zero, false, nil).
func (c *RedisRouteCache) Get(ctx context.Context, key string) (_ domain.RouteResult, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	if c.Client == nil {
		return domain.RouteResult{}, false, errors.New("route cache: client is nil")
	}

	b, err := c.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.RouteResult{}, false, nil
	}
	if err != nil {
		return domain.RouteResult{}, false, fmt.Errorf("get route cache key=%q: %w", key, err)
	}

	var cr cachedRoute
	if err := json.Unmarshal(b, &cr); err != nil {
		return domain.RouteResult{}, false, fmt.Errorf("get route cache key=%q: decode: %w", key, err)
	}

	return domain.RouteResult{
		LoadIDs:       cr.LoadIDs,
		MoneyEarned:   cr.MoneyEarned,
		DistanceMiles: cr.DistanceMiles,
		FuelCost:      cr.FuelCost,
		NetProfit:     cr.NetProfit,
		ArriveAt:      cr.ArriveAt,
		Expansions:    cr.Expansions,
		Truncated:     cr.Truncated,
	}, true, nil
}

// Store a route under key. The trip id is not part of the entry; the same
// search may answer several trips.
func (c *RedisRouteCache) Set(ctx context.Context, key string, r domain.RouteResult, ttl time.Duration) (err error) {
	defer obs.Time(ctx, "route.cache.Set")(&err)

	if c.Client == nil {
		return errors.New("route cache: client is nil")
	}

	b, err := json.Marshal(cachedRoute{
		LoadIDs:       r.LoadIDs,
		MoneyEarned:   r.MoneyEarned,
		DistanceMiles: r.DistanceMiles,
		FuelCost:      r.FuelCost,
		NetProfit:     r.NetProfit,
		ArriveAt:      r.ArriveAt,
		Expansions:    r.Expansions,
		Truncated:     r.Truncated,
	})
	if err != nil {
		return fmt.Errorf("set route cache key=%q: encode: %w", key, err)
	}

	if err := c.Client.Set(ctx, key, b, ttl).Err(); err != nil {
		return fmt.Errorf("set route cache key=%q: %w", key, err)
	}
	return nil
}

package ports

import (
	"context"
	"load-route-service/internal/domain"
	"time"
)

// Optional cache of search results. Keys are built by the planner from the
// graph fingerprint, engine parameters and the request itself.
type RouteCache interface {
	// Return the cached result and true, or false on a miss.
	Get(ctx context.Context, key string) (domain.RouteResult, bool, error)
	Set(ctx context.Context, key string, result domain.RouteResult, ttl time.Duration) error
}

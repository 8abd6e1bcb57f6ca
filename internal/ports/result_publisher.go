package ports

import (
	"context"
	"load-route-service/internal/domain"
)

// Publishes planned routes to downstream consumers (dispatch boards, etc).
type ResultPublisher interface {
	Publish(ctx context.Context, result domain.RouteResult) error
}

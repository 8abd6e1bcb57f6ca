package ports

import (
	"context"
	"load-route-service/internal/domain"
)

// Port: a boundary for retrieving the Load snapshot the graph is built from.
type LoadRepository interface {
	// Retrieve all loads available for routing.
	ListLoads(ctx context.Context) ([]domain.Load, error)
}

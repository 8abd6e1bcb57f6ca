package ports

import (
	"context"
	"errors"
	"load-route-service/internal/domain"
)

var ErrResultNotFound = errors.New("route result not found")

// Port: persistence for planned routes.
type ResultStore interface {
	// Insert or replace results keyed by trip id.
	SaveResults(ctx context.Context, results []domain.RouteResult) error
	// Return the stored result for a trip, or ErrResultNotFound.
	GetResult(ctx context.Context, tripID int64) (domain.RouteResult, error)
}

package memory

import (
	"context"
	"fmt"
	"load-route-service/internal/domain"
	"load-route-service/internal/ports"
	"slices"
	"sync"
)

// ResultStore keeps the latest result per trip in memory. It backs the
// service when no database is configured.
type ResultStore struct {
	mu      sync.RWMutex
	results map[int64]domain.RouteResult
}

func NewResultStore() *ResultStore {
	return &ResultStore{results: make(map[int64]domain.RouteResult)}
}

func (s *ResultStore) SaveResults(ctx context.Context, results []domain.RouteResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range results {
		r.LoadIDs = slices.Clone(r.LoadIDs)
		s.results[r.TripID] = r
	}
	return nil
}

func (s *ResultStore) GetResult(ctx context.Context, tripID int64) (domain.RouteResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.results[tripID]
	if !ok {
		return domain.RouteResult{}, fmt.Errorf("get result: trip_id=%d: %w", tripID, ports.ErrResultNotFound)
	}
	r.LoadIDs = slices.Clone(r.LoadIDs)
	return r, nil
}

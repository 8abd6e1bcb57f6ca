package memory

import (
	"context"
	"load-route-service/internal/domain"
	"slices"
)

// LoadRepository serves a fixed load snapshot from memory.
type LoadRepository struct {
	loads []domain.Load
}

func NewLoadRepository(loads []domain.Load) *LoadRepository {
	return &LoadRepository{loads: slices.Clone(loads)}
}

func (r *LoadRepository) ListLoads(ctx context.Context) ([]domain.Load, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(r.loads), nil
}

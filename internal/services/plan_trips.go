package services

import (
	"context"
	"fmt"
	"load-route-service/internal/domain"
	"load-route-service/internal/platform/obs"
	"log"

	"golang.org/x/sync/errgroup"
)

// PlanTrips plans every trip independently and returns results in input
// order. Per-trip failures are recorded on the trip's result; only a
// cancelled ctx fails the batch.
//
// Results are then saved and published when a store or publisher is
// configured. Those side effects are best-effort: failures are logged and
// do not fail the batch.
func (p *RoutePlanner) PlanTrips(ctx context.Context, trips []domain.TripRequest) (_ []domain.RouteResult, err error) {
	defer obs.Time(ctx, "plan.trips")(&err)

	results := make([]domain.RouteResult, len(trips))

	var g errgroup.Group
	g.SetLimit(p.workers)
	for i, trip := range trips {
		g.Go(func() error {
			results[i] = p.PlanTrip(ctx, trip)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return results, fmt.Errorf("plan trips: %w", err)
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	log.Printf("planned trips=%d failed=%d", len(results), failed)

	p.record(ctx, results)
	return results, nil
}

func (p *RoutePlanner) record(ctx context.Context, results []domain.RouteResult) {
	if p.store != nil {
		if err := p.store.SaveResults(ctx, results); err != nil {
			log.Printf("save results failed count=%d err=%v", len(results), err)
		}
	}

	if p.publisher != nil {
		for _, r := range results {
			if err := p.publisher.Publish(ctx, r); err != nil {
				log.Printf("publish result failed trip_id=%d err=%v", r.TripID, err)
			}
		}
	}
}

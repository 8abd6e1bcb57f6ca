package services

import (
	"context"
	"fmt"
	"load-route-service/internal/domain"
	"load-route-service/internal/graph"
	"load-route-service/internal/platform/obs"
	"load-route-service/internal/ports"
	"log"
)

// LoadGraph reads the load snapshot from repo and builds the graph.
// A single invalid load fails the whole snapshot.
func LoadGraph(ctx context.Context, repo ports.LoadRepository, opts graph.Options) (_ *graph.Graph, err error) {
	defer obs.Time(ctx, "graph.build")(&err)

	loads, err := repo.ListLoads(ctx)
	if err != nil {
		return nil, fmt.Errorf("load graph: list loads: %w", err)
	}

	if err := domain.ValidateLoads(loads); err != nil {
		return nil, fmt.Errorf("load graph: %w", err)
	}

	g := graph.Build(loads, opts)

	s := g.Stats()
	log.Printf(
		"graph built loads=%d nodes=%d edges=%d origins=%d max_fan_out=%d fingerprint=%016x",
		len(loads), s.Nodes, s.Edges, s.Origins, s.MaxFanOut, s.Fingerprint,
	)

	return g, nil
}

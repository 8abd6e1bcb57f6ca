package main

import (
	"context"
	"flag"
	"io"
	"load-route-service/internal/adapters/memory"
	"load-route-service/internal/adapters/repositories"
	"load-route-service/internal/config"
	"load-route-service/internal/graph"
	"load-route-service/internal/services"
	"log"
	"os"
	"os/signal"
	"syscall"
)

// planner runs a batch of trip requests against a load dataset and writes
// one {input_trip_id, load_ids} record per trip. Cost model and search
// limits come from the same environment variables as the server.
func main() {
	loadsPath := flag.String("loads", "data/loads.json", "path to the loads JSON dataset")
	tripsPath := flag.String("trips", "data/trips.json", "path to the trip requests JSON")
	outPath := flag.String("out", "-", "output path, or - for stdout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loads, err := repositories.ReadLoadsJSON(*loadsPath)
	if err != nil {
		log.Fatal(err)
	}
	trips, err := repositories.ReadTripsJSON(*tripsPath)
	if err != nil {
		log.Fatal(err)
	}

	g, err := services.LoadGraph(ctx, memory.NewLoadRepository(loads), graph.Options{
		EarthRadiusMeters: cfg.EarthRadiusMeters,
		CoordPrecision:    cfg.CoordPrecision,
	})
	if err != nil {
		log.Fatal(err)
	}

	planner, err := services.NewRoutePlanner(g, cfg.SearchParams(),
		services.WithWorkers(cfg.PlannerWorkers),
		services.WithSearchTimeout(cfg.SearchTimeout),
	)
	if err != nil {
		log.Fatal(err)
	}

	results, err := planner.PlanTrips(ctx, trips)
	if err != nil {
		log.Fatal(err)
	}

	var w io.Writer = os.Stdout
	if *outPath != "-" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Fatalf("create output %q: %v", *outPath, err)
		}
		defer f.Close()
		w = f
	}

	if err := repositories.EncodeResults(w, results); err != nil {
		log.Fatal(err)
	}
}

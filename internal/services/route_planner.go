package services

import (
	"context"
	"errors"
	"fmt"
	"load-route-service/internal/domain"
	"load-route-service/internal/graph"
	"load-route-service/internal/platform/obs"
	"load-route-service/internal/ports"
	"load-route-service/internal/search"
	"log"
	"time"

	"github.com/cespare/xxhash/v2"
)

// RoutePlanner answers trip requests against one graph snapshot.
//
// The graph is shared read-only by every search; each search owns its own
// frontier and closed set, so PlanTrip is safe for concurrent use.
type RoutePlanner struct {
	graph     *graph.Graph
	engine    *search.Engine
	cache     ports.RouteCache
	cacheTTL  time.Duration
	store     ports.ResultStore
	publisher ports.ResultPublisher
	workers   int
	timeout   time.Duration
}

type Option func(*RoutePlanner)

func WithCache(c ports.RouteCache, ttl time.Duration) Option {
	return func(p *RoutePlanner) {
		p.cache = c
		p.cacheTTL = ttl
	}
}

func WithResultStore(s ports.ResultStore) Option {
	return func(p *RoutePlanner) { p.store = s }
}

func WithPublisher(pub ports.ResultPublisher) Option {
	return func(p *RoutePlanner) { p.publisher = pub }
}

// WithWorkers bounds how many searches PlanTrips runs at once.
func WithWorkers(n int) Option {
	return func(p *RoutePlanner) { p.workers = n }
}

// WithSearchTimeout bounds the wall-clock time of a single search.
func WithSearchTimeout(d time.Duration) Option {
	return func(p *RoutePlanner) { p.timeout = d }
}

func NewRoutePlanner(g *graph.Graph, params search.Params, opts ...Option) (*RoutePlanner, error) {
	engine, err := search.NewEngine(g, params)
	if err != nil {
		return nil, fmt.Errorf("new route planner: %w", err)
	}

	p := &RoutePlanner{
		graph:   g,
		engine:  engine,
		workers: 1,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.workers < 1 {
		return nil, errors.New("new route planner: workers must be at least 1")
	}

	return p, nil
}

func (p *RoutePlanner) Graph() *graph.Graph { return p.graph }

// Results returns the configured result store, or nil.
func (p *RoutePlanner) Results() ports.ResultStore { return p.store }

// PlanTrip runs one search. Failures are reported in the result's Error
// field rather than returned, so one bad request never affects another.
func (p *RoutePlanner) PlanTrip(ctx context.Context, trip domain.TripRequest) domain.RouteResult {
	if err := trip.Validate(); err != nil {
		res := emptyResult(trip)
		res.Error = err.Error()
		return res
	}

	key := p.cacheKey(trip)
	if p.cache != nil {
		cached, ok, err := p.cache.Get(ctx, key)
		switch {
		case err != nil:
			log.Printf("route cache lookup failed trip_id=%d err=%v", trip.TripID, err)
		case ok:
			cached.TripID = trip.TripID
			return cached
		}
	}

	searchCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	res, err := p.search(searchCtx, trip)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	if p.cache != nil {
		if err := p.cache.Set(ctx, key, res, p.cacheTTL); err != nil {
			log.Printf("route cache store failed trip_id=%d err=%v", trip.TripID, err)
		}
	}
	return res
}

func (p *RoutePlanner) search(ctx context.Context, trip domain.TripRequest) (res domain.RouteResult, err error) {
	defer obs.Time(ctx, "search.trip")(&err)

	res = emptyResult(trip)

	out, searchErr := p.engine.Search(ctx, trip)
	if out == nil {
		return res, searchErr
	}

	path, err := out.Path()
	if err != nil {
		return res, fmt.Errorf("plan trip %d: %w", trip.TripID, err)
	}

	best := out.Best
	res.LoadIDs = search.LoadIDs(path)
	res.MoneyEarned = best.MoneyEarned
	res.DistanceMiles = best.DistanceMiles
	res.FuelCost = best.DistanceMiles * p.engine.Params().FuelCostPerMile
	res.NetProfit = best.Profit
	res.ArriveAt = best.ArriveAt
	res.Expansions = out.Expansions
	res.Truncated = out.Truncated

	return res, searchErr
}

// cacheKey identifies a search by graph contents, engine parameters and
// request, but not by trip id.
func (p *RoutePlanner) cacheKey(trip domain.TripRequest) string {
	params := p.engine.Params()
	h := xxhash.Sum64String(fmt.Sprintf(
		"%v|%v|%d|%t|%v|%v|%d|%d",
		params.FuelCostPerMile,
		params.AverageSpeedMPH,
		params.MaxExpansions,
		params.PruneNegativeProfit,
		trip.Start.Lat,
		trip.Start.Lon,
		trip.StartTime.UnixNano(),
		trip.Deadline.UnixNano(),
	))
	return fmt.Sprintf("route:%016x:%016x", p.graph.Fingerprint(), h)
}

func emptyResult(trip domain.TripRequest) domain.RouteResult {
	return domain.RouteResult{
		TripID:   trip.TripID,
		LoadIDs:  []int64{},
		ArriveAt: trip.StartTime,
	}
}

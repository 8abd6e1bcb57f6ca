package search

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"load-route-service/internal/domain"
	"load-route-service/internal/graph"
)

const (
	DefaultFuelCostPerMile = 0.40
	DefaultAverageSpeedMPH = 55.0
)

// Params is the per-engine cost model and search policy.
type Params struct {
	FuelCostPerMile float64
	AverageSpeedMPH float64
	// Maximum number of locations expanded per search. Zero is unbounded.
	MaxExpansions int
	// Drop successors whose edge earns less than its fuel cost.
	PruneNegativeProfit bool
}

func DefaultParams() Params {
	return Params{
		FuelCostPerMile: DefaultFuelCostPerMile,
		AverageSpeedMPH: DefaultAverageSpeedMPH,
	}
}

func (p Params) Validate() error {
	if math.IsNaN(p.FuelCostPerMile) || p.FuelCostPerMile < 0 {
		return fmt.Errorf("search params: fuel cost per mile must be non-negative, got %v", p.FuelCostPerMile)
	}
	if math.IsNaN(p.AverageSpeedMPH) || p.AverageSpeedMPH <= 0 {
		return fmt.Errorf("search params: average speed must be positive, got %v", p.AverageSpeedMPH)
	}
	if p.MaxExpansions < 0 {
		return fmt.Errorf("search params: max expansions must be non-negative, got %d", p.MaxExpansions)
	}
	return nil
}

// Node is a hypothetical truck state reached during one search. Several
// nodes may exist for the same location, one per path that reached it.
type Node struct {
	Location      domain.Coordinate
	ArriveAt      time.Time
	MoneyEarned   float64
	DistanceMiles float64
	// Net profit of the whole chain so far: money earned minus fuel.
	Profit float64
	// Predecessor location; the node that expanded it is the one that
	// closed it.
	Parent    domain.Coordinate
	HasParent bool
	// Load taken to arrive here; unset for the start node.
	LoadID int64

	seq uint64
}

// Outcome holds everything a finished search knows: the best node, the
// closed bookkeeping needed to rebuild its path, and search counters.
type Outcome struct {
	Best       Node
	Closed     map[domain.Coordinate]Node
	Expansions int
	Truncated  bool
}

// Path returns the nodes from the start to Best.
func (o *Outcome) Path() ([]Node, error) {
	return Reconstruct(o.Best, o.Closed)
}

// LoadIDs returns the loads of the best route in traversal order.
func (o *Outcome) LoadIDs() ([]int64, error) {
	path, err := o.Path()
	if err != nil {
		return nil, err
	}
	return LoadIDs(path), nil
}

// Engine runs best-first load-chain searches over a shared graph. An Engine
// holds no per-search state and is safe for concurrent use.
type Engine struct {
	graph  *graph.Graph
	params Params
}

func NewEngine(g *graph.Graph, params Params) (*Engine, error) {
	if g == nil {
		return nil, errors.New("new engine: graph must be non-nil")
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}
	return &Engine{graph: g, params: params}, nil
}

func (e *Engine) Params() Params { return e.params }

// TravelTime converts a distance to driving time at the average speed,
// truncated to whole seconds.
func (e *Engine) TravelTime(miles float64) time.Duration {
	seconds := math.Floor(miles / e.params.AverageSpeedMPH * 3600)
	return time.Duration(seconds) * time.Second
}

// Search finds the most lucrative chain of loads reachable from the trip's
// start before its deadline.
//
// States are expanded in order of money earned (ties: earlier arrival, then
// creation order). The first state popped at a location closes it; later
// states reaching a closed location are discarded even if they earned more.
// This is a greedy profit search, not an optimal one.
//
// A start location that owns no edges yields an Outcome whose Best is the
// start itself, i.e. an empty route. When ctx is done the Outcome built so
// far is returned together with the context error.
func (e *Engine) Search(ctx context.Context, trip domain.TripRequest) (*Outcome, error) {
	start := Node{
		Location: e.graph.Canonical(trip.Start),
		ArriveAt: trip.StartTime,
	}

	out := &Outcome{
		Best:   start,
		Closed: make(map[domain.Coordinate]Node),
	}

	open := &frontier{start}
	var seq uint64

	for open.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return out, fmt.Errorf("search trip %d: %w", trip.TripID, err)
		}
		if e.params.MaxExpansions > 0 && out.Expansions >= e.params.MaxExpansions {
			out.Truncated = true
			break
		}

		current := heap.Pop(open).(Node)
		if _, done := out.Closed[current.Location]; done {
			continue
		}

		for _, edge := range e.graph.Edges(current.Location) {
			if _, done := out.Closed[edge.Destination]; done {
				continue
			}

			next := e.advance(current, edge)
			if !next.ArriveAt.Before(trip.Deadline) {
				continue
			}
			if e.params.PruneNegativeProfit && next.Profit < current.Profit {
				continue
			}

			seq++
			next.seq = seq
			heap.Push(open, next)

			if better(next, out.Best) {
				out.Best = next
			}
		}

		out.Closed[current.Location] = current
		out.Expansions++
	}

	return out, nil
}

// advance derives the successor of n after hauling edge.
func (e *Engine) advance(n Node, edge graph.Edge) Node {
	money := n.MoneyEarned + float64(edge.Amount)
	distance := n.DistanceMiles + edge.DistanceMiles

	return Node{
		Location:      edge.Destination,
		ArriveAt:      n.ArriveAt.Add(e.TravelTime(edge.DistanceMiles)),
		MoneyEarned:   money,
		DistanceMiles: distance,
		Profit:        money - distance*e.params.FuelCostPerMile,
		Parent:        n.Location,
		HasParent:     true,
		LoadID:        edge.LoadID,
	}
}

// better is the frontier order: more money first, then earlier arrival,
// then earlier creation.
func better(a, b Node) bool {
	if a.MoneyEarned != b.MoneyEarned {
		return a.MoneyEarned > b.MoneyEarned
	}
	if !a.ArriveAt.Equal(b.ArriveAt) {
		return a.ArriveAt.Before(b.ArriveAt)
	}
	return a.seq < b.seq
}

type frontier []Node

func (f frontier) Len() int           { return len(f) }
func (f frontier) Less(i, j int) bool { return better(f[i], f[j]) }
func (f frontier) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) {
	*f = append(*f, x.(Node))
}

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}

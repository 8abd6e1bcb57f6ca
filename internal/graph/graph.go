package graph

import (
	"encoding/binary"
	"math"
	"slices"
	"time"

	"github.com/cespare/xxhash/v2"

	"load-route-service/internal/domain"
	"load-route-service/internal/geo"
)

// Edge is a directed, priced connection derived from exactly one load.
// It only runs origin -> destination.
type Edge struct {
	LoadID        int64
	Origin        domain.Coordinate
	Destination   domain.Coordinate
	DistanceMiles float64
	Amount        int64
	PickupAt      time.Time
}

type Options struct {
	// Zero uses geo.DefaultEarthRadiusMeters.
	EarthRadiusMeters float64
	// Decimal places load endpoints and trip starts are rounded to before
	// keying. Zero keeps exact float equality.
	CoordPrecision int
}

// Graph is the build-once, read-many load network. It is safe for
// concurrent readers once Build returns.
type Graph struct {
	nodes       map[domain.Coordinate]struct{}
	adjacency   map[domain.Coordinate][]Edge
	loads       []domain.Load
	opts        Options
	edgeCount   int
	fingerprint uint64
}

type Stats struct {
	Nodes       int
	Edges       int
	Origins     int
	MaxFanOut   int
	Fingerprint uint64
}

// Build creates the node set and adjacency map from loads.
//
// Every load becomes one Edge stored under its origin; loads sharing an
// origin fan out under the same key. Both endpoints are registered as nodes.
// Input is expected to be validated by the caller.
func Build(loads []domain.Load, opts Options) *Graph {
	g := &Graph{
		nodes:     make(map[domain.Coordinate]struct{}, 2*len(loads)),
		adjacency: make(map[domain.Coordinate][]Edge, len(loads)),
		loads:     slices.Clone(loads),
		opts:      opts,
	}

	metric := geo.Haversine{RadiusMeters: opts.EarthRadiusMeters}

	for _, l := range loads {
		origin := l.Origin.Quantize(opts.CoordPrecision)
		destination := l.Destination.Quantize(opts.CoordPrecision)

		g.adjacency[origin] = append(g.adjacency[origin], Edge{
			LoadID:        l.LoadID,
			Origin:        origin,
			Destination:   destination,
			DistanceMiles: metric.Miles(l.Origin, l.Destination),
			Amount:        l.Amount,
			PickupAt:      l.PickupAt,
		})
		g.nodes[origin] = struct{}{}
		g.nodes[destination] = struct{}{}
		g.edgeCount++
	}

	g.fingerprint = fingerprint(loads, opts)
	return g
}

// Canonical maps a raw coordinate to the key the graph stores it under.
func (g *Graph) Canonical(c domain.Coordinate) domain.Coordinate {
	return c.Quantize(g.opts.CoordPrecision)
}

// Edges returns the outgoing edges of c. The slice must not be modified.
func (g *Graph) Edges(c domain.Coordinate) []Edge {
	return g.adjacency[c]
}

func (g *Graph) HasNode(c domain.Coordinate) bool {
	_, ok := g.nodes[c]
	return ok
}

// Loads returns the loads the graph was built from, in input order.
func (g *Graph) Loads() []domain.Load {
	return g.loads
}

func (g *Graph) Options() Options { return g.opts }

// Fingerprint identifies the graph contents independent of load order.
func (g *Graph) Fingerprint() uint64 { return g.fingerprint }

func (g *Graph) Stats() Stats {
	maxFanOut := 0
	for _, edges := range g.adjacency {
		maxFanOut = max(maxFanOut, len(edges))
	}

	return Stats{
		Nodes:       len(g.nodes),
		Edges:       g.edgeCount,
		Origins:     len(g.adjacency),
		MaxFanOut:   maxFanOut,
		Fingerprint: g.fingerprint,
	}
}

func fingerprint(loads []domain.Load, opts Options) uint64 {
	sorted := slices.Clone(loads)
	slices.SortFunc(sorted, func(a, b domain.Load) int {
		switch {
		case a.LoadID < b.LoadID:
			return -1
		case a.LoadID > b.LoadID:
			return 1
		}
		return 0
	})

	d := xxhash.New()
	var buf [8]byte
	writeUint := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = d.Write(buf[:])
	}
	writeFloat := func(f float64) { writeUint(math.Float64bits(f)) }

	writeFloat(opts.EarthRadiusMeters)
	writeUint(uint64(opts.CoordPrecision))
	for _, l := range sorted {
		writeUint(uint64(l.LoadID))
		writeFloat(l.Origin.Lat)
		writeFloat(l.Origin.Lon)
		writeFloat(l.Destination.Lat)
		writeFloat(l.Destination.Lon)
		writeUint(uint64(l.Amount))
		writeUint(uint64(l.PickupAt.UnixNano()))
	}

	return d.Sum64()
}

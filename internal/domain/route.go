package domain

import "time"

// Represents the planned load chain for a single trip request.
// A RouteResult is the output of the search engine: the ordered load ids
// plus aggregate metrics of the chain. An empty LoadIDs slice is a valid
// "no route" answer, not a failure.
//
// Error is set when the search for this request did not complete (for
// example a timeout); LoadIDs then holds the best route found before it
// stopped.
type RouteResult struct {
	TripID        int64
	LoadIDs       []int64
	MoneyEarned   float64
	DistanceMiles float64
	FuelCost      float64
	NetProfit     float64
	ArriveAt      time.Time
	Expansions    int
	Truncated     bool
	Error         string
}

// Report whether the result contains at least one load.
func (r RouteResult) HasRoute() bool { return len(r.LoadIDs) > 0 }

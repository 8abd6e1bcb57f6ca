package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidLoad = errors.New("invalid load")

// Represents a single contracted haul from an origin to a destination
// with a fixed payout. Loads are read once when the graph snapshot is built
// and never mutated afterwards.
type Load struct {
	LoadID           int64
	OriginCity       string
	OriginState      string
	Origin           Coordinate
	DestinationCity  string
	DestinationState string
	Destination      Coordinate
	Amount           int64
	PickupAt         time.Time
}

// Validate checks the fields the graph builder relies on.
func (l Load) Validate() error {
	if l.LoadID <= 0 {
		return fmt.Errorf("%w: load_id must be positive, got %d", ErrInvalidLoad, l.LoadID)
	}
	if !l.Origin.Valid() {
		return fmt.Errorf("%w: load %d origin %s out of range", ErrInvalidLoad, l.LoadID, l.Origin)
	}
	if !l.Destination.Valid() {
		return fmt.Errorf("%w: load %d destination %s out of range", ErrInvalidLoad, l.LoadID, l.Destination)
	}
	return nil
}

// ValidateLoads validates every load and rejects duplicate identifiers.
// Any failure invalidates the whole dataset.
func ValidateLoads(loads []Load) error {
	seen := make(map[int64]struct{}, len(loads))
	for i, l := range loads {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("validate loads: index %d: %w", i, err)
		}
		if _, ok := seen[l.LoadID]; ok {
			return fmt.Errorf("validate loads: index %d: %w: duplicate load_id %d", i, ErrInvalidLoad, l.LoadID)
		}
		seen[l.LoadID] = struct{}{}
	}
	return nil
}

package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidTrip = errors.New("invalid trip request")

// A single routing query: where and when the truck starts, and the latest
// acceptable arrival time.
type TripRequest struct {
	TripID    int64
	Start     Coordinate
	StartTime time.Time
	Deadline  time.Time
}

// Validate checks the request is well formed. A deadline at or before the
// start time is valid; the search just finds nothing reachable in time.
func (t TripRequest) Validate() error {
	if !t.Start.Valid() {
		return fmt.Errorf("%w: trip %d start %s out of range", ErrInvalidTrip, t.TripID, t.Start)
	}
	if t.StartTime.IsZero() || t.Deadline.IsZero() {
		return fmt.Errorf("%w: trip %d start_time and max_destination_time are required", ErrInvalidTrip, t.TripID)
	}
	return nil
}

// ParseTripRequest builds a TripRequest from wire fields. Nil pointers are
// missing fields; times use TripTimeLayout.
func ParseTripRequest(id *int64, lat, lon *float64, startTime, deadline string) (TripRequest, error) {
	if id == nil {
		return TripRequest{}, fmt.Errorf("%w: missing input_trip_id", ErrInvalidTrip)
	}
	if lat == nil || lon == nil {
		return TripRequest{}, fmt.Errorf("%w: trip %d missing start coordinates", ErrInvalidTrip, *id)
	}

	start, err := ParseTripTime(startTime)
	if err != nil {
		return TripRequest{}, fmt.Errorf("%w: trip %d start_time: %w", ErrInvalidTrip, *id, err)
	}
	end, err := ParseTripTime(deadline)
	if err != nil {
		return TripRequest{}, fmt.Errorf("%w: trip %d max_destination_time: %w", ErrInvalidTrip, *id, err)
	}

	trip := TripRequest{
		TripID:    *id,
		Start:     Coordinate{Lat: *lat, Lon: *lon},
		StartTime: start,
		Deadline:  end,
	}
	if err := trip.Validate(); err != nil {
		return TripRequest{}, err
	}
	return trip, nil
}

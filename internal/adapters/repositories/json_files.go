package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"load-route-service/internal/domain"
	"os"
)

// LoadRecord is one entry of the load board JSON dataset.
type LoadRecord struct {
	LoadID               *int64   `json:"load_id"`
	OriginCity           string   `json:"origin_city"`
	OriginState          string   `json:"origin_state"`
	OriginLatitude       *float64 `json:"origin_latitude"`
	OriginLongitude      *float64 `json:"origin_longitude"`
	DestinationCity      string   `json:"destination_city"`
	DestinationState     string   `json:"destination_state"`
	DestinationLatitude  *float64 `json:"destination_latitude"`
	DestinationLongitude *float64 `json:"destination_longitude"`
	Amount               *int64   `json:"amount"`
	PickupDateTime       string   `json:"pickup_date_time"`
}

func (r LoadRecord) ToDomain() (domain.Load, error) {
	switch {
	case r.LoadID == nil:
		return domain.Load{}, fmt.Errorf("%w: missing load_id", domain.ErrInvalidLoad)
	case r.OriginLatitude == nil || r.OriginLongitude == nil:
		return domain.Load{}, fmt.Errorf("%w: load %d missing origin coordinates", domain.ErrInvalidLoad, *r.LoadID)
	case r.DestinationLatitude == nil || r.DestinationLongitude == nil:
		return domain.Load{}, fmt.Errorf("%w: load %d missing destination coordinates", domain.ErrInvalidLoad, *r.LoadID)
	case r.Amount == nil:
		return domain.Load{}, fmt.Errorf("%w: load %d missing amount", domain.ErrInvalidLoad, *r.LoadID)
	}

	pickup, err := domain.ParseLoadTime(r.PickupDateTime)
	if err != nil {
		return domain.Load{}, fmt.Errorf("%w: load %d: %w", domain.ErrInvalidLoad, *r.LoadID, err)
	}

	return domain.Load{
		LoadID:           *r.LoadID,
		OriginCity:       r.OriginCity,
		OriginState:      r.OriginState,
		Origin:           domain.Coordinate{Lat: *r.OriginLatitude, Lon: *r.OriginLongitude},
		DestinationCity:  r.DestinationCity,
		DestinationState: r.DestinationState,
		Destination:      domain.Coordinate{Lat: *r.DestinationLatitude, Lon: *r.DestinationLongitude},
		Amount:           *r.Amount,
		PickupAt:         pickup,
	}, nil
}

// TripRecord is one entry of the trip request JSON input.
type TripRecord struct {
	InputTripID        *int64   `json:"input_trip_id"`
	StartLatitude      *float64 `json:"start_latitude"`
	StartLongitude     *float64 `json:"start_longitude"`
	StartTime          string   `json:"start_time"`
	MaxDestinationTime string   `json:"max_destination_time"`
}

func (r TripRecord) ToDomain() (domain.TripRequest, error) {
	return domain.ParseTripRequest(r.InputTripID, r.StartLatitude, r.StartLongitude, r.StartTime, r.MaxDestinationTime)
}

// ResultRecord is one entry of the results JSON output.
type ResultRecord struct {
	InputTripID int64   `json:"input_trip_id"`
	LoadIDs     []int64 `json:"load_ids"`
}

// DecodeLoads parses a JSON array of loads. Any malformed record fails the
// whole dataset.
func DecodeLoads(r io.Reader) ([]domain.Load, error) {
	var records []LoadRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode loads: parse json: %w", err)
	}

	loads := make([]domain.Load, 0, len(records))
	for i, rec := range records {
		l, err := rec.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("decode loads: index %d: %w", i, err)
		}
		loads = append(loads, l)
	}

	if err := domain.ValidateLoads(loads); err != nil {
		return nil, fmt.Errorf("decode loads: %w", err)
	}
	return loads, nil
}

// DecodeTrips parses a JSON array of trip requests. Any malformed record
// fails the whole input.
func DecodeTrips(r io.Reader) ([]domain.TripRequest, error) {
	var records []TripRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode trips: parse json: %w", err)
	}

	trips := make([]domain.TripRequest, 0, len(records))
	for i, rec := range records {
		trip, err := rec.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("decode trips: index %d: %w", i, err)
		}
		trips = append(trips, trip)
	}
	return trips, nil
}

// EncodeResults writes results as an indented JSON array of
// {input_trip_id, load_ids}.
func EncodeResults(w io.Writer, results []domain.RouteResult) error {
	records := make([]ResultRecord, 0, len(results))
	for _, r := range results {
		ids := r.LoadIDs
		if ids == nil {
			ids = []int64{}
		}
		records = append(records, ResultRecord{InputTripID: r.TripID, LoadIDs: ids})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	return nil
}

func ReadLoadsJSON(path string) ([]domain.Load, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read loads: open %q: %w", path, err)
	}
	defer f.Close()

	return DecodeLoads(f)
}

func ReadTripsJSON(path string) ([]domain.TripRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read trips: open %q: %w", path, err)
	}
	defer f.Close()

	return DecodeTrips(f)
}

// JSONLoadRepository serves loads from a JSON dataset on disk.
type JSONLoadRepository struct{ Path string }

func NewJSONLoadRepository(path string) *JSONLoadRepository {
	return &JSONLoadRepository{Path: path}
}

func (j *JSONLoadRepository) ListLoads(ctx context.Context) ([]domain.Load, error) {
	if j.Path == "" {
		return nil, errors.New("json load repository: path is empty")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadLoadsJSON(j.Path)
}

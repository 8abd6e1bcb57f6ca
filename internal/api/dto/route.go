package dto

import "load-route-service/internal/domain"

type TripRequest struct {
	InputTripID        *int64   `json:"input_trip_id"`
	StartLatitude      *float64 `json:"start_latitude"`
	StartLongitude     *float64 `json:"start_longitude"`
	StartTime          string   `json:"start_time"`
	MaxDestinationTime string   `json:"max_destination_time"`
}

func (r TripRequest) ToDomain() (domain.TripRequest, error) {
	return domain.ParseTripRequest(r.InputTripID, r.StartLatitude, r.StartLongitude, r.StartTime, r.MaxDestinationTime)
}

type PlanRoutesRequest struct {
	Trips []TripRequest `json:"trips"`
}

type RouteResponse struct {
	InputTripID   int64   `json:"input_trip_id"`
	LoadIDs       []int64 `json:"load_ids"`
	MoneyEarned   float64 `json:"money_earned"`
	DistanceMiles float64 `json:"distance_miles"`
	FuelCost      float64 `json:"fuel_cost"`
	NetProfit     float64 `json:"net_profit"`
	ArriveAt      string  `json:"arrive_at"`
	Expansions    int     `json:"expansions"`
	Truncated     bool    `json:"truncated"`
	Error         string  `json:"error,omitempty"`
}

func NewRouteResponse(r domain.RouteResult) RouteResponse {
	ids := r.LoadIDs
	if ids == nil {
		ids = []int64{}
	}

	return RouteResponse{
		InputTripID:   r.TripID,
		LoadIDs:       ids,
		MoneyEarned:   r.MoneyEarned,
		DistanceMiles: r.DistanceMiles,
		FuelCost:      r.FuelCost,
		NetProfit:     r.NetProfit,
		ArriveAt:      r.ArriveAt.UTC().Format(domain.TripTimeLayout),
		Expansions:    r.Expansions,
		Truncated:     r.Truncated,
		Error:         r.Error,
	}
}

type PlanRoutesResponse struct {
	Results []RouteResponse `json:"results"`
}

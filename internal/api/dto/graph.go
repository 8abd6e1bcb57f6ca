package dto

import (
	"fmt"
	"load-route-service/internal/domain"
	"load-route-service/internal/graph"
)

type GraphStatsResponse struct {
	Nodes       int    `json:"nodes"`
	Edges       int    `json:"edges"`
	Origins     int    `json:"origins"`
	MaxFanOut   int    `json:"max_fan_out"`
	Fingerprint string `json:"fingerprint"`
}

func NewGraphStatsResponse(s graph.Stats) GraphStatsResponse {
	return GraphStatsResponse{
		Nodes:       s.Nodes,
		Edges:       s.Edges,
		Origins:     s.Origins,
		MaxFanOut:   s.MaxFanOut,
		Fingerprint: fmt.Sprintf("%016x", s.Fingerprint),
	}
}

type LoadResponse struct {
	LoadID               int64   `json:"load_id"`
	OriginCity           string  `json:"origin_city"`
	OriginState          string  `json:"origin_state"`
	OriginLatitude       float64 `json:"origin_latitude"`
	OriginLongitude      float64 `json:"origin_longitude"`
	DestinationCity      string  `json:"destination_city"`
	DestinationState     string  `json:"destination_state"`
	DestinationLatitude  float64 `json:"destination_latitude"`
	DestinationLongitude float64 `json:"destination_longitude"`
	Amount               int64   `json:"amount"`
	PickupDateTime       string  `json:"pickup_date_time"`
}

type ListLoadsResponse struct {
	Loads []LoadResponse `json:"loads"`
}

func NewListLoadsResponse(loads []domain.Load) ListLoadsResponse {
	res := ListLoadsResponse{Loads: make([]LoadResponse, 0, len(loads))}
	for _, l := range loads {
		res.Loads = append(res.Loads, LoadResponse{
			LoadID:               l.LoadID,
			OriginCity:           l.OriginCity,
			OriginState:          l.OriginState,
			OriginLatitude:       l.Origin.Lat,
			OriginLongitude:      l.Origin.Lon,
			DestinationCity:      l.DestinationCity,
			DestinationState:     l.DestinationState,
			DestinationLatitude:  l.Destination.Lat,
			DestinationLongitude: l.Destination.Lon,
			Amount:               l.Amount,
			PickupDateTime:       l.PickupAt.UTC().Format(domain.LoadTimeLayout),
		})
	}
	return res
}

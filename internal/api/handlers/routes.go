package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"load-route-service/internal/api/dto"
	"load-route-service/internal/domain"
	"load-route-service/internal/ports"
	"load-route-service/internal/services"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const maxTripsPerRequest = 1000

type RouteHandler struct {
	Planner *services.RoutePlanner
}

// Plan decodes a batch of trip requests and plans each one. A malformed
// body or trip rejects the whole batch before any search runs.
func (h *RouteHandler) Plan(c *fiber.Ctx) error {
	var req dto.PlanRoutesRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid json body")
	}
	if len(req.Trips) == 0 {
		return writeError(c, fiber.StatusBadRequest, "trips is required")
	}
	if len(req.Trips) > maxTripsPerRequest {
		return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("at most %d trips per request", maxTripsPerRequest))
	}

	trips := make([]domain.TripRequest, 0, len(req.Trips))
	for i, t := range req.Trips {
		trip, err := t.ToDomain()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("trips[%d]: %v", i, err))
		}
		trips = append(trips, trip)
	}

	results, err := h.Planner.PlanTrips(c.UserContext(), trips)
	if err != nil {
		log.Printf("plan trips failed: %v", err)
		return writeError(c, fiber.StatusInternalServerError, "internal server error")
	}

	res := dto.PlanRoutesResponse{Results: make([]dto.RouteResponse, 0, len(results))}
	for _, r := range results {
		res.Results = append(res.Results, dto.NewRouteResponse(r))
	}

	return writeJSON(c, fiber.StatusOK, res)
}

// Get returns the last stored result for a trip id.
func (h *RouteHandler) Get(c *fiber.Ctx) error {
	store := h.Planner.Results()
	if store == nil {
		return writeError(c, fiber.StatusNotFound, "result store not configured")
	}

	tripID, err := strconv.ParseInt(c.Params("trip_id"), 10, 64)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "trip_id must be an integer")
	}

	r, err := store.GetResult(c.UserContext(), tripID)
	if errors.Is(err, ports.ErrResultNotFound) {
		return writeError(c, fiber.StatusNotFound, "route not found")
	}
	if err != nil {
		log.Printf("get result failed trip_id=%d err=%v", tripID, err)
		return writeError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return writeJSON(c, fiber.StatusOK, dto.NewRouteResponse(r))
}

package handlers

import (
	"load-route-service/internal/api/dto"
	"load-route-service/internal/graph"

	"github.com/gofiber/fiber/v2"
)

// GraphHandler exposes the loaded snapshot read-only.
type GraphHandler struct {
	Graph *graph.Graph
}

func (h *GraphHandler) Stats(c *fiber.Ctx) error {
	return writeJSON(c, fiber.StatusOK, dto.NewGraphStatsResponse(h.Graph.Stats()))
}

func (h *GraphHandler) ListLoads(c *fiber.Ctx) error {
	return writeJSON(c, fiber.StatusOK, dto.NewListLoadsResponse(h.Graph.Loads()))
}

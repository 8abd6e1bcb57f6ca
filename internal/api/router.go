package api

import (
	"load-route-service/internal/api/handlers"
	"load-route-service/internal/services"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp wires HTTP handlers with their dependencies and returns the fiber app.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewApp(planner *services.RoutePlanner) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "load-route-service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestID)
	app.Use(accessLog)

	graphHandler := &handlers.GraphHandler{Graph: planner.Graph()}
	routeHandler := &handlers.RouteHandler{Planner: planner}

	app.Get("/health", handlers.Health)
	app.Get("/graph", graphHandler.Stats)
	app.Get("/loads", graphHandler.ListLoads)
	app.Post("/routes", routeHandler.Plan)
	app.Get("/routes/:trip_id", routeHandler.Get)

	return app
}

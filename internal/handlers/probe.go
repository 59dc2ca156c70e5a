package handlers

import (
	"context"

	"github.com/gofiber/fiber/v3"
)

// Pinger checks a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ProbeHandler handles Kubernetes health probe endpoints.
type ProbeHandler struct {
	db Pinger
}

// NewProbeHandler creates a new probe handler.
func NewProbeHandler(database Pinger) *ProbeHandler {
	return &ProbeHandler{db: database}
}

// Liveness handles the /livez endpoint.
// Returns 200 OK if the application is running.
func (h *ProbeHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// Readiness handles the /healthz and /readyz endpoints.
// Returns 200 OK if the database is reachable.
func (h *ProbeHandler) Readiness(c fiber.Ctx) error {
	if err := h.db.Ping(c.Context()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "error",
			"error":  "database unavailable",
		})
	}

	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

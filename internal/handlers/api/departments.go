package api

import (
	"strings"

	"github.com/gofiber/fiber/v3"
)

// DepartmentRouter suggests inquiry recipients.
type DepartmentRouter interface {
	DetectDepartment(question string) string
}

// DivisionLookup maps a team to its division.
type DivisionLookup interface {
	DivisionOf(name string) (string, bool)
}

// DepartmentHandler serves department lookups.
type DepartmentHandler struct {
	router    DepartmentRouter
	divisions DivisionLookup
}

// NewDepartmentHandler creates a new API department handler.
func NewDepartmentHandler(router DepartmentRouter, divisions DivisionLookup) *DepartmentHandler {
	return &DepartmentHandler{router: router, divisions: divisions}
}

// Detect returns the department a question would be routed to and the
// division it belongs to.
func (h *DepartmentHandler) Detect(c fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		return jsonError(c, fiber.StatusBadRequest, "query parameter q is required")
	}

	department := h.router.DetectDepartment(q)
	division, _ := h.divisions.DivisionOf(department)

	return jsonSuccess(c, fiber.Map{"department": department, "division": division})
}

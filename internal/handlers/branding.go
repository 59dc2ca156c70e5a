package handlers

import (
	"github.com/gofiber/fiber/v3"

	"notiguard/internal/config"
	"notiguard/internal/models"
)

// MergeBranding adds site branding and the signed-in employee to a fiber.Map
// for template rendering.
func MergeBranding(data fiber.Map, cfg *config.Config, employee *models.Employee) fiber.Map {
	data["SiteTitle"] = cfg.SiteTitle
	data["BaseURL"] = cfg.BaseURL
	if employee != nil {
		data["Employee"] = employee
		data["IsAdmin"] = employee.IsAdmin()
	}
	return data
}

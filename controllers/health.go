package controllers

import (
	"coachpoint_go/services"

	"github.com/gofiber/fiber/v2"
)

type HealthController struct {
	healthService *services.HealthService
}

func NewHealthController(healthService *services.HealthService) *HealthController {
	return &HealthController{healthService: healthService}
}

// GetHealth returns the full health report including dependency probes
func (hc *HealthController) GetHealth(c *fiber.Ctx) error {
	report := hc.healthService.GetHealthReport()
	return c.Status(hc.healthService.HTTPStatusForOverall(report.Status)).JSON(report)
}

// GetLiveness is a minimal probe for orchestrators
func (hc *HealthController) GetLiveness(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

package controllers

import (
	"coachpoint_go/database"
	"coachpoint_go/services"
	"coachpoint_go/utils"

	"github.com/gofiber/fiber/v2"
)

type CoachController struct{}

// GetAllCoaches returns all active users with the coach role
func (cc *CoachController) GetAllCoaches(c *fiber.Ctx) error {
	svc := services.NewAssignmentService(database.GetDB())
	coaches, err := svc.ListCoaches()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch coaches",
		})
	}

	out := make([]fiber.Map, 0, len(coaches))
	for _, coach := range coaches {
		entry := fiber.Map{
			"id":       coach.ID,
			"username": coach.Username,
			"name":     utils.DisplayName(coach),
			"email":    coach.Email,
			"phone":    coach.Phone,
			"avatar":   coach.Avatar,
		}
		if coach.Coach != nil {
			entry["specializations"] = coach.Coach.Specializations
			entry["certifications"] = coach.Coach.Certifications
		}
		out = append(out, entry)
	}

	return c.JSON(fiber.Map{
		"coaches": out,
		"total":   len(out),
	})
}

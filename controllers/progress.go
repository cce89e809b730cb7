package controllers

import (
	"coachpoint_go/database"
	"coachpoint_go/middleware"
	"coachpoint_go/services"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type ProgressController struct{}

// GetStudentProgress returns the progress report for one enrollment.
// Students may only view their own enrollments; coaches must be assigned
// to the enrollment's batch.
func (pc *ProgressController) GetStudentProgress(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid enrollment ID",
		})
	}

	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	svc := services.NewProgressService(database.GetDB())
	progress, err := svc.GetStudentProgress(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrEnrollmentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Enrollment not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch progress",
		})
	}

	switch claims.Role {
	case "student":
		if progress.Enrollment.UserID != claims.UserID {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Students can only view their own progress",
			})
		}
	case "coach":
		assigned, err := services.NewAssignmentService(database.GetDB()).
			IsCoachAssigned(claims.UserID, progress.Enrollment.BatchID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to verify assignment",
			})
		}
		if !assigned {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You are not assigned to this batch",
			})
		}
	}

	return c.JSON(fiber.Map{
		"progress": progress,
	})
}

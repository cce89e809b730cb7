package controllers

import (
	"coachpoint_go/database"
	"coachpoint_go/middleware"
	"coachpoint_go/services"
	"coachpoint_go/services/notifications"
	"coachpoint_go/utils"
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type AssignmentController struct{}

// AssignRequest represents the assignment request body
type AssignRequest struct {
	CoachID uint   `json:"coach_id" validate:"required"`
	BatchID uint   `json:"batch_id" validate:"required"`
	Notes   string `json:"notes"`
}

// AssignCoachToBatch creates an active coach assignment for a batch.
// The assigning admin is taken from the authenticated session.
func (ac *AssignmentController) AssignCoachToBatch(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.CoachID == 0 || req.BatchID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "coach_id and batch_id are required",
		})
	}

	svc := services.NewAssignmentService(database.GetDB())
	assignmentID, err := svc.Assign(req.CoachID, req.BatchID, claims.UserID, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCoach):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "User is not an active coach",
			})
		case errors.Is(err, services.ErrBatchNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Batch not found",
			})
		case errors.Is(err, services.ErrDuplicateAssignment):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Coach is already assigned to this batch",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to assign coach",
			})
		}
	}

	middleware.LogActivity(c, "CREATE", "coach_assignments", assignmentID, fiber.Map{
		"coach_id": req.CoachID,
		"batch_id": req.BatchID,
	})

	// Notify the coach outside the assignment transaction
	n := notifications.QueuedWithData(
		"New Batch Assignment",
		fmt.Sprintf("You have been assigned to batch %d", req.BatchID),
		"info",
		fiber.Map{"assignment_id": assignmentID, "batch_id": req.BatchID},
	)
	if err := notifications.NewService().EnqueueOrCreate([]uint{req.CoachID}, n); err != nil {
		middleware.LogActivity(c, "CREATE", "notifications", 0, fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":       "Coach assigned successfully",
		"assignment_id": assignmentID,
	})
}

// RemoveCoachAssignment deactivates a coach assignment.
// Removing an already-inactive assignment succeeds without changes.
func (ac *AssignmentController) RemoveCoachAssignment(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid assignment ID",
		})
	}

	svc := services.NewAssignmentService(database.GetDB())
	if err := svc.Remove(uint(id)); err != nil {
		if errors.Is(err, services.ErrAssignmentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Assignment not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to remove assignment",
		})
	}

	middleware.LogActivity(c, "UPDATE", "coach_assignments", uint(id), fiber.Map{
		"action": "deactivate",
	})

	return c.JSON(fiber.Map{
		"message": "Assignment removed successfully",
	})
}

// GetCoachBatches returns every batch a coach is actively assigned to,
// with rosters. Coaches may only view their own batches; admins may view any.
func (ac *AssignmentController) GetCoachBatches(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid coach ID",
		})
	}

	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}
	if claims.Role != "admin" && claims.UserID != uint(id) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Coaches can only view their own batches",
		})
	}

	svc := services.NewAssignmentService(database.GetDB())
	rosters, err := svc.ListActiveForCoach(uint(id))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch coach batches",
		})
	}

	return c.JSON(fiber.Map{
		"coach_id": uint(id),
		"batches":  rosters,
		"total":    len(rosters),
	})
}

// GetAssignments returns active assignments, optionally filtered by batch
func (ac *AssignmentController) GetAssignments(c *fiber.Ctx) error {
	var batchID *uint
	if raw := c.Query("batch_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid batch_id",
			})
		}
		id := uint(parsed)
		batchID = &id
	}

	svc := services.NewAssignmentService(database.GetDB())
	assignments, err := svc.ListAssignments(batchID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch assignments",
		})
	}

	dtos := utils.ToAssignmentDTOs(assignments)
	return c.JSON(fiber.Map{
		"assignments": dtos,
		"total":       len(dtos),
	})
}

package controllers

import (
	"coachpoint_go/database"
	"coachpoint_go/middleware"
	"coachpoint_go/models"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type EnrollmentController struct{}

// GetEnrollments returns enrollments, optionally filtered by batch or user
func (ec *EnrollmentController) GetEnrollments(c *fiber.Ctx) error {
	var enrollments []models.Enrollment

	query := database.DB.Preload("User").Preload("User.Student").
		Preload("Batch").Preload("Batch.Sport").Order("id")
	if batchID := c.Query("batch_id"); batchID != "" {
		query = query.Where("batch_id = ?", batchID)
	}
	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("enrollment_status = ?", status)
	}

	if err := query.Find(&enrollments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch enrollments",
		})
	}

	return c.JSON(fiber.Map{
		"enrollments": enrollments,
		"total":       len(enrollments),
	})
}

// CreateEnrollment enrolls a student into a batch with a session quota
func (ec *EnrollmentController) CreateEnrollment(c *fiber.Ctx) error {
	var req struct {
		UserID        uint `json:"user_id" validate:"required"`
		BatchID       uint `json:"batch_id" validate:"required"`
		SessionsTotal int  `json:"sessions_total" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.UserID == 0 || req.BatchID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user_id and batch_id are required",
		})
	}
	if req.SessionsTotal < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "sessions_total cannot be negative",
		})
	}

	var user models.User
	if err := database.DB.Where("id = ? AND role = ? AND status = ?", req.UserID, "student", "active").
		First(&user).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "User is not an active student",
		})
	}

	var batch models.Batch
	if err := database.DB.First(&batch, req.BatchID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Batch not found",
		})
	}

	var existing models.Enrollment
	if err := database.DB.Where("user_id = ? AND batch_id = ? AND enrollment_status = ?",
		req.UserID, req.BatchID, "active").First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Student is already enrolled in this batch",
		})
	}

	var activeCount int64
	database.DB.Model(&models.Enrollment{}).
		Where("batch_id = ? AND enrollment_status = ?", req.BatchID, "active").
		Count(&activeCount)
	if batch.MaxStudents > 0 && activeCount >= int64(batch.MaxStudents) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Batch is full",
		})
	}

	enrollment := models.Enrollment{
		UserID:           req.UserID,
		BatchID:          req.BatchID,
		EnrollmentStatus: "active",
		SessionsTotal:    req.SessionsTotal,
		SessionsAttended: 0,
	}
	if err := database.DB.Create(&enrollment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create enrollment",
		})
	}

	database.DB.Preload("User").Preload("Batch").First(&enrollment, enrollment.ID)

	middleware.LogActivity(c, "CREATE", "enrollments", enrollment.ID, fiber.Map{
		"user_id":  req.UserID,
		"batch_id": req.BatchID,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Enrollment created successfully",
		"enrollment": enrollment,
	})
}

// UpdateEnrollment updates an enrollment's status or session quota.
// SessionsAttended is never writable here; only the attendance ledger
// moves that counter.
func (ec *EnrollmentController) UpdateEnrollment(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid enrollment ID",
		})
	}

	var enrollment models.Enrollment
	if err := database.DB.First(&enrollment, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Enrollment not found",
		})
	}

	var req struct {
		EnrollmentStatus string `json:"enrollment_status"`
		SessionsTotal    *int   `json:"sessions_total"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	updates := map[string]interface{}{}
	if req.EnrollmentStatus != "" {
		switch req.EnrollmentStatus {
		case "active", "paused", "completed", "cancelled":
			updates["enrollment_status"] = req.EnrollmentStatus
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid enrollment status",
			})
		}
	}
	if req.SessionsTotal != nil {
		if *req.SessionsTotal < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "sessions_total cannot be negative",
			})
		}
		updates["sessions_total"] = *req.SessionsTotal
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&enrollment).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to update enrollment",
			})
		}
	}

	middleware.LogActivity(c, "UPDATE", "enrollments", enrollment.ID, updates)

	return c.JSON(fiber.Map{
		"message":    "Enrollment updated successfully",
		"enrollment": enrollment,
	})
}

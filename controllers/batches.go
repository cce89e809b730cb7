package controllers

import (
	"coachpoint_go/database"
	"coachpoint_go/middleware"
	"coachpoint_go/models"
	"coachpoint_go/utils"
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type BatchController struct{}

// GetBatches returns batches with optional sport/location/status filters
func (bc *BatchController) GetBatches(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset := (page - 1) * limit

	var batches []models.Batch
	var total int64

	query := database.DB.Model(&models.Batch{})
	if sportID := c.Query("sport_id"); sportID != "" {
		query = query.Where("sport_id = ?", sportID)
	}
	if locationID := c.Query("location_id"); locationID != "" {
		query = query.Where("location_id = ?", locationID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	query.Count(&total)

	if err := query.Preload("Sport").Preload("Location").
		Offset(offset).Limit(limit).Order("id").Find(&batches).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch batches",
		})
	}

	return c.JSON(fiber.Map{
		"batches": batches,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// GetBatch returns a specific batch with its enrollments
func (bc *BatchController) GetBatch(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid batch ID",
		})
	}

	var batch models.Batch
	if err := database.DB.Preload("Sport").Preload("Location").
		Preload("Enrollments").Preload("Enrollments.User").
		First(&batch, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Batch not found",
		})
	}

	return c.JSON(fiber.Map{
		"batch": batch,
	})
}

// BatchRequest represents the batch create/update request body
type BatchRequest struct {
	SportID     uint            `json:"sport_id"`
	LocationID  uint            `json:"location_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Schedule    json.RawMessage `json:"schedule"`
	AgeGroup    string          `json:"age_group"`
	MaxStudents int             `json:"max_students"`
	Status      string          `json:"status"`
}

// CreateBatch creates a new training batch (admin only)
func (bc *BatchController) CreateBatch(c *fiber.Ctx) error {
	var req BatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.SportID == 0 || req.LocationID == 0 || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "sport_id, location_id and name are required",
		})
	}

	var sport models.Sport
	if err := database.DB.First(&sport, req.SportID).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Sport not found",
		})
	}
	var location models.Location
	if err := database.DB.First(&location, req.LocationID).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Location not found",
		})
	}

	if _, err := utils.ValidateSchedule(req.Schedule); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	maxStudents := req.MaxStudents
	if maxStudents <= 0 {
		maxStudents = 20
	}

	batch := models.Batch{
		SportID:     req.SportID,
		LocationID:  req.LocationID,
		Name:        req.Name,
		Description: req.Description,
		Schedule:    models.JSON(req.Schedule),
		AgeGroup:    req.AgeGroup,
		MaxStudents: maxStudents,
		Status:      "active",
	}
	if err := database.DB.Create(&batch).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create batch",
		})
	}

	database.DB.Preload("Sport").Preload("Location").First(&batch, batch.ID)

	middleware.LogActivity(c, "CREATE", "batches", batch.ID, fiber.Map{
		"name":     batch.Name,
		"sport_id": batch.SportID,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Batch created successfully",
		"batch":   batch,
	})
}

// UpdateBatch updates an existing batch (admin only)
func (bc *BatchController) UpdateBatch(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid batch ID",
		})
	}

	var batch models.Batch
	if err := database.DB.First(&batch, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Batch not found",
		})
	}

	var req BatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.AgeGroup != "" {
		updates["age_group"] = req.AgeGroup
	}
	if req.MaxStudents > 0 {
		updates["max_students"] = req.MaxStudents
	}
	if req.Status != "" {
		switch req.Status {
		case "active", "inactive", "full", "completed":
			updates["status"] = req.Status
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid batch status",
			})
		}
	}
	if len(req.Schedule) > 0 {
		if _, err := utils.ValidateSchedule(req.Schedule); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		updates["schedule"] = models.JSON(req.Schedule)
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&batch).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to update batch",
			})
		}
	}

	database.DB.Preload("Sport").Preload("Location").First(&batch, batch.ID)

	middleware.LogActivity(c, "UPDATE", "batches", batch.ID, updates)

	return c.JSON(fiber.Map{
		"message": "Batch updated successfully",
		"batch":   batch,
	})
}

// DeleteBatch soft deletes a batch (admin only)
func (bc *BatchController) DeleteBatch(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid batch ID",
		})
	}

	var batch models.Batch
	if err := database.DB.First(&batch, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Batch not found",
		})
	}

	var activeEnrollments int64
	database.DB.Model(&models.Enrollment{}).
		Where("batch_id = ? AND enrollment_status = ?", batch.ID, "active").
		Count(&activeEnrollments)
	if activeEnrollments > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Batch still has active enrollments",
		})
	}

	if err := database.DB.Delete(&batch).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete batch",
		})
	}

	middleware.LogActivity(c, "DELETE", "batches", batch.ID, fiber.Map{
		"name": batch.Name,
	})

	return c.JSON(fiber.Map{
		"message": "Batch deleted successfully",
	})
}

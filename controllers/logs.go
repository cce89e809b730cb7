package controllers

import (
	"coachpoint_go/database"
	"coachpoint_go/models"
	"coachpoint_go/services"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type LogController struct{}

// GetActivityLogs returns activity logs with pagination (admin only)
func (lc *LogController) GetActivityLogs(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset := (page - 1) * limit

	query := database.DB.Model(&models.ActivityLog{})
	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if resource := c.Query("resource"); resource != "" {
		query = query.Where("resource = ?", resource)
	}
	if action := c.Query("action"); action != "" {
		query = query.Where("action = ?", action)
	}

	var total int64
	query.Count(&total)

	var logs []models.ActivityLog
	if err := query.Preload("User").
		Order("id DESC").Offset(offset).Limit(limit).
		Find(&logs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch activity logs",
		})
	}

	return c.JSON(fiber.Map{
		"logs": logs,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// GetArchivedLogs returns the list of S3 log archives (admin only)
func (lc *LogController) GetArchivedLogs(c *fiber.Ctx) error {
	archives, err := services.NewLogArchiveService().GetArchivedLogs()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch archives",
		})
	}

	return c.JSON(fiber.Map{
		"archives": archives,
		"total":    len(archives),
	})
}

// DownloadArchivedLogs streams one archive from S3 (admin only)
func (lc *LogController) DownloadArchivedLogs(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid archive ID",
		})
	}

	reader, filename, err := services.NewLogArchiveService().DownloadArchivedLogs(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set("Content-Type", "application/zip")
	c.Set("Content-Disposition", "attachment; filename=\""+filename+"\"")
	return c.SendStream(reader)
}

package controllers

import (
	"coachpoint_go/database"
	"coachpoint_go/middleware"
	"coachpoint_go/models"
	"coachpoint_go/utils"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

type NotificationController struct{}

// GetNotifications returns the current user's notifications, newest first
func (nc *NotificationController) GetNotifications(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset := (page - 1) * limit

	query := database.DB.Model(&models.Notification{}).Where("user_id = ?", claims.UserID)
	if c.Query("unread") == "true" {
		query = query.Where("`read` = ?", false)
	}

	var total int64
	query.Count(&total)

	var notifs []models.Notification
	if err := query.Preload("User").
		Order("id DESC").Offset(offset).Limit(limit).
		Find(&notifs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch notifications",
		})
	}

	return c.JSON(fiber.Map{
		"notifications": utils.ToNotificationDTOs(notifs),
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// MarkNotificationRead marks one of the current user's notifications as read
func (nc *NotificationController) MarkNotificationRead(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid notification ID",
		})
	}

	var notif models.Notification
	if err := database.DB.Where("id = ? AND user_id = ?", uint(id), claims.UserID).
		First(&notif).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Notification not found",
		})
	}

	now := time.Now()
	if err := database.DB.Model(&notif).Updates(map[string]interface{}{
		"read":    true,
		"read_at": now,
	}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update notification",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Notification marked as read",
	})
}

// MarkAllNotificationsRead marks every unread notification for the user
func (nc *NotificationController) MarkAllNotificationsRead(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	now := time.Now()
	result := database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND `read` = ?", claims.UserID, false).
		Updates(map[string]interface{}{
			"read":    true,
			"read_at": now,
		})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update notifications",
		})
	}

	return c.JSON(fiber.Map{
		"message": "All notifications marked as read",
		"updated": result.RowsAffected,
	})
}

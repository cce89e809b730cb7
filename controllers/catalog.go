package controllers

import (
	"coachpoint_go/database"
	"coachpoint_go/middleware"
	"coachpoint_go/models"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type CatalogController struct{}

// GetSports returns all active sports
func (cc *CatalogController) GetSports(c *fiber.Ctx) error {
	var sports []models.Sport
	query := database.DB.Order("name")
	if c.Query("include_inactive") != "true" {
		query = query.Where("active = ?", true)
	}
	if err := query.Find(&sports).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch sports",
		})
	}

	return c.JSON(fiber.Map{
		"sports": sports,
		"total":  len(sports),
	})
}

// CreateSport creates a new sport (admin only)
func (cc *CatalogController) CreateSport(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name" validate:"required"`
		Code        string `json:"code" validate:"required"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Name == "" || req.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "name and code are required",
		})
	}

	var existing models.Sport
	if err := database.DB.Where("name = ? OR code = ?", req.Name, req.Code).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Sport already exists",
		})
	}

	sport := models.Sport{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		Active:      true,
	}
	if err := database.DB.Create(&sport).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create sport",
		})
	}

	middleware.LogActivity(c, "CREATE", "sports", sport.ID, fiber.Map{
		"name": sport.Name,
		"code": sport.Code,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Sport created successfully",
		"sport":   sport,
	})
}

// UpdateSport updates an existing sport (admin only)
func (cc *CatalogController) UpdateSport(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid sport ID",
		})
	}

	var sport models.Sport
	if err := database.DB.First(&sport, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Sport not found",
		})
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Active      *bool  `json:"active"`
	}
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
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&sport).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to update sport",
			})
		}
	}

	middleware.LogActivity(c, "UPDATE", "sports", sport.ID, updates)

	return c.JSON(fiber.Map{
		"message": "Sport updated successfully",
		"sport":   sport,
	})
}

// GetLocations returns all active locations
func (cc *CatalogController) GetLocations(c *fiber.Ctx) error {
	var locations []models.Location
	query := database.DB.Order("name")
	if c.Query("include_inactive") != "true" {
		query = query.Where("active = ?", true)
	}
	if err := query.Find(&locations).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch locations",
		})
	}

	return c.JSON(fiber.Map{
		"locations": locations,
		"total":     len(locations),
	})
}

// CreateLocation creates a new training location (admin only)
func (cc *CatalogController) CreateLocation(c *fiber.Ctx) error {
	var req struct {
		Name    string `json:"name" validate:"required"`
		Code    string `json:"code" validate:"required"`
		Address string `json:"address"`
		City    string `json:"city"`
		Phone   string `json:"phone"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Name == "" || req.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "name and code are required",
		})
	}

	var existing models.Location
	if err := database.DB.Where("code = ?", req.Code).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Location code already exists",
		})
	}

	location := models.Location{
		Name:    req.Name,
		Code:    req.Code,
		Address: req.Address,
		City:    req.City,
		Phone:   req.Phone,
		Active:  true,
	}
	if err := database.DB.Create(&location).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create location",
		})
	}

	middleware.LogActivity(c, "CREATE", "locations", location.ID, fiber.Map{
		"name": location.Name,
		"code": location.Code,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Location created successfully",
		"location": location,
	})
}

// UpdateLocation updates an existing location (admin only)
func (cc *CatalogController) UpdateLocation(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid location ID",
		})
	}

	var location models.Location
	if err := database.DB.First(&location, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Location not found",
		})
	}

	var req struct {
		Name    string `json:"name"`
		Address string `json:"address"`
		City    string `json:"city"`
		Phone   string `json:"phone"`
		Active  *bool  `json:"active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Address != "" {
		updates["address"] = req.Address
	}
	if req.City != "" {
		updates["city"] = req.City
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&location).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to update location",
			})
		}
	}

	middleware.LogActivity(c, "UPDATE", "locations", location.ID, updates)

	return c.JSON(fiber.Map{
		"message":  "Location updated successfully",
		"location": location,
	})
}

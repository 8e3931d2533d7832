package consumer

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/swiftmeet/swiftmeet-api/db"
	"github.com/swiftmeet/swiftmeet-api/models"
	"github.com/swiftmeet/swiftmeet-api/utils"
)

// GetAllServices returns the service catalog
func GetAllServices(c *fiber.Ctx) error {
	var services []models.Service

	// Get pagination parameters
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	// Calculate offset
	offset := (page - 1) * limit

	if err := db.DB.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&services).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch services",
		})
	}

	// Count total records for pagination
	var count int64
	db.DB.Model(&models.Service{}).Count(&count)

	return c.JSON(fiber.Map{
		"services": services,
		"total":    count,
		"page":     page,
		"limit":    limit,
		"pages":    (int(count) + limit - 1) / limit,
	})
}

// GetService returns details for a specific service
func GetService(c *fiber.Ctx) error {
	id := c.Params("id")

	var service models.Service
	if err := db.DB.Preload("Admin").First(&service, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}

	// Remove sensitive information
	service.Admin.Password = ""

	return c.JSON(service)
}

// GetServiceSlots returns upcoming open slots for a service, soonest first
func GetServiceSlots(c *fiber.Ctx) error {
	id := c.Params("id")

	var service models.Service
	if err := db.DB.First(&service, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}

	var slots []models.Slot
	if err := db.DB.
		Where("service_id = ? AND booked = ? AND starts_at > ?", service.ID, false, time.Now()).
		Order("starts_at ASC").
		Find(&slots).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch slots",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"service": service.Name,
		"slots":   slots,
		"count":   len(slots),
	})
}

// GetServiceMap returns the location payload the frontend embeds in an iframe
func GetServiceMap(c *fiber.Ctx) error {
	id := c.Params("id")

	var service models.Service
	if err := db.DB.First(&service, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}

	if service.Address == "" && (service.Lat == nil || service.Lng == nil) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service has no location on record",
		})
	}

	return c.JSON(fiber.Map{
		"name":      service.Name,
		"address":   service.Address,
		"lat":       service.Lat,
		"lng":       service.Lng,
		"embed_url": utils.MapsEmbedURL(service.Address, service.Lat, service.Lng),
	})
}

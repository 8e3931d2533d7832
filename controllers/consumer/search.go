package consumer

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/swiftmeet/swiftmeet-api/db"
	"github.com/swiftmeet/swiftmeet-api/models"
)

// SearchSlots finds upcoming open slots whose service type matches the query
func SearchSlots(c *fiber.Ctx) error {
	serviceType := strings.TrimSpace(c.Query("service_type"))
	if serviceType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "service_type query parameter is required",
		})
	}

	searchQuery := fmt.Sprintf("%%%s%%", strings.ToLower(serviceType))

	var slots []models.Slot
	if err := db.DB.Preload("Service").
		Joins("JOIN services ON services.id = slots.service_id").
		Where("LOWER(services.type) LIKE ? AND slots.booked = ? AND slots.starts_at > ?",
			searchQuery, false, time.Now()).
		Order("slots.starts_at ASC").
		Find(&slots).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to search slots",
		})
	}

	return c.JSON(fiber.Map{
		"slots": slots,
		"count": len(slots),
	})
}

package admin

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/swiftmeet/swiftmeet-api/db"
	"github.com/swiftmeet/swiftmeet-api/models"
	"github.com/swiftmeet/swiftmeet-api/utils"
)

type ServiceInput struct {
	Name            string   `json:"name" validate:"required"`
	Type            string   `json:"type" validate:"required"`
	Specialty       string   `json:"specialty"`
	Description     string   `json:"description"`
	Address         string   `json:"address" validate:"required"`
	Lat             *float64 `json:"lat"`
	Lng             *float64 `json:"lng"`
	DurationMinutes uint     `json:"duration_minutes"`
}

// GetMyServices returns the services owned by the current admin
func GetMyServices(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var services []models.Service
	if err := db.DB.
		Where("admin_id = ?", userID).
		Order("created_at DESC").
		Find(&services).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch services",
		})
	}

	return c.JSON(fiber.Map{
		"services": services,
		"count":    len(services),
	})
}

// CreateService registers a new service under the current admin
func CreateService(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	input := new(ServiceInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if err := utils.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": utils.ValidationMessage(err),
		})
	}

	service := models.Service{
		AdminID:     userID,
		Name:        strings.TrimSpace(input.Name),
		Type:        strings.TrimSpace(input.Type),
		Specialty:   strings.TrimSpace(input.Specialty),
		Description: strings.TrimSpace(input.Description),
		Address:     strings.TrimSpace(input.Address),
		Lat:         input.Lat,
		Lng:         input.Lng,
	}
	if input.DurationMinutes > 0 {
		service.DurationMinutes = input.DurationMinutes
	}

	if err := db.DB.Create(&service).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create service",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"service": service,
	})
}

// UpdateService updates fields of a service owned by the current admin
func UpdateService(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var service models.Service
	if err := db.DB.
		Where("id = ? AND admin_id = ?", c.Params("id"), userID).
		First(&service).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}

	updateData := make(map[string]interface{})
	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	// Ownership and identity are not editable
	fieldsToIgnore := []string{"id", "ID", "admin_id", "AdminID", "admin", "Admin", "created_at", "updated_at"}
	for _, field := range fieldsToIgnore {
		delete(updateData, field)
	}

	if len(updateData) > 0 {
		if err := db.DB.Model(&service).Updates(updateData).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to update service",
				Error:   err.Error(),
			})
		}
	}

	if err := db.DB.First(&service, service.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve updated service",
		})
	}

	return c.JSON(fiber.Map{
		"service": service,
	})
}

// DeleteService removes a service and everything hanging off it
func DeleteService(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var service models.Service
	if err := db.DB.
		Where("id = ? AND admin_id = ?", c.Params("id"), userID).
		First(&service).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		return cascadeDeleteService(tx, service.ID)
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete service",
			Error:   err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteAllServices removes every service owned by the current admin
func DeleteAllServices(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var services []models.Service
	if err := db.DB.Where("admin_id = ?", userID).Find(&services).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch services",
		})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		for _, service := range services {
			if err := cascadeDeleteService(tx, service.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete services",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"deleted": len(services),
	})
}

// cascadeDeleteService removes a service's bookings, then its slots, then the
// service itself.
func cascadeDeleteService(tx *gorm.DB, serviceID uint) error {
	slotIDs := tx.Model(&models.Slot{}).Select("id").Where("service_id = ?", serviceID)
	if err := tx.Where("slot_id IN (?)", slotIDs).Delete(&models.Booking{}).Error; err != nil {
		return err
	}
	if err := tx.Where("service_id = ?", serviceID).Delete(&models.Slot{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Service{}, serviceID).Error
}

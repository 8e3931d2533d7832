package admin

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/swiftmeet/swiftmeet-api/db"
	"github.com/swiftmeet/swiftmeet-api/models"
	"github.com/swiftmeet/swiftmeet-api/utils"
)

// GetServiceSlots returns every slot of one of the admin's services, along
// with whatever bookings sit on each slot
func GetServiceSlots(c *fiber.Ctx) error {
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

	var slots []models.Slot
	if err := db.DB.Preload("Bookings.User").
		Where("service_id = ?", service.ID).
		Order("starts_at ASC").
		Find(&slots).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch slots",
			Error:   err.Error(),
		})
	}

	// Don't leak password hashes through the booking's user
	for i := range slots {
		for j := range slots[i].Bookings {
			slots[i].Bookings[j].User.Password = ""
		}
	}

	return c.JSON(fiber.Map{
		"service": service.Name,
		"slots":   slots,
		"count":   len(slots),
	})
}

// CreateSlot opens a new bookable slot on one of the admin's services
func CreateSlot(c *fiber.Ctx) error {
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

	type SlotInput struct {
		StartsAt time.Time  `json:"starts_at" validate:"required"`
		EndsAt   *time.Time `json:"ends_at"`
	}

	input := new(SlotInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid time format",
		})
	}

	if err := utils.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": utils.ValidationMessage(err),
		})
	}

	if !input.StartsAt.After(time.Now()) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot add a slot in the past",
		})
	}

	endsAt := input.StartsAt.Add(time.Duration(service.DurationMinutes) * time.Minute)
	if input.EndsAt != nil {
		endsAt = *input.EndsAt
	}
	if !endsAt.After(input.StartsAt) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "ends_at must be after starts_at",
		})
	}

	slot := models.Slot{
		ServiceID: service.ID,
		StartsAt:  input.StartsAt,
		EndsAt:    endsAt,
		Booked:    false,
	}

	if err := db.DB.Create(&slot).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create slot",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"slot": slot,
	})
}

// DeleteSlot removes a slot and any bookings on it
func DeleteSlot(c *fiber.Ctx) error {
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

	var slot models.Slot
	if err := db.DB.
		Where("id = ? AND service_id = ?", c.Params("slotId"), service.ID).
		First(&slot).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Slot not found",
		})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("slot_id = ?", slot.ID).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		return tx.Delete(&slot).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete slot",
			Error:   err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

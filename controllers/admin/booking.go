package admin

import (
	"github.com/gofiber/fiber/v2"

	"github.com/swiftmeet/swiftmeet-api/db"
	"github.com/swiftmeet/swiftmeet-api/models"
	"github.com/swiftmeet/swiftmeet-api/utils"
)

// GetBookings returns every live booking on the admin's services, soonest
// slot first
func GetBookings(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var bookings []models.Booking
	if err := db.DB.Preload("User").Preload("Slot.Service").
		Joins("JOIN slots ON slots.id = bookings.slot_id").
		Joins("JOIN services ON services.id = slots.service_id").
		Where("services.admin_id = ?", userID).
		Where("bookings.status <> ?", models.StatusCancelled).
		Order("slots.starts_at ASC").
		Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch bookings",
			Error:   err.Error(),
		})
	}

	// Don't leak password hashes
	for i := range bookings {
		bookings[i].User.Password = ""
	}

	return c.JSON(fiber.Map{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

// MarkArrived lets an admin record a visitor's arrival at the desk
func MarkArrived(c *fiber.Ctx) error {
	var booking models.Booking
	if err := db.DB.Preload("Slot.Service").
		First(&booking, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Booking not found",
		})
	}

	if err := booking.UpdateStatus(db.DB, models.StatusArrived); err != nil {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Booking can no longer be updated",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"booking": booking,
	})
}

package admin

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/swiftmeet/swiftmeet-api/db"
	"github.com/swiftmeet/swiftmeet-api/models"
)

// GetDashboardMetrics returns the admin dashboard counters
func GetDashboardMetrics(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var statistics struct {
		TotalServices  int64     `json:"total_services"`
		AvailableSlots int64     `json:"available_slots"`
		BookedToday    int64     `json:"booked_today"`
		PendingActions int64     `json:"pending_actions"`
		LastUpdated    time.Time `json:"last_updated"`
	}

	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	db.DB.Model(&models.Service{}).
		Where("admin_id = ?", userID).
		Count(&statistics.TotalServices)

	db.DB.Model(&models.Slot{}).
		Joins("JOIN services ON services.id = slots.service_id").
		Where("services.admin_id = ?", userID).
		Where("slots.booked = ?", false).
		Count(&statistics.AvailableSlots)

	db.DB.Model(&models.Booking{}).
		Joins("JOIN slots ON slots.id = bookings.slot_id").
		Joins("JOIN services ON services.id = slots.service_id").
		Where("services.admin_id = ?", userID).
		Where("bookings.status <> ?", models.StatusCancelled).
		Where("bookings.created_at >= ?", todayStart).
		Count(&statistics.BookedToday)

	// Bookings from before today that never arrived and were never resolved.
	db.DB.Model(&models.Booking{}).
		Joins("JOIN slots ON slots.id = bookings.slot_id").
		Joins("JOIN services ON services.id = slots.service_id").
		Where("services.admin_id = ?", userID).
		Where("bookings.status = ?", models.StatusBooked).
		Where("bookings.arrived = ?", false).
		Where("slots.starts_at < ?", todayStart).
		Count(&statistics.PendingActions)

	statistics.LastUpdated = now

	return c.JSON(statistics)
}

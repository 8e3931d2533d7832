package consumer

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/swiftmeet/swiftmeet-api/db"
	"github.com/swiftmeet/swiftmeet-api/models"
	"github.com/swiftmeet/swiftmeet-api/utils"
)

// CreateBooking books an open slot for the current user
func CreateBooking(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	type BookingInput struct {
		SlotID uint `json:"slot_id"`
	}

	input := new(BookingInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if input.SlotID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "slot_id is required",
		})
	}

	var slot models.Slot
	if err := db.DB.Preload("Service").First(&slot, input.SlotID).Error; err != nil || slot.Booked {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Slot not available",
		})
	}

	booking := models.Booking{
		UserID:    userID,
		SlotID:    slot.ID,
		Reference: uuid.NewString(),
		Status:    models.StatusBooked,
	}

	// The claim only goes through while the slot is still open, so two
	// requests racing for the same slot cannot both book it.
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := utils.ClaimSlot(tx, slot.ID); err != nil {
			return err
		}
		return tx.Create(&booking).Error
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Slot not available",
		})
	}

	slot.Booked = true
	booking.Slot = slot

	// Confirmation email is best effort; the booking stands either way.
	var user models.User
	if err := db.DB.First(&user, userID).Error; err == nil {
		if err := sendBookingConfirmation(&user, &booking); err != nil {
			log.Printf("Failed to send booking confirmation: %v", err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"booking": booking,
	})
}

// GetMyBookings returns all bookings for the current user.
//
// Before listing, overdue bookings are swept: a missed booking is marked
// no_show, and a first-time miss is rebooked onto the next open slot of the
// same service. A booking that was already auto-rescheduled once is never
// rescheduled again.
func GetMyBookings(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	if _, err := utils.ProcessMissedBookings(db.DB, userID, time.Now()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to process missed bookings",
			Error:   err.Error(),
		})
	}

	var bookings []models.Booking
	if err := db.DB.Preload("Slot.Service").
		Joins("JOIN slots ON slots.id = bookings.slot_id").
		Where("bookings.user_id = ?", userID).
		Order("slots.starts_at DESC").
		Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch bookings",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

// GetBooking returns one of the current user's bookings
func GetBooking(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var booking models.Booking
	if err := db.DB.Preload("Slot.Service").
		Where("id = ? AND user_id = ?", c.Params("id"), userID).
		First(&booking).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Booking not found",
		})
	}

	return c.JSON(booking)
}

// MarkArrived records that the user showed up for their booking
func MarkArrived(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var booking models.Booking
	if err := db.DB.Preload("Slot.Service").
		Where("id = ? AND user_id = ?", c.Params("id"), userID).
		First(&booking).Error; err != nil {
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

// FindNextSlot is the manual "find next slot" action: the booking is given up
// as a no-show and the earliest open slot of the same service is booked
// instead.
func FindNextSlot(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var booking models.Booking
	if err := db.DB.Preload("Slot").
		Where("id = ? AND user_id = ?", c.Params("id"), userID).
		First(&booking).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Booking not found",
		})
	}

	if booking.Status != models.StatusBooked {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Booking can no longer be rescheduled",
		})
	}

	newBooking, err := utils.FindAndBookNextSlot(db.DB, userID, booking.Slot.ServiceID, &booking, false, time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to rebook slot",
			Error:   err.Error(),
		})
	}
	if newBooking == nil {
		return c.JSON(fiber.Map{
			"message": "No next available slots",
		})
	}

	return c.JSON(fiber.Map{
		"new_booking": newBooking,
	})
}

// CancelBooking cancels an active booking. A slot that has not started yet is
// reopened for others; a past slot stays closed.
func CancelBooking(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var booking models.Booking
	if err := db.DB.Preload("Slot").
		Where("id = ? AND user_id = ?", c.Params("id"), userID).
		First(&booking).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Booking not found",
		})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := booking.UpdateStatus(tx, models.StatusCancelled); err != nil {
			return err
		}
		if booking.Slot.StartsAt.After(time.Now()) {
			booking.Slot.Booked = false
			return tx.Save(&booking.Slot).Error
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Only active bookings can be cancelled",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Booking cancelled",
		"booking": booking,
	})
}

// DownloadConfirmation streams the booking confirmation as a PDF attachment
func DownloadConfirmation(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var booking models.Booking
	if err := db.DB.Preload("User").Preload("Slot.Service").
		Where("id = ? AND user_id = ?", c.Params("id"), userID).
		First(&booking).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Booking not found",
		})
	}

	pdfBytes, err := utils.BuildConfirmationPDF(&booking)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to generate confirmation PDF",
			Error:   err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="swiftmeet-%s.pdf"`, booking.Reference))
	return c.Send(pdfBytes)
}

func sendBookingConfirmation(user *models.User, booking *models.Booking) error {
	emailBody := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your booking has been confirmed.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Reference:</strong> %s</li>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Address:</strong> %s</li>
			<li><strong>Start Time:</strong> %s</li>
			<li><strong>End Time:</strong> %s</li>
		</ul>
		<p>Please arrive within 15 minutes of your start time, or the booking
		will be treated as a no-show.</p>
		<p>Best regards,</p>
		<p>The SwiftMeet Team</p>
	`, user.Name, booking.Reference, booking.Slot.Service.Name, booking.Slot.Service.Address,
		booking.Slot.StartsAt.Format("2006-01-02 15:04:05"), booking.Slot.EndsAt.Format("2006-01-02 15:04:05"))

	return utils.SendEmail(user.Email, "Booking Confirmation", emailBody)
}

package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/swiftmeet/swiftmeet-api/controllers/consumer"
	"github.com/swiftmeet/swiftmeet-api/middleware"
)

// SetupBookingRoutes configures the booking routes for signed-in users
func SetupBookingRoutes(app *fiber.App) {
	bookings := app.Group("/bookings", middleware.Protected())

	bookings.Post("/", consumer.CreateBooking)
	bookings.Get("/", consumer.GetMyBookings)
	bookings.Get("/:id", consumer.GetBooking)
	bookings.Get("/:id/confirmation", consumer.DownloadConfirmation)
	bookings.Post("/:id/arrived", consumer.MarkArrived)
	bookings.Post("/:id/find-next-slot", consumer.FindNextSlot)
	bookings.Post("/:id/cancel", consumer.CancelBooking)
}

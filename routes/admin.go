package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/swiftmeet/swiftmeet-api/controllers/admin"
	"github.com/swiftmeet/swiftmeet-api/middleware"
)

// SetupAdminRoutes configures the admin management routes
func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.Protected(), middleware.RequireAdmin())

	adminGroup.Get("/services", admin.GetMyServices)
	adminGroup.Post("/services", admin.CreateService)
	adminGroup.Delete("/services", admin.DeleteAllServices)
	adminGroup.Patch("/services/:id", admin.UpdateService)
	adminGroup.Delete("/services/:id", admin.DeleteService)

	adminGroup.Get("/services/:id/slots", admin.GetServiceSlots)
	adminGroup.Post("/services/:id/slots", admin.CreateSlot)
	adminGroup.Delete("/services/:id/slots/:slotId", admin.DeleteSlot)

	adminGroup.Get("/bookings", admin.GetBookings)
	adminGroup.Post("/bookings/:id/arrived", admin.MarkArrived)

	adminGroup.Get("/dashboard-metrics", admin.GetDashboardMetrics)
}

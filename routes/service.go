package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/swiftmeet/swiftmeet-api/controllers/consumer"
	"github.com/swiftmeet/swiftmeet-api/middleware"
)

// SetupServiceRoutes configures the public service catalog routes
func SetupServiceRoutes(app *fiber.App) {
	services := app.Group("/services")
	services.Get("/", consumer.GetAllServices)
	services.Get("/:id", consumer.GetService)
	services.Get("/:id/slots", consumer.GetServiceSlots)
	services.Get("/:id/map", consumer.GetServiceMap)

	// Slot search requires a signed-in user
	app.Get("/slots/search", middleware.Protected(), consumer.SearchSlots)
}

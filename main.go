package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/swiftmeet/swiftmeet-api/cron"
	"github.com/swiftmeet/swiftmeet-api/db"
	"github.com/swiftmeet/swiftmeet-api/redis"
	"github.com/swiftmeet/swiftmeet-api/routes"
)

func main() {
	app := fiber.New()
	db.Init()
	db.Migrate()
	redis.InitRedis()

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/health", healthCheck)

	routes.SetupAuthRoutes(app)
	routes.SetupServiceRoutes(app)
	routes.SetupBookingRoutes(app)
	routes.SetupAdminRoutes(app)

	// Serve the booking frontend when a build is present
	if _, err := os.Stat("./static"); err == nil {
		app.Static("/", "./static")
	}

	cron.StartCronJobs()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	fmt.Println("Server starting on port " + port)
	log.Fatal(app.Listen(":" + port))
}

func healthCheck(c *fiber.Ctx) error {
	status := fiber.Map{
		"status":   "ok",
		"database": "up",
		"redis":    "up",
	}

	sqlDB, err := db.DB.DB()
	if err != nil || sqlDB.Ping() != nil {
		status["status"] = "degraded"
		status["database"] = "down"
	}

	if redis.Client == nil {
		status["redis"] = "disabled"
	} else if redis.Ping() != nil {
		status["status"] = "degraded"
		status["redis"] = "down"
	}

	return c.JSON(status)
}

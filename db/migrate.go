package db

import (
	"fmt"
	"log"

	"github.com/swiftmeet/swiftmeet-api/models"
)

// Migrate runs AutoMigrate for every SwiftMeet model. Init must have been
// called before.
func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Slot{},
		&models.Booking{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}

// Package testutil wires an in-memory database and a fully-routed fiber app
// for handler and model tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/swiftmeet/swiftmeet-api/db"
	"github.com/swiftmeet/swiftmeet-api/middleware"
	"github.com/swiftmeet/swiftmeet-api/models"
	"github.com/swiftmeet/swiftmeet-api/routes"
)

// SetupTestDB opens a fresh in-memory database, migrates the schema and swaps
// it in as the package-global connection until the test ends.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, database.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Slot{},
		&models.Booking{},
	))

	prev := db.DB
	db.DB = database
	t.Cleanup(func() {
		db.DB = prev
		if sqlDB, err := database.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return database
}

// NewTestApp builds a fiber app with every route mounted.
func NewTestApp() *fiber.App {
	app := fiber.New()
	routes.SetupAuthRoutes(app)
	routes.SetupServiceRoutes(app)
	routes.SetupBookingRoutes(app)
	routes.SetupAdminRoutes(app)
	return app
}

// CreateUser inserts a user whose password is "password123".
func CreateUser(t *testing.T, database *gorm.DB, name, email, role string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Phone:    "5550100",
		Place:    "Springfield",
		Role:     models.NormalizeRole(role),
	}
	require.NoError(t, database.Create(&user).Error)
	return user
}

// TokenFor mints a signed access token for the user.
func TokenFor(t *testing.T, user models.User) string {
	t.Helper()

	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(middleware.JWTSecret())
	require.NoError(t, err)
	return token
}

// CreateService inserts a service owned by adminID.
func CreateService(t *testing.T, database *gorm.DB, adminID uint, name, serviceType string) models.Service {
	t.Helper()

	service := models.Service{
		AdminID: adminID,
		Name:    name,
		Type:    serviceType,
		Address: "12 Main Street",
	}
	require.NoError(t, database.Create(&service).Error)
	return service
}

// CreateSlot inserts a 30-minute slot starting at startsAt.
func CreateSlot(t *testing.T, database *gorm.DB, serviceID uint, startsAt time.Time, booked bool) models.Slot {
	t.Helper()

	slot := models.Slot{
		ServiceID: serviceID,
		StartsAt:  startsAt,
		EndsAt:    startsAt.Add(30 * time.Minute),
		Booked:    booked,
	}
	require.NoError(t, database.Create(&slot).Error)
	return slot
}

// CreateBooking inserts a booking in the given state.
func CreateBooking(t *testing.T, database *gorm.DB, userID, slotID uint, status models.BookingStatus, autoRescheduled bool) models.Booking {
	t.Helper()

	booking := models.Booking{
		UserID:          userID,
		SlotID:          slotID,
		Reference:       uuid.NewString(),
		Status:          status,
		AutoRescheduled: autoRescheduled,
	}
	if status == models.StatusArrived {
		booking.Arrived = true
	}
	require.NoError(t, database.Create(&booking).Error)
	return booking
}

// Request performs a JSON request against the app. token may be empty for
// public routes; body may be nil.
func Request(t *testing.T, app *fiber.App, method, target, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// DecodeJSON reads the response body into out.
func DecodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

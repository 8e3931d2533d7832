package models_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/swiftmeet/swiftmeet-api/models"
)

func openTestDB(t *testing.T) *gorm.DB {
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
	return database
}

func seedBooking(t *testing.T, database *gorm.DB, status models.BookingStatus) models.Booking {
	t.Helper()

	booking := models.Booking{
		UserID:    1,
		SlotID:    1,
		Reference: uuid.NewString(),
		Status:    status,
	}
	require.NoError(t, database.Create(&booking).Error)
	return booking
}

func TestBookingDefaultsToBooked(t *testing.T) {
	database := openTestDB(t)

	booking := models.Booking{UserID: 1, SlotID: 1, Reference: uuid.NewString()}
	require.NoError(t, database.Create(&booking).Error)

	assert.Equal(t, models.StatusBooked, booking.Status)
}

func TestUpdateStatusFromBooked(t *testing.T) {
	database := openTestDB(t)

	for _, target := range []models.BookingStatus{
		models.StatusArrived,
		models.StatusNoShow,
		models.StatusCancelled,
	} {
		booking := seedBooking(t, database, models.StatusBooked)
		require.NoError(t, booking.UpdateStatus(database, target))

		var reloaded models.Booking
		require.NoError(t, database.First(&reloaded, booking.ID).Error)
		assert.Equal(t, target, reloaded.Status)
		assert.Equal(t, target == models.StatusArrived, reloaded.Arrived)
	}
}

func TestUpdateStatusTerminalStates(t *testing.T) {
	database := openTestDB(t)

	for _, from := range []models.BookingStatus{
		models.StatusArrived,
		models.StatusNoShow,
		models.StatusCancelled,
	} {
		booking := seedBooking(t, database, from)
		err := booking.UpdateStatus(database, models.StatusBooked)
		assert.Error(t, err)

		var reloaded models.Booking
		require.NoError(t, database.First(&reloaded, booking.ID).Error)
		assert.Equal(t, from, reloaded.Status)
	}
}

func TestUpdateStatusRejectsBookedTarget(t *testing.T) {
	database := openTestDB(t)

	booking := seedBooking(t, database, models.StatusBooked)
	assert.Error(t, booking.UpdateStatus(database, models.StatusBooked))
}

func TestOneLiveBookingPerSlot(t *testing.T) {
	database := openTestDB(t)

	first := seedBooking(t, database, models.StatusBooked)

	// A second live booking on the same slot is refused by the schema.
	dup := models.Booking{
		UserID:    2,
		SlotID:    first.SlotID,
		Reference: uuid.NewString(),
		Status:    models.StatusBooked,
	}
	assert.Error(t, database.Create(&dup).Error)

	// Once the first booking is cancelled the slot can be booked again.
	require.NoError(t, first.UpdateStatus(database, models.StatusCancelled))
	rebook := models.Booking{
		UserID:    2,
		SlotID:    first.SlotID,
		Reference: uuid.NewString(),
		Status:    models.StatusBooked,
	}
	assert.NoError(t, database.Create(&rebook).Error)
}

func TestNormalizeRole(t *testing.T) {
	assert.Equal(t, models.RoleUser, models.NormalizeRole(""))
	assert.Equal(t, models.RoleUser, models.NormalizeRole("user"))
	assert.Equal(t, models.RoleAdmin, models.NormalizeRole("admin"))
	assert.Equal(t, models.RoleUser, models.NormalizeRole("Admin"))
	assert.Equal(t, models.RoleUser, models.NormalizeRole("superuser"))
}

func TestSlotTimes(t *testing.T) {
	database := openTestDB(t)

	start := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	slot := models.Slot{ServiceID: 1, StartsAt: start, EndsAt: start.Add(30 * time.Minute)}
	require.NoError(t, database.Create(&slot).Error)

	var reloaded models.Slot
	require.NoError(t, database.First(&reloaded, slot.ID).Error)
	assert.True(t, reloaded.EndsAt.After(reloaded.StartsAt))
	assert.False(t, reloaded.Booked)
}

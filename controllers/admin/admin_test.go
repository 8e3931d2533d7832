package admin_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/swiftmeet/swiftmeet-api/models"
	"github.com/swiftmeet/swiftmeet-api/testutil"
)

type adminEnv struct {
	database *gorm.DB
	admin    models.User
	token    string
}

func setupAdminEnv(t *testing.T) adminEnv {
	t.Helper()

	database := testutil.SetupTestDB(t)
	admin := testutil.CreateUser(t, database, "Admin", "admin@example.com", "admin")
	return adminEnv{
		database: database,
		admin:    admin,
		token:    testutil.TokenFor(t, admin),
	}
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	env := setupAdminEnv(t)
	app := testutil.NewTestApp()

	resp := testutil.Request(t, app, http.MethodGet, "/admin/services", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	user := testutil.CreateUser(t, env.database, "Visitor", "visitor@example.com", "user")
	resp = testutil.Request(t, app, http.MethodGet, "/admin/services", testutil.TokenFor(t, user), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = testutil.Request(t, app, http.MethodGet, "/admin/services", env.token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestCreateService(t *testing.T) {
	env := setupAdminEnv(t)
	app := testutil.NewTestApp()

	resp := testutil.Request(t, app, http.MethodPost, "/admin/services", env.token, map[string]any{
		"name":    "Dental Checkup",
		"type":    "dentist",
		"address": "12 Main Street",
		"lat":     51.5,
		"lng":     -0.12,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Service models.Service `json:"service"`
	}
	testutil.DecodeJSON(t, resp, &body)
	assert.Equal(t, env.admin.ID, body.Service.AdminID)
	assert.Equal(t, "Dental Checkup", body.Service.Name)

	// name, type and address are mandatory.
	resp = testutil.Request(t, app, http.MethodPost, "/admin/services", env.token, map[string]any{
		"type": "dentist",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestGetMyServicesOnlyOwn(t *testing.T) {
	env := setupAdminEnv(t)
	app := testutil.NewTestApp()

	other := testutil.CreateUser(t, env.database, "Other Admin", "other@example.com", "admin")
	testutil.CreateService(t, env.database, env.admin.ID, "Mine", "dentist")
	testutil.CreateService(t, env.database, other.ID, "Theirs", "optician")

	resp := testutil.Request(t, app, http.MethodGet, "/admin/services", env.token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Services []models.Service `json:"services"`
		Count    int              `json:"count"`
	}
	testutil.DecodeJSON(t, resp, &body)
	require.Equal(t, 1, body.Count)
	assert.Equal(t, "Mine", body.Services[0].Name)
}

func TestUpdateService(t *testing.T) {
	env := setupAdminEnv(t)
	app := testutil.NewTestApp()
	service := testutil.CreateService(t, env.database, env.admin.ID, "Dental Checkup", "dentist")

	resp := testutil.Request(t, app, http.MethodPatch, fmt.Sprintf("/admin/services/%d", service.ID), env.token, map[string]any{
		"name":     "Dental Exam",
		"admin_id": 9999,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var reloaded models.Service
	require.NoError(t, env.database.First(&reloaded, service.ID).Error)
	assert.Equal(t, "Dental Exam", reloaded.Name)
	// Ownership cannot be reassigned through the update payload.
	assert.Equal(t, env.admin.ID, reloaded.AdminID)
}

func TestCreateSlot(t *testing.T) {
	env := setupAdminEnv(t)
	app := testutil.NewTestApp()
	service := testutil.CreateService(t, env.database, env.admin.ID, "Dental Checkup", "dentist")

	starts := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	resp := testutil.Request(t, app, http.MethodPost, fmt.Sprintf("/admin/services/%d/slots", service.ID), env.token, map[string]any{
		"starts_at": starts.Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Slot models.Slot `json:"slot"`
	}
	testutil.DecodeJSON(t, resp, &body)

	// Without ends_at the service duration fills it in.
	assert.Equal(t, starts.Add(30*time.Minute).Unix(), body.Slot.EndsAt.Unix())
	assert.False(t, body.Slot.Booked)
}

func TestCreateSlotRejectsPast(t *testing.T) {
	env := setupAdminEnv(t)
	app := testutil.NewTestApp()
	service := testutil.CreateService(t, env.database, env.admin.ID, "Dental Checkup", "dentist")

	resp := testutil.Request(t, app, http.MethodPost, fmt.Sprintf("/admin/services/%d/slots", service.ID), env.token, map[string]any{
		"starts_at": time.Now().Add(-time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Error string `json:"error"`
	}
	testutil.DecodeJSON(t, resp, &body)
	assert.Equal(t, "Cannot add a slot in the past", body.Error)
}

func TestCreateSlotValidatesInput(t *testing.T) {
	env := setupAdminEnv(t)
	app := testutil.NewTestApp()
	service := testutil.CreateService(t, env.database, env.admin.ID, "Dental Checkup", "dentist")

	// Missing starts_at.
	resp := testutil.Request(t, app, http.MethodPost, fmt.Sprintf("/admin/services/%d/slots", service.ID), env.token, map[string]any{})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Error string `json:"error"`
	}
	testutil.DecodeJSON(t, resp, &body)
	assert.Equal(t, "starts_at is required", body.Error)

	// ends_at before starts_at.
	starts := time.Now().Add(2 * time.Hour)
	resp = testutil.Request(t, app, http.MethodPost, fmt.Sprintf("/admin/services/%d/slots", service.ID), env.token, map[string]any{
		"starts_at": starts.Format(time.RFC3339),
		"ends_at":   starts.Add(-time.Hour).Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Someone else's service.
	other := testutil.CreateUser(t, env.database, "Other Admin", "other@example.com", "admin")
	theirService := testutil.CreateService(t, env.database, other.ID, "Theirs", "optician")
	resp = testutil.Request(t, app, http.MethodPost, fmt.Sprintf("/admin/services/%d/slots", theirService.ID), env.token, map[string]any{
		"starts_at": starts.Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAdminListSlotsIncludesBookings(t *testing.T) {
	env := setupAdminEnv(t)
	app := testutil.NewTestApp()
	service := testutil.CreateService(t, env.database, env.admin.ID, "Dental Checkup", "dentist")
	user := testutil.CreateUser(t, env.database, "Visitor", "visitor@example.com", "user")

	slot := testutil.CreateSlot(t, env.database, service.ID, time.Now().Add(time.Hour), true)
	testutil.CreateBooking(t, env.database, user.ID, slot.ID, models.StatusBooked, false)

	resp := testutil.Request(t, app, http.MethodGet, fmt.Sprintf("/admin/services/%d/slots", service.ID), env.token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Slots []models.Slot `json:"slots"`
		Count int           `json:"count"`
	}
	testutil.DecodeJSON(t, resp, &body)
	require.Equal(t, 1, body.Count)
	require.Len(t, body.Slots[0].Bookings, 1)
	assert.Equal(t, user.ID, body.Slots[0].Bookings[0].UserID)
	assert.Empty(t, body.Slots[0].Bookings[0].User.Password)
}

func TestDeleteServiceCascades(t *testing.T) {
	env := setupAdminEnv(t)
	app := testutil.NewTestApp()
	service := testutil.CreateService(t, env.database, env.admin.ID, "Dental Checkup", "dentist")
	user := testutil.CreateUser(t, env.database, "Visitor", "visitor@example.com", "user")

	slot := testutil.CreateSlot(t, env.database, service.ID, time.Now().Add(time.Hour), true)
	testutil.CreateSlot(t, env.database, service.ID, time.Now().Add(2*time.Hour), false)
	testutil.CreateBooking(t, env.database, user.ID, slot.ID, models.StatusBooked, false)

	resp := testutil.Request(t, app, http.MethodDelete, fmt.Sprintf("/admin/services/%d", service.ID), env.token, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	var serviceCount, slotCount, bookingCount int64
	env.database.Model(&models.Service{}).Count(&serviceCount)
	env.database.Model(&models.Slot{}).Count(&slotCount)
	env.database.Model(&models.Booking{}).Count(&bookingCount)
	assert.Zero(t, serviceCount)
	assert.Zero(t, slotCount)
	assert.Zero(t, bookingCount)
}

func TestDeleteAllServicesLeavesOtherAdminsAlone(t *testing.T) {
	env := setupAdminEnv(t)
	app := testutil.NewTestApp()
	other := testutil.CreateUser(t, env.database, "Other Admin", "other@example.com", "admin")

	testutil.CreateService(t, env.database, env.admin.ID, "Mine 1", "dentist")
	mine := testutil.CreateService(t, env.database, env.admin.ID, "Mine 2", "dentist")
	theirs := testutil.CreateService(t, env.database, other.ID, "Theirs", "optician")
	testutil.CreateSlot(t, env.database, mine.ID, time.Now().Add(time.Hour), false)

	resp := testutil.Request(t, app, http.MethodDelete, "/admin/services", env.token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Deleted int `json:"deleted"`
	}
	testutil.DecodeJSON(t, resp, &body)
	assert.Equal(t, 2, body.Deleted)

	var remaining []models.Service
	require.NoError(t, env.database.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, theirs.ID, remaining[0].ID)

	var slotCount int64
	env.database.Model(&models.Slot{}).Count(&slotCount)
	assert.Zero(t, slotCount)
}

func TestDeleteSlotRemovesItsBooking(t *testing.T) {
	env := setupAdminEnv(t)
	app := testutil.NewTestApp()
	service := testutil.CreateService(t, env.database, env.admin.ID, "Dental Checkup", "dentist")
	user := testutil.CreateUser(t, env.database, "Visitor", "visitor@example.com", "user")

	slot := testutil.CreateSlot(t, env.database, service.ID, time.Now().Add(time.Hour), true)
	testutil.CreateBooking(t, env.database, user.ID, slot.ID, models.StatusBooked, false)

	resp := testutil.Request(t, app, http.MethodDelete, fmt.Sprintf("/admin/services/%d/slots/%d", service.ID, slot.ID), env.token, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	var slotCount, bookingCount int64
	env.database.Model(&models.Slot{}).Count(&slotCount)
	env.database.Model(&models.Booking{}).Count(&bookingCount)
	assert.Zero(t, slotCount)
	assert.Zero(t, bookingCount)
}

func TestAdminBookingsListsOwnServicesOnly(t *testing.T) {
	env := setupAdminEnv(t)
	app := testutil.NewTestApp()
	user := testutil.CreateUser(t, env.database, "Visitor", "visitor@example.com", "user")
	other := testutil.CreateUser(t, env.database, "Other Admin", "other@example.com", "admin")

	mine := testutil.CreateService(t, env.database, env.admin.ID, "Mine", "dentist")
	theirs := testutil.CreateService(t, env.database, other.ID, "Theirs", "optician")

	now := time.Now()
	lateSlot := testutil.CreateSlot(t, env.database, mine.ID, now.Add(3*time.Hour), true)
	earlySlot := testutil.CreateSlot(t, env.database, mine.ID, now.Add(time.Hour), true)
	cancelledSlot := testutil.CreateSlot(t, env.database, mine.ID, now.Add(4*time.Hour), false)
	otherSlot := testutil.CreateSlot(t, env.database, theirs.ID, now.Add(time.Hour), true)

	late := testutil.CreateBooking(t, env.database, user.ID, lateSlot.ID, models.StatusBooked, false)
	early := testutil.CreateBooking(t, env.database, user.ID, earlySlot.ID, models.StatusBooked, false)
	testutil.CreateBooking(t, env.database, user.ID, cancelledSlot.ID, models.StatusCancelled, false)
	testutil.CreateBooking(t, env.database, user.ID, otherSlot.ID, models.StatusBooked, false)

	resp := testutil.Request(t, app, http.MethodGet, "/admin/bookings", env.token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Bookings []struct {
			ID uint `json:"ID"`
		} `json:"bookings"`
		Count int `json:"count"`
	}
	testutil.DecodeJSON(t, resp, &body)
	require.Equal(t, 2, body.Count)

	// Soonest slot first, cancelled bookings hidden.
	assert.Equal(t, early.ID, body.Bookings[0].ID)
	assert.Equal(t, late.ID, body.Bookings[1].ID)
}

func TestAdminMarkArrived(t *testing.T) {
	env := setupAdminEnv(t)
	app := testutil.NewTestApp()
	service := testutil.CreateService(t, env.database, env.admin.ID, "Dental Checkup", "dentist")
	user := testutil.CreateUser(t, env.database, "Visitor", "visitor@example.com", "user")

	slot := testutil.CreateSlot(t, env.database, service.ID, time.Now().Add(-5*time.Minute), true)
	booking := testutil.CreateBooking(t, env.database, user.ID, slot.ID, models.StatusBooked, false)

	resp := testutil.Request(t, app, http.MethodPost, fmt.Sprintf("/admin/bookings/%d/arrived", booking.ID), env.token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var reloaded models.Booking
	require.NoError(t, env.database.First(&reloaded, booking.ID).Error)
	assert.Equal(t, models.StatusArrived, reloaded.Status)

	resp = testutil.Request(t, app, http.MethodPost, "/admin/bookings/9999/arrived", env.token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestDashboardMetrics(t *testing.T) {
	env := setupAdminEnv(t)
	app := testutil.NewTestApp()
	service := testutil.CreateService(t, env.database, env.admin.ID, "Dental Checkup", "dentist")
	user := testutil.CreateUser(t, env.database, "Visitor", "visitor@example.com", "user")

	now := time.Now()

	// Two open slots.
	testutil.CreateSlot(t, env.database, service.ID, now.Add(time.Hour), false)
	testutil.CreateSlot(t, env.database, service.ID, now.Add(2*time.Hour), false)

	// One booking made today.
	bookedSlot := testutil.CreateSlot(t, env.database, service.ID, now.Add(3*time.Hour), true)
	testutil.CreateBooking(t, env.database, user.ID, bookedSlot.ID, models.StatusBooked, false)

	// One stale booking from before today that never arrived.
	staleSlot := testutil.CreateSlot(t, env.database, service.ID, now.Add(-48*time.Hour), true)
	stale := testutil.CreateBooking(t, env.database, user.ID, staleSlot.ID, models.StatusBooked, false)
	require.NoError(t, env.database.Model(&stale).Update("created_at", now.Add(-48*time.Hour)).Error)

	resp := testutil.Request(t, app, http.MethodGet, "/admin/dashboard-metrics", env.token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		TotalServices  int64 `json:"total_services"`
		AvailableSlots int64 `json:"available_slots"`
		BookedToday    int64 `json:"booked_today"`
		PendingActions int64 `json:"pending_actions"`
	}
	testutil.DecodeJSON(t, resp, &body)
	assert.Equal(t, int64(1), body.TotalServices)
	assert.Equal(t, int64(2), body.AvailableSlots)
	assert.Equal(t, int64(1), body.BookedToday)
	assert.Equal(t, int64(1), body.PendingActions)
}

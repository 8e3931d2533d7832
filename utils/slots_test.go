package utils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiftmeet/swiftmeet-api/models"
	"github.com/swiftmeet/swiftmeet-api/testutil"
	"github.com/swiftmeet/swiftmeet-api/utils"
)

func TestClaimSlotIsExclusive(t *testing.T) {
	database := testutil.SetupTestDB(t)
	now := time.Now()

	admin := testutil.CreateUser(t, database, "Admin", "admin@example.com", "admin")
	service := testutil.CreateService(t, database, admin.ID, "Dental Checkup", "dentist")
	slot := testutil.CreateSlot(t, database, service.ID, now.Add(time.Hour), false)

	require.NoError(t, utils.ClaimSlot(database, slot.ID))

	var reloaded models.Slot
	require.NoError(t, database.First(&reloaded, slot.ID).Error)
	assert.True(t, reloaded.Booked)

	// Whoever claims second loses, no matter what they read before.
	assert.ErrorIs(t, utils.ClaimSlot(database, slot.ID), utils.ErrSlotTaken)
}

func TestClaimSlotUnknownSlot(t *testing.T) {
	database := testutil.SetupTestDB(t)

	assert.ErrorIs(t, utils.ClaimSlot(database, 9999), utils.ErrSlotTaken)
}

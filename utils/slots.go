package utils

import (
	"errors"

	"gorm.io/gorm"

	"github.com/swiftmeet/swiftmeet-api/models"
)

// ErrSlotTaken is returned when a slot claim loses to an earlier booking.
var ErrSlotTaken = errors.New("slot already booked")

// ClaimSlot marks a slot as booked, but only if it is still open. The
// conditional write is atomic, so of two transactions claiming the same slot
// only one can succeed; the other matches zero rows and gets ErrSlotTaken.
func ClaimSlot(tx *gorm.DB, slotID uint) error {
	claim := tx.Model(&models.Slot{}).
		Where("id = ? AND booked = ?", slotID, false).
		Update("booked", true)
	if claim.Error != nil {
		return claim.Error
	}
	if claim.RowsAffected == 0 {
		return ErrSlotTaken
	}
	return nil
}

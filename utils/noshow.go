package utils

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/swiftmeet/swiftmeet-api/models"
)

// GracePeriod is how long after a slot's start an arrival can still be marked
// before the booking counts as missed.
const GracePeriod = 15 * time.Minute

// Reschedule records the outcome for one missed booking. New is nil when the
// service had no future free slot left.
type Reschedule struct {
	Old models.Booking
	New *models.Booking
}

// ProcessMissedBookings marks overdue bookings as no-shows and books the next
// free slot for first-time misses. A booking that was already auto-rescheduled
// once is only marked no_show, never rescheduled again. userID narrows the
// pass to a single user; zero scans everyone (cron sweep).
func ProcessMissedBookings(database *gorm.DB, userID uint, now time.Time) ([]Reschedule, error) {
	cutoff := now.Add(-GracePeriod)

	// Second misses first: these must not pick up a new slot.
	var secondMisses []models.Booking
	q := database.Joins("JOIN slots ON slots.id = bookings.slot_id").
		Where("bookings.status = ?", models.StatusBooked).
		Where("bookings.arrived = ?", false).
		Where("bookings.auto_rescheduled = ?", true).
		Where("slots.starts_at < ?", cutoff)
	if userID != 0 {
		q = q.Where("bookings.user_id = ?", userID)
	}
	if err := q.Find(&secondMisses).Error; err != nil {
		return nil, err
	}
	for i := range secondMisses {
		if err := secondMisses[i].UpdateStatus(database, models.StatusNoShow); err != nil {
			return nil, err
		}
	}

	// First misses get one automatic reschedule each, earliest slot first.
	var candidates []models.Booking
	q = database.Preload("User").Preload("Slot").
		Joins("JOIN slots ON slots.id = bookings.slot_id").
		Where("bookings.status = ?", models.StatusBooked).
		Where("bookings.arrived = ?", false).
		Where("bookings.auto_rescheduled = ?", false).
		Where("slots.starts_at < ?", cutoff).
		Order("slots.starts_at asc")
	if userID != 0 {
		q = q.Where("bookings.user_id = ?", userID)
	}
	if err := q.Find(&candidates).Error; err != nil {
		return nil, err
	}

	results := make([]Reschedule, 0, len(candidates))
	for i := range candidates {
		old := candidates[i]
		replacement, err := FindAndBookNextSlot(database, old.UserID, old.Slot.ServiceID, &old, true, now)
		if err != nil {
			return results, err
		}
		results = append(results, Reschedule{Old: old, New: replacement})
	}
	return results, nil
}

// FindAndBookNextSlot marks the old booking as a no-show and books the
// earliest future free slot of the same service for the user. The old booking
// is marked no_show regardless of whether a replacement exists; when none
// does, it returns nil without error. auto is carried onto the new booking so
// an automatic reschedule is never repeated for it.
func FindAndBookNextSlot(database *gorm.DB, userID, serviceID uint, old *models.Booking, auto bool, now time.Time) (*models.Booking, error) {
	if err := old.UpdateStatus(database, models.StatusNoShow); err != nil {
		return nil, err
	}

	for {
		var next models.Slot
		err := database.
			Where("service_id = ?", serviceID).
			Where("booked = ?", false).
			Where("starts_at > ?", now).
			Order("starts_at asc").
			First(&next).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, err
		}

		booking := models.Booking{
			UserID:          userID,
			SlotID:          next.ID,
			Reference:       uuid.NewString(),
			Status:          models.StatusBooked,
			AutoRescheduled: auto,
		}

		err = database.Transaction(func(tx *gorm.DB) error {
			if err := ClaimSlot(tx, next.ID); err != nil {
				return err
			}
			return tx.Create(&booking).Error
		})
		if errors.Is(err, ErrSlotTaken) {
			// Lost the slot to a concurrent booking; pick the next one.
			continue
		}
		if err != nil {
			return nil, err
		}

		next.Booked = true
		booking.Slot = next
		return &booking, nil
	}
}

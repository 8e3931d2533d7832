package models

import (
	"fmt"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	StatusBooked    BookingStatus = "booked"
	StatusArrived   BookingStatus = "arrived"
	StatusNoShow    BookingStatus = "no_show"
	StatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	gorm.Model
	UserID          uint          `json:"user_id" gorm:"index"`
	User            User          `json:"user,omitempty" gorm:"foreignKey:UserID"`
	SlotID          uint          `json:"slot_id" gorm:"index;index:uniq_bookings_live_slot,unique,where:status = 'booked'"`
	Slot            Slot          `json:"slot,omitempty" gorm:"foreignKey:SlotID"`
	Reference       string        `json:"reference" gorm:"uniqueIndex"`
	Status          BookingStatus `json:"status"`
	Arrived         bool          `json:"arrived" gorm:"default:false"`
	AutoRescheduled bool          `json:"auto_rescheduled" gorm:"default:false"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.Status == "" {
		b.Status = StatusBooked
	}
	return nil
}

// UpdateStatus enforces the booking lifecycle: booked is the only state with
// outgoing transitions; arrived, no_show and cancelled are terminal.
func (b *Booking) UpdateStatus(tx *gorm.DB, newStatus BookingStatus) error {
	switch b.Status {
	case StatusBooked:
		if newStatus != StatusArrived && newStatus != StatusNoShow && newStatus != StatusCancelled {
			return fmt.Errorf("invalid transition from %s to %s", b.Status, newStatus)
		}
	default:
		return fmt.Errorf("no transitions allowed from %s", b.Status)
	}

	b.Status = newStatus
	if newStatus == StatusArrived {
		b.Arrived = true
	}
	return tx.Save(b).Error
}

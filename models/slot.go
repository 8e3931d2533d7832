package models

import (
	"time"

	"gorm.io/gorm"
)

type Slot struct {
	gorm.Model
	ServiceID uint      `json:"service_id" gorm:"index"`
	Service   Service   `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	Booked    bool      `json:"booked" gorm:"default:false"`
	Bookings  []Booking `json:"bookings,omitempty" gorm:"foreignKey:SlotID"`
}

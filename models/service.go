package models

import (
	"gorm.io/gorm"
)

type Service struct {
	gorm.Model
	AdminID         uint     `json:"admin_id"`
	Admin           User     `json:"admin,omitempty" gorm:"foreignKey:AdminID"`
	Name            string   `json:"name"`
	Type            string   `json:"type"`
	Specialty       string   `json:"specialty,omitempty"`
	Description     string   `json:"description,omitempty"`
	Address         string   `json:"address"`
	Lat             *float64 `json:"lat,omitempty"`
	Lng             *float64 `json:"lng,omitempty"`
	DurationMinutes uint     `json:"duration_minutes" gorm:"default:30"`
	Slots           []Slot   `json:"slots,omitempty" gorm:"foreignKey:ServiceID"`
}

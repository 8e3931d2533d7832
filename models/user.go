package models

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name"`
	Email     string    `json:"email" gorm:"unique"`
	Password  string    `json:"password,omitempty"`
	Phone     string    `json:"phone"`
	Place     string    `json:"place"`
	Role      string    `json:"role" gorm:"default:user"`
	Services  []Service `json:"services,omitempty" gorm:"foreignKey:AdminID"`
	Bookings  []Booking `json:"bookings,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user can manage services and slots.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// NormalizeRole coerces unknown role values to the default user role.
func NormalizeRole(role string) string {
	if role == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}

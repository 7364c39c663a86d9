package models

import "gorm.io/gorm"

// Booking associates a user with an event. There is no uniqueness constraint
// over (UserID, EventID): a user may book the same event more than once, and
// deletion removes one matching row at a time.
type Booking struct {
	gorm.Model

	UserID  uint `gorm:"not null;index"`
	EventID uint `gorm:"not null;index"`
}

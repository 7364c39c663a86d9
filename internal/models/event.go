package models

import (
	"time"

	"gorm.io/gorm"
)

type Event struct {
	gorm.Model

	Title       string `gorm:"not null"`
	Date        time.Time
	Location    string
	Description string
	Price       float64

	// Image is the blob store reference name, resolvable via GET /file/:filename.
	// The event row is only written after the blob is durable.
	Image string `gorm:"not null"`
}

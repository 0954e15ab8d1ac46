package entity

import (
	"time"

	"gorm.io/gorm"
)

// Reminder is a scheduled user notification. DateTime is epoch millis;
// Notified flips once the dispatcher has fired it.
type Reminder struct {
	ID          uint           `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	DateTime    int64          `json:"dateTime"`
	Notified    bool           `json:"notified"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `json:"-"`
}

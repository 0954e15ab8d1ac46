package entity

import (
	"time"

	"gorm.io/gorm"
)

// User represents an application account.
type User struct {
	ID           uint
	Name         string
	Phone        string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt
}

package entity

import (
	"time"

	"gorm.io/gorm"
)

// Trip statuses
const (
	TripPlanned    = "PLANNED"
	TripConfirmed  = "CONFIRMED"
	TripInProgress = "IN_PROGRESS"
	TripCompleted  = "COMPLETED"
	TripCancelled  = "CANCELLED"
)

// Trip types
const (
	TripBusiness  = "BUSINESS"
	TripLeisure   = "LEISURE"
	TripFamily    = "FAMILY"
	TripAdventure = "ADVENTURE"
	TripRomantic  = "ROMANTIC"
	TripSolo      = "SOLO"
)

// Trip represents a planned or ongoing trip. StartDate and EndDate are
// epoch milliseconds to stay interchangeable with parser output.
type Trip struct {
	ID          uint           `json:"id"`
	Title       string         `json:"title"`
	Destination string         `json:"destination"`
	StartDate   int64          `json:"startDate"`
	EndDate     int64          `json:"endDate"`
	Status      string         `json:"status"`
	Type        string         `json:"type"`
	TotalBudget float64        `json:"totalBudget"`
	SpentAmount float64        `json:"spentAmount"`
	ImageURL    string         `json:"imageUrl"`
	Notes       string         `json:"notes"`
	IsCompleted bool           `json:"isCompleted"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `json:"-"`
}

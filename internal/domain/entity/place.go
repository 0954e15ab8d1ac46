package entity

import (
	"time"

	"gorm.io/gorm"
)

// FavoritePlace is a saved map location.
type FavoritePlace struct {
	ID        uint           `json:"id"`
	Name      string         `json:"name"`
	Address   *string        `json:"address,omitempty"`
	Lat       float64        `json:"lat"`
	Lng       float64        `json:"lng"`
	Notes     *string        `json:"notes,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-"`
}

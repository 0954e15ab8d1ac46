package entity

import (
	"time"

	"gorm.io/gorm"
)

// Expense represents a logged expense, optionally tied to a trip.
// AmountUSD is the converted amount at logging time.
type Expense struct {
	ID            uint           `json:"id"`
	TripID        *uint          `json:"tripId,omitempty"`
	Title         string         `json:"title"`
	Amount        float64        `json:"amount"`
	Currency      string         `json:"currency"`
	AmountUSD     float64        `json:"amountUsd"`
	Category      string         `json:"category"`
	Date          int64          `json:"date"`
	PaymentMethod string         `json:"paymentMethod"`
	Description   string         `json:"description"`
	ReceiptPath   *string        `json:"receiptPath,omitempty"`
	Location      string         `json:"location"`
	IsRecurring   bool           `json:"isRecurring"`
	Tags          string         `json:"tags"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `json:"-"`
}

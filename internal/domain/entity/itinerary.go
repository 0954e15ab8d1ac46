package entity

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Itinerary item types. The parser emits a smaller tag set; unknown tags
// map to ItineraryOther at this boundary.
const (
	ItineraryFlight     = "FLIGHT"
	ItineraryHotel      = "HOTEL"
	ItineraryRestaurant = "RESTAURANT"
	ItineraryActivity   = "ACTIVITY"
	ItineraryTransport  = "TRANSPORT"
	ItineraryMeeting    = "MEETING"
	ItineraryOther      = "OTHER"
)

// ItineraryTypeFromTag maps a free-form parser tag onto the closed
// itinerary type set.
func ItineraryTypeFromTag(tag string) string {
	switch strings.ToUpper(strings.TrimSpace(tag)) {
	case ItineraryFlight:
		return ItineraryFlight
	case ItineraryHotel:
		return ItineraryHotel
	case ItineraryRestaurant:
		return ItineraryRestaurant
	case ItineraryActivity:
		return ItineraryActivity
	case ItineraryTransport:
		return ItineraryTransport
	case ItineraryMeeting:
		return ItineraryMeeting
	default:
		return ItineraryOther
	}
}

// ItineraryItem is a single bookable unit within a trip. Pointer fields
// are type-specific details that may be absent.
type ItineraryItem struct {
	ID                 uint    `json:"id"`
	TripID             uint    `json:"tripId"`
	Type               string  `json:"type"`
	Title              string  `json:"title"`
	Description        string  `json:"description"`
	StartTime          int64   `json:"startTime"`
	EndTime            int64   `json:"endTime"`
	Location           string  `json:"location"`
	ConfirmationNumber string  `json:"confirmationNumber"`
	Cost               float64 `json:"cost"`
	Status             string  `json:"status"`

	Airline          *string `json:"airline,omitempty"`
	FlightNumber     *string `json:"flightNumber,omitempty"`
	Gate             *string `json:"gate,omitempty"`
	Terminal         *string `json:"terminal,omitempty"`
	HotelName        *string `json:"hotelName,omitempty"`
	RoomNumber       *string `json:"roomNumber,omitempty"`
	CheckInDate      *int64  `json:"checkInDate,omitempty"`
	CheckOutDate     *int64  `json:"checkOutDate,omitempty"`
	ActivityName     *string `json:"activityName,omitempty"`
	ActivityDuration *string `json:"activityDuration,omitempty"`
	BookingReference *string `json:"bookingReference,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-"`
}

package parser

// ItemType is the closed set of tags the parser assigns to extracted items.
type ItemType string

const (
	TypeFlight   ItemType = "FLIGHT"
	TypeHotel    ItemType = "HOTEL"
	TypeActivity ItemType = "ACTIVITY"
	TypeOther    ItemType = "OTHER"
)

// ParsedItem is a single itinerary item extracted from booking text.
// Every field beyond Type/Title/Notes is best-effort: nil means the source
// text did not carry a recognizable value.
type ParsedItem struct {
	Type        ItemType
	Title       string
	Notes       string
	StartMillis *int64
	EndMillis   *int64

	ConfirmationNumber *string
	Location           *string

	// Flight details
	Airline      *string
	FlightNumber *string
	Gate         *string
	Terminal     *string

	// Hotel details
	HotelName    *string
	RoomNumber   *string
	CheckInDate  *int64
	CheckOutDate *int64

	// Activity details
	ActivityName     *string
	ActivityDuration *string

	BookingReference *string
}

// ParsedBooking is the trip-level result of parsing an email body.
// Items is never empty: when nothing structured is found a single OTHER
// item holds a truncated copy of the source text.
type ParsedBooking struct {
	Title       string
	Destination string
	StartMillis *int64
	EndMillis   *int64
	Items       []ParsedItem
}

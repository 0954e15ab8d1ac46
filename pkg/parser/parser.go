// Package parser extracts structured booking data from free-form email
// bodies and attachment-derived plain text. Extraction is best-effort over
// uncontrolled text: every step degrades to "field absent" or "item
// omitted" and no input can produce an error. The package holds no state
// between calls and is safe for concurrent use.
package parser

import (
	"regexp"
	"strings"
)

const maxFallbackNotes = 300

// Shared regex fragments so every rule recognizes the same date and time
// shapes.
const (
	datePattern = `(\d{1,2}\s+[A-Za-z]{3}\s+\d{4}|\d{4}-\d{2}-\d{2}|[A-Za-z]{3}\s+\d{1,2},\s+\d{4}|\d{2}/\d{2}/\d{4})`
	timePattern = `(\d{1,2}:\d{2}\s*(?:AM|PM)?)`
)

// Attachment-style rules: one booking per document, labeled fields.
var (
	attFlightNumberRe = regexp.MustCompile(`Flight Number:\s*([A-Z0-9]+)`)
	attAirlineRe      = regexp.MustCompile(`Airline:\s*(.+)`)
	attDepartureRe    = regexp.MustCompile(`Departure:\s*(.+?)\s+Date:\s*` + datePattern + `\s+Time:\s*` + timePattern)
	attArrivalRe      = regexp.MustCompile(`Arrival:\s*(.+?)\s+Date:\s*` + datePattern + `\s+Time:\s*` + timePattern)
	attGateRe         = regexp.MustCompile(`Gate:\s*([A-Z0-9]+)`)
	attTerminalRe     = regexp.MustCompile(`Terminal:\s*([A-Z0-9]+)`)
	attBookingRefRe   = regexp.MustCompile(`Booking Reference:\s*([A-Z0-9]+)`)

	attHotelNameRe    = regexp.MustCompile(`Hotel Name:\s*(.+)`)
	attCheckInRe      = regexp.MustCompile(`Check-in:\s*` + datePattern + `\s+` + timePattern)
	attCheckOutRe     = regexp.MustCompile(`Check-out:\s*` + datePattern + `\s+` + timePattern)
	attAddressRe      = regexp.MustCompile(`Address:\s*(.+)`)
	attRoomNumberRe   = regexp.MustCompile(`Room Number:\s*(.+)`)
	attConfirmationRe = regexp.MustCompile(`Confirmation Number:\s*([A-Z0-9]+)`)
)

// Free-text email rules: each may match multiple times per document.
var (
	bodyFlightRe = regexp.MustCompile(`(?i)Flight(?: Number)?:\s*([A-Z0-9]+)\s*(?:from\s*(.*?)\s*to\s*(.*?))?\s*(?:on\s*` + datePattern + `)?\s*(?:at\s*` + timePattern + `)?`)
	bodyHotelRe  = regexp.MustCompile(`(?i)Hotel(?: Name)?:\s*(.*?)\s*(?:Check-in:\s*` + datePattern + `(?:\s*` + timePattern + `)?)?\s*(?:Check-out:\s*` + datePattern + `(?:\s*` + timePattern + `)?)?\s*(?:Confirmation(?: Number)?:\s*([A-Z0-9]+))?\s*(?:Address:\s*(.*?))?`)
	bodyActRe    = regexp.MustCompile(`(?i)Activity(?: Name)?:\s*(.*?)\s*(?:Date:\s*` + datePattern + `(?:\s*` + timePattern + `)?)?\s*(?:Location:\s*(.*?))?`)
)

// Trip-level rules.
var (
	subjectRe     = regexp.MustCompile(`(?i)Subject:\s*(.*)`)
	destinationRe = regexp.MustCompile(`(?i)Destination[: ]+(.*)`)
	destCodeRe    = regexp.MustCompile(`(?i)To[: ]+([A-Z]{3})`)
	checkInRe     = regexp.MustCompile(`(?i)Check[- ]?in[: ]+(.+)`)
	checkOutRe    = regexp.MustCompile(`(?i)Check[- ]?out[: ]+(.+)`)
	departRe      = regexp.MustCompile(`(?i)Depart(?:ure)?[: ]+(.+)`)
	returnRe      = regexp.MustCompile(`(?i)Return[: ]+(.+)`)
)

// optional returns a pointer to the trimmed capture, or nil when the group
// did not match anything meaningful.
func optional(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func group(match []string, i int) string {
	if match == nil || i >= len(match) {
		return ""
	}
	return match[i]
}

// ParseAttachment extracts items from single-document-shaped text, e.g.
// the plain text a collaborator pulled out of a ticket or voucher. A
// flight is emitted only when flight number, departure and arrival blocks
// are all present; a hotel only when name, check-in and check-out are all
// present. Missing blocks skip the item silently.
func ParseAttachment(content string) []ParsedItem {
	var items []ParsedItem

	flightNumber := attFlightNumberRe.FindStringSubmatch(content)
	departure := attDepartureRe.FindStringSubmatch(content)
	arrival := attArrivalRe.FindStringSubmatch(content)

	if flightNumber != nil && departure != nil && arrival != nil {
		number := flightNumber[1]
		depLocation := strings.TrimSpace(departure[1])
		arrLocation := strings.TrimSpace(arrival[1])
		location := depLocation + " - " + arrLocation

		item := ParsedItem{
			Type:             TypeFlight,
			Title:            "Flight " + number,
			Notes:            "From " + depLocation + " to " + arrLocation,
			StartMillis:      ParseDateTimeToMillis(departure[2], departure[3]),
			EndMillis:        ParseDateTimeToMillis(arrival[2], arrival[3]),
			FlightNumber:     &number,
			Airline:          optional(group(attAirlineRe.FindStringSubmatch(content), 1)),
			Gate:             optional(group(attGateRe.FindStringSubmatch(content), 1)),
			Terminal:         optional(group(attTerminalRe.FindStringSubmatch(content), 1)),
			Location:         &location,
			BookingReference: optional(group(attBookingRefRe.FindStringSubmatch(content), 1)),
		}
		items = append(items, item)
	}

	hotelName := attHotelNameRe.FindStringSubmatch(content)
	checkIn := attCheckInRe.FindStringSubmatch(content)
	checkOut := attCheckOutRe.FindStringSubmatch(content)

	if hotelName != nil && checkIn != nil && checkOut != nil {
		name := strings.TrimSpace(hotelName[1])
		confirmation := optional(group(attConfirmationRe.FindStringSubmatch(content), 1))

		item := ParsedItem{
			Type:               TypeHotel,
			Title:              name,
			Notes:              "Stay at " + name,
			StartMillis:        ParseDateTimeToMillis(checkIn[1], checkIn[2]),
			EndMillis:          ParseDateTimeToMillis(checkOut[1], checkOut[2]),
			HotelName:          &name,
			RoomNumber:         optional(group(attRoomNumberRe.FindStringSubmatch(content), 1)),
			CheckInDate:        ParseDateToMillis(checkIn[1]),
			CheckOutDate:       ParseDateToMillis(checkOut[1]),
			Location:           optional(group(attAddressRe.FindStringSubmatch(content), 1)),
			ConfirmationNumber: confirmation,
			BookingReference:   confirmation,
		}
		items = append(items, item)
	}

	return items
}

// Parse extracts a booking from email-body-shaped text: trip title,
// destination and date range, plus every flight, hotel and activity
// mention found by the free-text rules, in that fixed order.
func Parse(rawEmail string) ParsedBooking {
	text := strings.ReplaceAll(rawEmail, "\r", "")

	title := "Imported Trip"
	if m := subjectRe.FindStringSubmatch(text); m != nil && strings.TrimSpace(m[1]) != "" {
		title = m[1]
	}

	destination := ""
	if m := destinationRe.FindStringSubmatch(text); m != nil {
		destination = strings.TrimSpace(m[1])
	} else if m := destCodeRe.FindStringSubmatch(text); m != nil {
		destination = strings.TrimSpace(m[1])
	}

	explicitStart := ParseDateToMillis(firstCapture(text, checkInRe, departRe))
	explicitEnd := ParseDateToMillis(firstCapture(text, checkOutRe, returnRe))

	var items []ParsedItem
	items = append(items, parseBodyFlights(text)...)
	items = append(items, parseBodyHotels(text)...)
	items = append(items, parseBodyActivities(text)...)

	if len(items) == 0 {
		items = append(items, ParsedItem{
			Type:  TypeOther,
			Title: "Email import",
			Notes: truncate(text, maxFallbackNotes),
		})
	}

	start, end := explicitStart, explicitEnd
	if start == nil {
		start = minStart(items)
	}
	if end == nil {
		end = maxEnd(items)
	}

	return ParsedBooking{
		Title:       title,
		Destination: destination,
		StartMillis: start,
		EndMillis:   end,
		Items:       items,
	}
}

func parseBodyFlights(text string) []ParsedItem {
	var items []ParsedItem
	for _, m := range bodyFlightRe.FindAllStringSubmatch(text, -1) {
		number := strings.TrimSpace(m[1])
		from := strings.TrimSpace(m[2])
		to := strings.TrimSpace(m[3])
		date := strings.TrimSpace(m[4])
		timeStr := strings.TrimSpace(m[5])

		item := ParsedItem{
			Type:         TypeFlight,
			Title:        "Flight " + number + " to " + to,
			Notes:        "From: " + from + ", On: " + date + " " + timeStr,
			StartMillis:  ParseDateTimeToMillis(date, timeStr),
			FlightNumber: &number,
		}
		if from != "" || to != "" {
			location := from + " to " + to
			item.Location = &location
		}
		items = append(items, item)
	}
	return items
}

func parseBodyHotels(text string) []ParsedItem {
	var items []ParsedItem
	for _, m := range bodyHotelRe.FindAllStringSubmatch(text, -1) {
		name := strings.TrimSpace(m[1])
		checkInDate := strings.TrimSpace(m[2])
		checkInTime := strings.TrimSpace(m[3])
		checkOutDate := strings.TrimSpace(m[4])
		checkOutTime := strings.TrimSpace(m[5])

		item := ParsedItem{
			Type:               TypeHotel,
			Title:              name,
			Notes:              "Check-in: " + checkInDate + " " + checkInTime + ", Check-out: " + checkOutDate + " " + checkOutTime,
			StartMillis:        ParseDateTimeToMillis(checkInDate, checkInTime),
			EndMillis:          ParseDateTimeToMillis(checkOutDate, checkOutTime),
			ConfirmationNumber: optional(m[6]),
			Location:           optional(m[7]),
			HotelName:          optional(name),
			CheckInDate:        ParseDateToMillis(checkInDate),
			CheckOutDate:       ParseDateToMillis(checkOutDate),
		}
		items = append(items, item)
	}
	return items
}

func parseBodyActivities(text string) []ParsedItem {
	var items []ParsedItem
	for _, m := range bodyActRe.FindAllStringSubmatch(text, -1) {
		name := strings.TrimSpace(m[1])
		date := strings.TrimSpace(m[2])
		timeStr := strings.TrimSpace(m[3])

		items = append(items, ParsedItem{
			Type:         TypeActivity,
			Title:        name,
			Notes:        "On: " + date + " " + timeStr,
			StartMillis:  ParseDateTimeToMillis(date, timeStr),
			Location:     optional(m[4]),
			ActivityName: optional(name),
		})
	}
	return items
}

// firstCapture returns the first non-empty capture across the given rules.
func firstCapture(text string, rules ...*regexp.Regexp) string {
	for _, re := range rules {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}

func minStart(items []ParsedItem) *int64 {
	var min *int64
	for i := range items {
		s := items[i].StartMillis
		if s == nil {
			continue
		}
		if min == nil || *s < *min {
			min = s
		}
	}
	return min
}

// maxEnd takes each item's end, or its start when the end is absent.
func maxEnd(items []ParsedItem) *int64 {
	var max *int64
	for i := range items {
		e := items[i].EndMillis
		if e == nil {
			e = items[i].StartMillis
		}
		if e == nil {
			continue
		}
		if max == nil || *e > *max {
			max = e
		}
	}
	return max
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

package usecase

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"travella-service/internal/domain/entity"
	"travella-service/internal/domain/repository"
	"travella-service/pkg/logger"
	"travella-service/pkg/metrics"
	"travella-service/pkg/parser"
)

// ManualImportSubject marks emails submitted through the import endpoint
// without a subject. It routes to this handler but is not a real subject,
// so it never feeds the parser.
const ManualImportSubject = "Manual booking import"

// Subject fragments that identify a booking email. Matching is
// case-insensitive substring.
var bookingSubjectPatterns = []string{
	"booking",
	"reservation",
	"itinerary",
	"confirmation",
	"e-ticket",
	"eticket",
}

// BookingImportHandler turns booking emails into trips with itinerary
// items. Parsing is best effort and never fails the import on its own.
type BookingImportHandler struct {
	emailRepo     repository.EmailRepository
	tripRepo      repository.TripRepository
	itineraryRepo repository.ItineraryRepository
	logger        logger.Logger
	metrics       *metrics.Metrics
}

// NewBookingImportHandler creates a new booking import handler
func NewBookingImportHandler(
	emailRepo repository.EmailRepository,
	tripRepo repository.TripRepository,
	itineraryRepo repository.ItineraryRepository,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *BookingImportHandler {
	return &BookingImportHandler{
		emailRepo:     emailRepo,
		tripRepo:      tripRepo,
		itineraryRepo: itineraryRepo,
		logger:        logger,
		metrics:       metrics,
	}
}

// CanHandle checks if the subject looks like a booking email
func (h *BookingImportHandler) CanHandle(subject string) bool {
	lower := strings.ToLower(subject)
	for _, pattern := range bookingSubjectPatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

// Process parses the email body and text attachments, creates a trip and
// its itinerary items, and records the extracted data on the email.
func (h *BookingImportHandler) Process(ctx context.Context, email *entity.Email) error {
	start := time.Now()

	body := email.Body
	if body == "" {
		body = stripHTML(email.HTMLBody)
	}

	raw := body
	if email.Subject != "" && email.Subject != ManualImportSubject && !strings.Contains(body, "Subject:") {
		raw = "Subject: " + email.Subject + "\n" + body
	}

	booking := parser.Parse(raw)
	steps := entity.ImportSteps{BodyParsed: true}

	for _, att := range email.Attachments {
		if !att.IsText() {
			continue
		}
		items := parser.ParseAttachment(string(att.Data))
		booking.Items = append(booking.Items, items...)
		steps.AttachmentsParsed++
	}
	steps.ItemsExtracted = len(booking.Items)

	trip := &entity.Trip{
		Title:       booking.Title,
		Destination: booking.Destination,
		StartDate:   millisOrZero(booking.StartMillis),
		EndDate:     millisOrZero(booking.EndMillis),
		Status:      entity.TripPlanned,
		Type:        entity.TripLeisure,
	}
	if err := h.tripRepo.Create(ctx, trip); err != nil {
		return fmt.Errorf("failed to create trip: %w", err)
	}
	steps.TripCreated = true
	h.metrics.TripsCreated.Inc()

	for _, item := range booking.Items {
		itineraryItem := toItineraryItem(trip.ID, item)
		if err := h.itineraryRepo.Create(ctx, itineraryItem); err != nil {
			h.logger.Error("Failed to save itinerary item",
				"emailID", email.EmailID,
				"tripID", trip.ID,
				"type", itineraryItem.Type,
				"error", err)
			continue
		}
		h.metrics.ItemsParsed.WithLabelValues(itineraryItem.Type).Inc()
	}

	if err := h.emailRepo.UpdateImportSteps(ctx, email.EmailID, steps); err != nil {
		h.logger.Warn("Failed to record import steps",
			"emailID", email.EmailID,
			"error", err)
	}

	extracted := map[string]interface{}{
		"tripId":      trip.ID,
		"title":       booking.Title,
		"destination": booking.Destination,
		"itemCount":   len(booking.Items),
	}
	if err := h.emailRepo.MarkAsImported(ctx, email.EmailID, entity.StatusCompleted,
		fmt.Sprintf("%T", h), "", extracted); err != nil {
		return fmt.Errorf("failed to mark email as imported: %w", err)
	}

	h.metrics.EmailsImported.Inc()
	h.metrics.ImportTime.Observe(time.Since(start).Seconds())

	h.logger.Info("Imported booking email",
		"emailID", email.EmailID,
		"tripID", trip.ID,
		"items", len(booking.Items),
		"duration", time.Since(start))

	return nil
}

var (
	htmlBreakRe = regexp.MustCompile(`(?i)<\s*(?:br|/p|/div|/li|/tr|/h[1-6])\s*/?\s*>`)
	htmlTagRe   = regexp.MustCompile(`<[^>]*>`)
)

// stripHTML reduces an HTML body to plain text so labeled lines like
// "<b>Flight:</b> BA249" still parse. Line-ending tags become newlines,
// everything else is dropped and entities are unescaped.
func stripHTML(s string) string {
	s = htmlBreakRe.ReplaceAllString(s, "\n")
	s = htmlTagRe.ReplaceAllString(s, "")
	return html.UnescapeString(s)
}

func millisOrZero(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

func stringOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// toItineraryItem converts a parsed item into a persistable itinerary item.
func toItineraryItem(tripID uint, item parser.ParsedItem) *entity.ItineraryItem {
	return &entity.ItineraryItem{
		TripID:             tripID,
		Type:               entity.ItineraryTypeFromTag(string(item.Type)),
		Title:              item.Title,
		Description:        item.Notes,
		StartTime:          millisOrZero(item.StartMillis),
		EndTime:            millisOrZero(item.EndMillis),
		Location:           stringOrEmpty(item.Location),
		ConfirmationNumber: stringOrEmpty(item.ConfirmationNumber),
		Status:             "CONFIRMED",
		Airline:            item.Airline,
		FlightNumber:       item.FlightNumber,
		Gate:               item.Gate,
		Terminal:           item.Terminal,
		HotelName:          item.HotelName,
		RoomNumber:         item.RoomNumber,
		CheckInDate:        item.CheckInDate,
		CheckOutDate:       item.CheckOutDate,
		ActivityName:       item.ActivityName,
		ActivityDuration:   item.ActivityDuration,
		BookingReference:   item.BookingReference,
	}
}

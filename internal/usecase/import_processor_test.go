package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travella-service/internal/domain/entity"
	"travella-service/pkg/logger"
	"travella-service/pkg/metrics"
)

var testMetrics = metrics.NewMetrics("usecase_test")

type fakeEmailRepo struct {
	emails    map[string]*entity.Email
	statuses  map[string]string
	errors    map[string]string
	extracted map[string]map[string]interface{}
	steps     map[string]entity.ImportSteps
}

func newFakeEmailRepo(emails ...*entity.Email) *fakeEmailRepo {
	repo := &fakeEmailRepo{
		emails:    make(map[string]*entity.Email),
		statuses:  make(map[string]string),
		errors:    make(map[string]string),
		extracted: make(map[string]map[string]interface{}),
		steps:     make(map[string]entity.ImportSteps),
	}
	for _, email := range emails {
		repo.emails[email.EmailID] = email
	}
	return repo
}

func (r *fakeEmailRepo) Save(ctx context.Context, email *entity.Email) error {
	r.emails[email.EmailID] = email
	return nil
}

func (r *fakeEmailRepo) FindUnprocessed(ctx context.Context, limit int) ([]*entity.Email, error) {
	var out []*entity.Email
	for _, email := range r.emails {
		if r.statuses[email.EmailID] == "" || r.statuses[email.EmailID] == entity.StatusPending {
			out = append(out, email)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeEmailRepo) FindByEmailID(ctx context.Context, emailID string) (*entity.Email, error) {
	return r.emails[emailID], nil
}

func (r *fakeEmailRepo) FindByEmailIDs(ctx context.Context, emailIDs []string) (map[string]*entity.Email, error) {
	out := make(map[string]*entity.Email)
	for _, id := range emailIDs {
		if email, ok := r.emails[id]; ok {
			out[id] = email
		}
	}
	return out, nil
}

func (r *fakeEmailRepo) GetLastEmail(ctx context.Context) (*entity.Email, error) {
	return nil, nil
}

func (r *fakeEmailRepo) UpdateStatus(ctx context.Context, emailID string, status string, startedAt time.Time) error {
	r.statuses[emailID] = status
	return nil
}

func (r *fakeEmailRepo) MarkAsImported(ctx context.Context, emailID, status, importerType, errorDetail string, extractedData map[string]interface{}) error {
	r.statuses[emailID] = status
	r.errors[emailID] = errorDetail
	r.extracted[emailID] = extractedData
	return nil
}

func (r *fakeEmailRepo) UpdateImportSteps(ctx context.Context, emailID string, steps entity.ImportSteps) error {
	r.steps[emailID] = steps
	return nil
}

func (r *fakeEmailRepo) ResetProcessingEmails(ctx context.Context) error {
	return nil
}

type fakeTripRepo struct {
	trips  []*entity.Trip
	nextID uint
	err    error
}

func (r *fakeTripRepo) Create(ctx context.Context, trip *entity.Trip) error {
	if r.err != nil {
		return r.err
	}
	r.nextID++
	trip.ID = r.nextID
	r.trips = append(r.trips, trip)
	return nil
}

func (r *fakeTripRepo) GetByID(ctx context.Context, id uint) (*entity.Trip, error) {
	for _, trip := range r.trips {
		if trip.ID == id {
			return trip, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *fakeTripRepo) GetAll(ctx context.Context) ([]*entity.Trip, error) { return r.trips, nil }
func (r *fakeTripRepo) GetUpcoming(ctx context.Context, nowMillis int64) ([]*entity.Trip, error) {
	return nil, nil
}
func (r *fakeTripRepo) GetByStatus(ctx context.Context, status string) ([]*entity.Trip, error) {
	return nil, nil
}
func (r *fakeTripRepo) Update(ctx context.Context, trip *entity.Trip) error         { return nil }
func (r *fakeTripRepo) UpdateSpent(ctx context.Context, id uint, spent float64) error { return nil }
func (r *fakeTripRepo) Delete(ctx context.Context, id uint) error                   { return nil }

type fakeItineraryRepo struct {
	items []*entity.ItineraryItem
}

func (r *fakeItineraryRepo) Create(ctx context.Context, item *entity.ItineraryItem) error {
	item.ID = uint(len(r.items) + 1)
	r.items = append(r.items, item)
	return nil
}

func (r *fakeItineraryRepo) GetByID(ctx context.Context, id uint) (*entity.ItineraryItem, error) {
	return nil, errors.New("not found")
}

func (r *fakeItineraryRepo) GetByTrip(ctx context.Context, tripID uint) ([]*entity.ItineraryItem, error) {
	var out []*entity.ItineraryItem
	for _, item := range r.items {
		if item.TripID == tripID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeItineraryRepo) Update(ctx context.Context, item *entity.ItineraryItem) error { return nil }
func (r *fakeItineraryRepo) Delete(ctx context.Context, id uint) error                    { return nil }

func newTestHandler(emailRepo *fakeEmailRepo) (*BookingImportHandler, *fakeTripRepo, *fakeItineraryRepo) {
	tripRepo := &fakeTripRepo{}
	itineraryRepo := &fakeItineraryRepo{}
	handler := NewBookingImportHandler(emailRepo, tripRepo, itineraryRepo, logger.NewNop(), testMetrics)
	return handler, tripRepo, itineraryRepo
}

func TestCanHandleBookingSubjects(t *testing.T) {
	handler, _, _ := newTestHandler(newFakeEmailRepo())

	assert.True(t, handler.CanHandle("Your Booking Confirmation"))
	assert.True(t, handler.CanHandle("RESERVATION #123"))
	assert.True(t, handler.CanHandle("e-ticket attached"))
	assert.False(t, handler.CanHandle("Weekly newsletter"))
	assert.False(t, handler.CanHandle(""))
}

func TestProcessCreatesTripAndItems(t *testing.T) {
	email := &entity.Email{
		EmailID: "msg-1",
		Subject: "Sydney getaway",
		Body:    "Destination: Sydney\nFlight: QF12 from Melbourne to Sydney\nHotel: Park Hyatt\n",
	}
	emailRepo := newFakeEmailRepo(email)
	handler, tripRepo, itineraryRepo := newTestHandler(emailRepo)

	require.NoError(t, handler.Process(context.Background(), email))

	require.Len(t, tripRepo.trips, 1)
	trip := tripRepo.trips[0]
	assert.Equal(t, "Sydney getaway", trip.Title)
	assert.Equal(t, "Sydney", trip.Destination)
	assert.Equal(t, entity.TripPlanned, trip.Status)

	require.NotEmpty(t, itineraryRepo.items)
	assert.Equal(t, entity.ItineraryFlight, itineraryRepo.items[0].Type)
	assert.Equal(t, trip.ID, itineraryRepo.items[0].TripID)

	assert.Equal(t, entity.StatusCompleted, emailRepo.statuses["msg-1"])
	assert.Equal(t, trip.ID, emailRepo.extracted["msg-1"]["tripId"])
	assert.True(t, emailRepo.steps["msg-1"].TripCreated)
	assert.True(t, emailRepo.steps["msg-1"].BodyParsed)
}

func TestProcessEmptyBodyStillCreatesTrip(t *testing.T) {
	email := &entity.Email{EmailID: "msg-2", Subject: "Booking", Body: ""}
	emailRepo := newFakeEmailRepo(email)
	handler, tripRepo, itineraryRepo := newTestHandler(emailRepo)

	require.NoError(t, handler.Process(context.Background(), email))

	require.Len(t, tripRepo.trips, 1)
	assert.Equal(t, "Booking", tripRepo.trips[0].Title)
	require.NotEmpty(t, itineraryRepo.items)
	assert.Equal(t, entity.ItineraryOther, itineraryRepo.items[0].Type)
}

func TestProcessHTMLBodyFallbackStripsMarkup(t *testing.T) {
	email := &entity.Email{
		EmailID: "msg-html",
		Subject: "Booking confirmation",
		HTMLBody: "<html><body>" +
			"<p><b>Destination:</b> Sydney</p>" +
			"<p><b>Flight:</b> QF12 from Melbourne to Sydney</p>" +
			"<p><b>Hotel:</b> Park &amp; Hyatt</p>" +
			"</body></html>",
	}
	emailRepo := newFakeEmailRepo(email)
	handler, tripRepo, itineraryRepo := newTestHandler(emailRepo)

	require.NoError(t, handler.Process(context.Background(), email))

	require.Len(t, tripRepo.trips, 1)
	assert.Equal(t, "Booking confirmation", tripRepo.trips[0].Title)
	assert.Equal(t, "Sydney", tripRepo.trips[0].Destination)

	require.Len(t, itineraryRepo.items, 2)
	assert.Equal(t, entity.ItineraryFlight, itineraryRepo.items[0].Type)
	require.NotNil(t, itineraryRepo.items[0].FlightNumber)
	assert.Equal(t, "QF12", *itineraryRepo.items[0].FlightNumber)
	assert.Equal(t, entity.ItineraryHotel, itineraryRepo.items[1].Type)
}

func TestProcessParsesTextAttachmentsAfterBody(t *testing.T) {
	attachment := "Flight Number: QF12\n" +
		"Airline: Qantas\n" +
		"Departure: Sydney Date: 15 Mar 2024 Time: 10:30\n" +
		"Arrival: Melbourne Date: 15 Mar 2024 Time: 12:05\n"
	email := &entity.Email{
		EmailID: "msg-3",
		Subject: "Itinerary",
		Body:    "Hotel: Park Hyatt from 15 Mar 2024 to 20 Mar 2024\n",
		Attachments: []entity.Attachment{
			{Filename: "flight.txt", ContentType: "text/plain", Data: []byte(attachment)},
			{Filename: "logo.png", ContentType: "image/png", Data: []byte{0x89}},
		},
	}
	emailRepo := newFakeEmailRepo(email)
	handler, _, itineraryRepo := newTestHandler(emailRepo)

	require.NoError(t, handler.Process(context.Background(), email))

	require.Len(t, itineraryRepo.items, 2)
	assert.Equal(t, entity.ItineraryHotel, itineraryRepo.items[0].Type)
	assert.Equal(t, entity.ItineraryFlight, itineraryRepo.items[1].Type)

	steps := emailRepo.steps["msg-3"]
	assert.Equal(t, 1, steps.AttachmentsParsed)
	assert.Equal(t, 2, steps.ItemsExtracted)
}

func TestProcessTripCreateFailureMarksFailed(t *testing.T) {
	email := &entity.Email{EmailID: "msg-4", Subject: "Booking", Body: "hello"}
	emailRepo := newFakeEmailRepo(email)
	tripRepo := &fakeTripRepo{err: errors.New("db down")}
	handler := NewBookingImportHandler(emailRepo, tripRepo, &fakeItineraryRepo{}, logger.NewNop(), testMetrics)

	err := handler.Process(context.Background(), email)
	assert.Error(t, err)
}

func TestProcessEmailSkipsUnmatchedSubject(t *testing.T) {
	email := &entity.Email{EmailID: "msg-5", Subject: "Weekly newsletter"}
	emailRepo := newFakeEmailRepo(email)
	handler, _, _ := newTestHandler(emailRepo)

	router := &fakeRouter{handler: handler}
	processor := NewImportProcessor(emailRepo, router, logger.NewNop(), testMetrics, 100)

	require.NoError(t, processor.ProcessEmail(context.Background(), email))
	assert.Equal(t, entity.StatusSkipped, emailRepo.statuses["msg-5"])
}

func TestProcessEmailHandlerFailureMarksFailed(t *testing.T) {
	email := &entity.Email{EmailID: "msg-6", Subject: "Booking"}
	emailRepo := newFakeEmailRepo(email)
	tripRepo := &fakeTripRepo{err: errors.New("db down")}
	handler := NewBookingImportHandler(emailRepo, tripRepo, &fakeItineraryRepo{}, logger.NewNop(), testMetrics)

	router := &fakeRouter{handler: handler}
	processor := NewImportProcessor(emailRepo, router, logger.NewNop(), testMetrics, 100)

	// Handler failures must not abort the batch
	require.NoError(t, processor.ProcessEmail(context.Background(), email))
	assert.Equal(t, entity.StatusFailed, emailRepo.statuses["msg-6"])
	assert.Equal(t, "failed to create trip: db down", emailRepo.errors["msg-6"])
}

func TestProcessPendingEmailsDrainsBatch(t *testing.T) {
	emailRepo := newFakeEmailRepo(
		&entity.Email{EmailID: "a", Subject: "Booking one", Body: "x"},
		&entity.Email{EmailID: "b", Subject: "Booking two", Body: "y"},
	)
	handler, tripRepo, _ := newTestHandler(emailRepo)

	router := &fakeRouter{handler: handler}
	processor := NewImportProcessor(emailRepo, router, logger.NewNop(), testMetrics, 100)

	require.NoError(t, processor.ProcessPendingEmails(context.Background()))
	assert.Len(t, tripRepo.trips, 2)
	assert.Equal(t, entity.StatusCompleted, emailRepo.statuses["a"])
	assert.Equal(t, entity.StatusCompleted, emailRepo.statuses["b"])
}

type fakeRouter struct {
	handler ImportHandler
}

func (r *fakeRouter) Register(handler ImportHandler) {}

func (r *fakeRouter) GetHandler(subject string) ImportHandler {
	if r.handler != nil && r.handler.CanHandle(subject) {
		return r.handler
	}
	return nil
}

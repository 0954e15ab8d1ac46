package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travella-service/internal/domain/entity"
	"travella-service/internal/infrastructure/router"
	"travella-service/internal/usecase"
	"travella-service/pkg/currency"
	"travella-service/pkg/logger"
	"travella-service/pkg/metrics"
)

var testMetrics = metrics.NewMetrics("api_test")

type memTripRepo struct {
	trips  map[uint]*entity.Trip
	nextID uint
}

func newMemTripRepo() *memTripRepo {
	return &memTripRepo{trips: make(map[uint]*entity.Trip)}
}

func (r *memTripRepo) Create(ctx context.Context, trip *entity.Trip) error {
	r.nextID++
	trip.ID = r.nextID
	r.trips[trip.ID] = trip
	return nil
}

func (r *memTripRepo) GetByID(ctx context.Context, id uint) (*entity.Trip, error) {
	trip, ok := r.trips[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return trip, nil
}

func (r *memTripRepo) GetAll(ctx context.Context) ([]*entity.Trip, error) {
	var out []*entity.Trip
	for _, trip := range r.trips {
		out = append(out, trip)
	}
	return out, nil
}

func (r *memTripRepo) GetUpcoming(ctx context.Context, nowMillis int64) ([]*entity.Trip, error) {
	var out []*entity.Trip
	for _, trip := range r.trips {
		if trip.StartDate > nowMillis {
			out = append(out, trip)
		}
	}
	return out, nil
}

func (r *memTripRepo) GetByStatus(ctx context.Context, status string) ([]*entity.Trip, error) {
	var out []*entity.Trip
	for _, trip := range r.trips {
		if trip.Status == status {
			out = append(out, trip)
		}
	}
	return out, nil
}

func (r *memTripRepo) Update(ctx context.Context, trip *entity.Trip) error {
	r.trips[trip.ID] = trip
	return nil
}

func (r *memTripRepo) UpdateSpent(ctx context.Context, id uint, spent float64) error {
	if trip, ok := r.trips[id]; ok {
		trip.SpentAmount = spent
	}
	return nil
}

func (r *memTripRepo) Delete(ctx context.Context, id uint) error {
	delete(r.trips, id)
	return nil
}

type memItineraryRepo struct {
	items  map[uint]*entity.ItineraryItem
	nextID uint
}

func newMemItineraryRepo() *memItineraryRepo {
	return &memItineraryRepo{items: make(map[uint]*entity.ItineraryItem)}
}

func (r *memItineraryRepo) Create(ctx context.Context, item *entity.ItineraryItem) error {
	r.nextID++
	item.ID = r.nextID
	r.items[item.ID] = item
	return nil
}

func (r *memItineraryRepo) GetByID(ctx context.Context, id uint) (*entity.ItineraryItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return item, nil
}

func (r *memItineraryRepo) GetByTrip(ctx context.Context, tripID uint) ([]*entity.ItineraryItem, error) {
	var out []*entity.ItineraryItem
	for _, item := range r.items {
		if item.TripID == tripID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *memItineraryRepo) Update(ctx context.Context, item *entity.ItineraryItem) error {
	r.items[item.ID] = item
	return nil
}

func (r *memItineraryRepo) Delete(ctx context.Context, id uint) error {
	delete(r.items, id)
	return nil
}

type memExpenseRepo struct {
	expenses map[uint]*entity.Expense
	nextID   uint
}

func newMemExpenseRepo() *memExpenseRepo {
	return &memExpenseRepo{expenses: make(map[uint]*entity.Expense)}
}

func (r *memExpenseRepo) Create(ctx context.Context, expense *entity.Expense) error {
	r.nextID++
	expense.ID = r.nextID
	r.expenses[expense.ID] = expense
	return nil
}

func (r *memExpenseRepo) GetByID(ctx context.Context, id uint) (*entity.Expense, error) {
	expense, ok := r.expenses[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return expense, nil
}

func (r *memExpenseRepo) GetAll(ctx context.Context) ([]*entity.Expense, error) {
	var out []*entity.Expense
	for _, expense := range r.expenses {
		out = append(out, expense)
	}
	return out, nil
}

func (r *memExpenseRepo) GetByTrip(ctx context.Context, tripID uint) ([]*entity.Expense, error) {
	var out []*entity.Expense
	for _, expense := range r.expenses {
		if expense.TripID != nil && *expense.TripID == tripID {
			out = append(out, expense)
		}
	}
	return out, nil
}

func (r *memExpenseRepo) TotalUSD(ctx context.Context, tripID *uint) (float64, error) {
	var total float64
	for _, expense := range r.expenses {
		if tripID == nil || (expense.TripID != nil && *expense.TripID == *tripID) {
			total += expense.AmountUSD
		}
	}
	return total, nil
}

func (r *memExpenseRepo) Update(ctx context.Context, expense *entity.Expense) error {
	r.expenses[expense.ID] = expense
	return nil
}

func (r *memExpenseRepo) Delete(ctx context.Context, id uint) error {
	delete(r.expenses, id)
	return nil
}

type memReminderRepo struct {
	reminders map[uint]*entity.Reminder
	nextID    uint
}

func newMemReminderRepo() *memReminderRepo {
	return &memReminderRepo{reminders: make(map[uint]*entity.Reminder)}
}

func (r *memReminderRepo) Create(ctx context.Context, reminder *entity.Reminder) error {
	r.nextID++
	reminder.ID = r.nextID
	r.reminders[reminder.ID] = reminder
	return nil
}

func (r *memReminderRepo) GetByID(ctx context.Context, id uint) (*entity.Reminder, error) {
	reminder, ok := r.reminders[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return reminder, nil
}

func (r *memReminderRepo) GetAll(ctx context.Context) ([]*entity.Reminder, error) {
	var out []*entity.Reminder
	for _, reminder := range r.reminders {
		out = append(out, reminder)
	}
	return out, nil
}

func (r *memReminderRepo) FindDue(ctx context.Context, beforeMillis int64, limit int) ([]*entity.Reminder, error) {
	var out []*entity.Reminder
	for _, reminder := range r.reminders {
		if !reminder.Notified && reminder.DateTime <= beforeMillis {
			out = append(out, reminder)
		}
	}
	return out, nil
}

func (r *memReminderRepo) MarkNotified(ctx context.Context, id uint) error {
	if reminder, ok := r.reminders[id]; ok {
		reminder.Notified = true
	}
	return nil
}

func (r *memReminderRepo) Update(ctx context.Context, reminder *entity.Reminder) error {
	r.reminders[reminder.ID] = reminder
	return nil
}

func (r *memReminderRepo) Delete(ctx context.Context, id uint) error {
	delete(r.reminders, id)
	return nil
}

type memPlaceRepo struct {
	places map[uint]*entity.FavoritePlace
	nextID uint
}

func newMemPlaceRepo() *memPlaceRepo {
	return &memPlaceRepo{places: make(map[uint]*entity.FavoritePlace)}
}

func (r *memPlaceRepo) Create(ctx context.Context, place *entity.FavoritePlace) error {
	r.nextID++
	place.ID = r.nextID
	r.places[place.ID] = place
	return nil
}

func (r *memPlaceRepo) GetAll(ctx context.Context) ([]*entity.FavoritePlace, error) {
	var out []*entity.FavoritePlace
	for _, place := range r.places {
		out = append(out, place)
	}
	return out, nil
}

func (r *memPlaceRepo) Search(ctx context.Context, query string) ([]*entity.FavoritePlace, error) {
	var out []*entity.FavoritePlace
	for _, place := range r.places {
		if place.Name == query {
			out = append(out, place)
		}
	}
	return out, nil
}

func (r *memPlaceRepo) Delete(ctx context.Context, id uint) error {
	delete(r.places, id)
	return nil
}

type memUserRepo struct {
	users  map[string]*entity.User
	nextID uint
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*entity.User)}
}

func (r *memUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.nextID++
	user.ID = r.nextID
	r.users[user.Email] = user
	return nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, errors.New("not found")
	}
	return user, nil
}

func (r *memUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.users[user.Email] = user
	return nil
}

type memEmailRepo struct {
	emails map[string]*entity.Email
}

func newMemEmailRepo() *memEmailRepo {
	return &memEmailRepo{emails: make(map[string]*entity.Email)}
}

func (r *memEmailRepo) Save(ctx context.Context, email *entity.Email) error {
	if email.ImportStatus == "" {
		email.ImportStatus = entity.StatusPending
	}
	r.emails[email.EmailID] = email
	return nil
}

func (r *memEmailRepo) FindUnprocessed(ctx context.Context, limit int) ([]*entity.Email, error) {
	var out []*entity.Email
	for _, email := range r.emails {
		if email.ImportStatus == entity.StatusPending {
			out = append(out, email)
		}
	}
	return out, nil
}

func (r *memEmailRepo) FindByEmailID(ctx context.Context, emailID string) (*entity.Email, error) {
	return r.emails[emailID], nil
}

func (r *memEmailRepo) FindByEmailIDs(ctx context.Context, emailIDs []string) (map[string]*entity.Email, error) {
	out := make(map[string]*entity.Email)
	for _, id := range emailIDs {
		if email, ok := r.emails[id]; ok {
			out[id] = email
		}
	}
	return out, nil
}

func (r *memEmailRepo) GetLastEmail(ctx context.Context) (*entity.Email, error) {
	return nil, nil
}

func (r *memEmailRepo) UpdateStatus(ctx context.Context, emailID string, status string, startedAt time.Time) error {
	if email, ok := r.emails[emailID]; ok {
		email.ImportStatus = status
		email.ImportStartedAt = startedAt
	}
	return nil
}

func (r *memEmailRepo) MarkAsImported(ctx context.Context, emailID, status, importerType, errorDetail string, extractedData map[string]interface{}) error {
	if email, ok := r.emails[emailID]; ok {
		email.ImportStatus = status
		email.ImporterType = importerType
		email.ErrorDetail = errorDetail
		email.ExtractedData = extractedData
		email.ImportedAt = time.Now()
	}
	return nil
}

func (r *memEmailRepo) UpdateImportSteps(ctx context.Context, emailID string, steps entity.ImportSteps) error {
	if email, ok := r.emails[emailID]; ok {
		email.ImportSteps = steps
	}
	return nil
}

func (r *memEmailRepo) ResetProcessingEmails(ctx context.Context) error {
	return nil
}

func newTestServer(t *testing.T) (*gin.Engine, *memTripRepo, *memExpenseRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewNop()
	tripRepo := newMemTripRepo()
	itineraryRepo := newMemItineraryRepo()
	expenseRepo := newMemExpenseRepo()
	reminderRepo := newMemReminderRepo()
	placeRepo := newMemPlaceRepo()
	userRepo := newMemUserRepo()
	emailRepo := newMemEmailRepo()

	subjectRouter := router.NewSubjectRouter(log)
	subjectRouter.Register(usecase.NewBookingImportHandler(emailRepo, tripRepo, itineraryRepo, log, testMetrics))
	importer := usecase.NewImportProcessor(emailRepo, subjectRouter, log, testMetrics, 100)

	// Unreachable API base keeps conversions on the offline table
	converter := currency.NewConverter("http://unreachable.invalid", time.Minute, log, nil)

	handler := NewHandler(tripRepo, itineraryRepo, expenseRepo, reminderRepo, placeRepo,
		userRepo, emailRepo, importer, converter, log, "test")

	engine := gin.New()
	handler.RegisterRoutes(engine)
	return engine, tripRepo, expenseRepo
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	engine, _, _ := newTestServer(t)

	w := doJSON(t, engine, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestTripLifecycle(t *testing.T) {
	engine, _, _ := newTestServer(t)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/trips", gin.H{
		"title":       "Sydney getaway",
		"destination": "SYD",
		"startDate":   1710460800000,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var trip entity.Trip
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &trip))
	assert.Equal(t, entity.TripPlanned, trip.Status)

	w = doJSON(t, engine, http.MethodGet, "/api/v1/trips/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodDelete, "/api/v1/trips/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodGet, "/api/v1/trips/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateTripValidation(t *testing.T) {
	engine, _, _ := newTestServer(t)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/trips", gin.H{"destination": "SYD"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateExpenseConvertsToUSD(t *testing.T) {
	engine, tripRepo, _ := newTestServer(t)

	trip := &entity.Trip{Title: "Paris"}
	require.NoError(t, tripRepo.Create(context.Background(), trip))

	w := doJSON(t, engine, http.MethodPost, "/api/v1/expenses", gin.H{
		"tripId":   trip.ID,
		"title":    "Dinner",
		"amount":   100.0,
		"currency": "EUR",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var expense entity.Expense
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &expense))
	assert.InDelta(t, 110.0, expense.AmountUSD, 1e-9)

	// Trip spent tracks the USD total
	assert.InDelta(t, 110.0, tripRepo.trips[trip.ID].SpentAmount, 1e-9)

	w = doJSON(t, engine, http.MethodGet, "/api/v1/expenses/summary?tripId=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "110")
}

func TestImportEmailEndpoint(t *testing.T) {
	engine, tripRepo, _ := newTestServer(t)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/import", gin.H{
		"subject": "Booking confirmation",
		"body":    "Destination: Tokyo\nFlight: NH880 from Sydney to Tokyo\n",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"COMPLETED"`)

	trips, err := tripRepo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, "Tokyo", trips[0].Destination)
}

func TestImportEmailWithoutSubjectStillImports(t *testing.T) {
	engine, tripRepo, _ := newTestServer(t)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/import", gin.H{
		"body": "just some pasted text",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"COMPLETED"`)

	trips, err := tripRepo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, "Imported Trip", trips[0].Title)
}

func TestListCurrencies(t *testing.T) {
	engine, _, _ := newTestServer(t)

	w := doJSON(t, engine, http.MethodGet, "/api/v1/currencies", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "USD")
}

func TestProfileUpsert(t *testing.T) {
	engine, _, _ := newTestServer(t)

	w := doJSON(t, engine, http.MethodPut, "/api/v1/profile", gin.H{
		"name":  "Alex",
		"email": "alex@example.com",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, engine, http.MethodPut, "/api/v1/profile", gin.H{
		"name":  "Alex T",
		"email": "alex@example.com",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodGet, "/api/v1/profile?email=alex@example.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Alex T"`)
}

func TestExportPDF(t *testing.T) {
	engine, tripRepo, _ := newTestServer(t)
	require.NoError(t, tripRepo.Create(context.Background(), &entity.Trip{Title: "Rome"}))

	w := doJSON(t, engine, http.MethodGet, "/api/v1/export/pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF", w.Body.String()[:4])
}

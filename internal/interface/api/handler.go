// Package api exposes the travel data over a JSON REST interface.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"travella-service/internal/domain/repository"
	"travella-service/internal/usecase"
	"travella-service/pkg/currency"
	"travella-service/pkg/logger"
)

// Handler handles HTTP requests for the travel API
type Handler struct {
	tripRepo      repository.TripRepository
	itineraryRepo repository.ItineraryRepository
	expenseRepo   repository.ExpenseRepository
	reminderRepo  repository.ReminderRepository
	placeRepo     repository.PlaceRepository
	userRepo      repository.UserRepository
	emailRepo     repository.EmailRepository
	importer      *usecase.ImportProcessor
	converter     *currency.Converter
	logger        logger.Logger
	appVersion    string
}

// NewHandler creates a new API handler
func NewHandler(
	tripRepo repository.TripRepository,
	itineraryRepo repository.ItineraryRepository,
	expenseRepo repository.ExpenseRepository,
	reminderRepo repository.ReminderRepository,
	placeRepo repository.PlaceRepository,
	userRepo repository.UserRepository,
	emailRepo repository.EmailRepository,
	importer *usecase.ImportProcessor,
	converter *currency.Converter,
	logger logger.Logger,
	appVersion string,
) *Handler {
	return &Handler{
		tripRepo:      tripRepo,
		itineraryRepo: itineraryRepo,
		expenseRepo:   expenseRepo,
		reminderRepo:  reminderRepo,
		placeRepo:     placeRepo,
		userRepo:      userRepo,
		emailRepo:     emailRepo,
		importer:      importer,
		converter:     converter,
		logger:        logger,
		appVersion:    appVersion,
	}
}

// RegisterRoutes wires all endpoints onto the engine
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		v1.GET("/trips", h.ListTrips)
		v1.POST("/trips", h.CreateTrip)
		v1.GET("/trips/:id", h.GetTrip)
		v1.PUT("/trips/:id", h.UpdateTrip)
		v1.DELETE("/trips/:id", h.DeleteTrip)
		v1.GET("/trips/:id/itinerary", h.ListItinerary)
		v1.POST("/trips/:id/itinerary", h.CreateItineraryItem)

		v1.PUT("/itinerary/:id", h.UpdateItineraryItem)
		v1.DELETE("/itinerary/:id", h.DeleteItineraryItem)

		v1.GET("/expenses", h.ListExpenses)
		v1.POST("/expenses", h.CreateExpense)
		v1.GET("/expenses/summary", h.ExpenseSummary)
		v1.PUT("/expenses/:id", h.UpdateExpense)
		v1.DELETE("/expenses/:id", h.DeleteExpense)

		v1.GET("/reminders", h.ListReminders)
		v1.POST("/reminders", h.CreateReminder)
		v1.PUT("/reminders/:id", h.UpdateReminder)
		v1.DELETE("/reminders/:id", h.DeleteReminder)

		v1.GET("/places", h.ListPlaces)
		v1.POST("/places", h.CreatePlace)
		v1.DELETE("/places/:id", h.DeletePlace)

		v1.GET("/profile", h.GetProfile)
		v1.PUT("/profile", h.PutProfile)

		v1.POST("/import", h.ImportEmail)
		v1.GET("/export/pdf", h.ExportPDF)
		v1.GET("/currencies", h.ListCurrencies)
	}
}

// Health reports service liveness
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": h.appVersion,
	})
}

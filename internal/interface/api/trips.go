package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"travella-service/internal/domain/entity"
)

type tripRequest struct {
	Title       string  `json:"title" binding:"required"`
	Destination string  `json:"destination"`
	StartDate   int64   `json:"startDate"`
	EndDate     int64   `json:"endDate"`
	Status      string  `json:"status"`
	Type        string  `json:"type"`
	TotalBudget float64 `json:"totalBudget"`
	ImageURL    string  `json:"imageUrl"`
	Notes       string  `json:"notes"`
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// ListTrips returns all trips, optionally filtered by status or upcoming
func (h *Handler) ListTrips(c *gin.Context) {
	var (
		trips []*entity.Trip
		err   error
	)

	switch {
	case c.Query("upcoming") == "true":
		trips, err = h.tripRepo.GetUpcoming(c.Request.Context(), time.Now().UnixMilli())
	case c.Query("status") != "":
		trips, err = h.tripRepo.GetByStatus(c.Request.Context(), c.Query("status"))
	default:
		trips, err = h.tripRepo.GetAll(c.Request.Context())
	}

	if err != nil {
		h.logger.Error("Failed to list trips", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list trips"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": trips})
}

// CreateTrip creates a new trip
func (h *Handler) CreateTrip(c *gin.Context) {
	var req tripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trip := &entity.Trip{
		Title:       req.Title,
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      req.Status,
		Type:        req.Type,
		TotalBudget: req.TotalBudget,
		ImageURL:    req.ImageURL,
		Notes:       req.Notes,
	}
	if trip.Status == "" {
		trip.Status = entity.TripPlanned
	}
	if trip.Type == "" {
		trip.Type = entity.TripLeisure
	}

	if err := h.tripRepo.Create(c.Request.Context(), trip); err != nil {
		h.logger.Error("Failed to create trip", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create trip"})
		return
	}
	c.JSON(http.StatusCreated, trip)
}

// GetTrip returns a single trip by ID
func (h *Handler) GetTrip(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	trip, err := h.tripRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "trip not found"})
		return
	}
	c.JSON(http.StatusOK, trip)
}

// UpdateTrip updates an existing trip
func (h *Handler) UpdateTrip(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	trip, err := h.tripRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "trip not found"})
		return
	}

	var req tripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trip.Title = req.Title
	trip.Destination = req.Destination
	trip.StartDate = req.StartDate
	trip.EndDate = req.EndDate
	if req.Status != "" {
		trip.Status = req.Status
	}
	if req.Type != "" {
		trip.Type = req.Type
	}
	trip.TotalBudget = req.TotalBudget
	trip.ImageURL = req.ImageURL
	trip.Notes = req.Notes

	if err := h.tripRepo.Update(c.Request.Context(), trip); err != nil {
		h.logger.Error("Failed to update trip", "tripID", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update trip"})
		return
	}
	c.JSON(http.StatusOK, trip)
}

// DeleteTrip removes a trip
func (h *Handler) DeleteTrip(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.tripRepo.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("Failed to delete trip", "tripID", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete trip"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

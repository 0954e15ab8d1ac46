package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travella-service/internal/domain/entity"
)

type itineraryRequest struct {
	Type               string  `json:"type" binding:"required"`
	Title              string  `json:"title" binding:"required"`
	Description        string  `json:"description"`
	StartTime          int64   `json:"startTime"`
	EndTime            int64   `json:"endTime"`
	Location           string  `json:"location"`
	ConfirmationNumber string  `json:"confirmationNumber"`
	Cost               float64 `json:"cost"`
	Status             string  `json:"status"`

	Airline          *string `json:"airline"`
	FlightNumber     *string `json:"flightNumber"`
	Gate             *string `json:"gate"`
	Terminal         *string `json:"terminal"`
	HotelName        *string `json:"hotelName"`
	RoomNumber       *string `json:"roomNumber"`
	CheckInDate      *int64  `json:"checkInDate"`
	CheckOutDate     *int64  `json:"checkOutDate"`
	ActivityName     *string `json:"activityName"`
	ActivityDuration *string `json:"activityDuration"`
	BookingReference *string `json:"bookingReference"`
}

func (req *itineraryRequest) apply(item *entity.ItineraryItem) {
	item.Type = entity.ItineraryTypeFromTag(req.Type)
	item.Title = req.Title
	item.Description = req.Description
	item.StartTime = req.StartTime
	item.EndTime = req.EndTime
	item.Location = req.Location
	item.ConfirmationNumber = req.ConfirmationNumber
	item.Cost = req.Cost
	item.Status = req.Status
	item.Airline = req.Airline
	item.FlightNumber = req.FlightNumber
	item.Gate = req.Gate
	item.Terminal = req.Terminal
	item.HotelName = req.HotelName
	item.RoomNumber = req.RoomNumber
	item.CheckInDate = req.CheckInDate
	item.CheckOutDate = req.CheckOutDate
	item.ActivityName = req.ActivityName
	item.ActivityDuration = req.ActivityDuration
	item.BookingReference = req.BookingReference
}

// ListItinerary returns all itinerary items for a trip
func (h *Handler) ListItinerary(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	items, err := h.itineraryRepo.GetByTrip(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to list itinerary", "tripID", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list itinerary"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// CreateItineraryItem adds an item to a trip
func (h *Handler) CreateItineraryItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if _, err := h.tripRepo.GetByID(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "trip not found"})
		return
	}

	var req itineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := &entity.ItineraryItem{TripID: id}
	req.apply(item)

	if err := h.itineraryRepo.Create(c.Request.Context(), item); err != nil {
		h.logger.Error("Failed to create itinerary item", "tripID", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create itinerary item"})
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateItineraryItem updates an existing itinerary item
func (h *Handler) UpdateItineraryItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	item, err := h.itineraryRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "itinerary item not found"})
		return
	}

	var req itineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req.apply(item)

	if err := h.itineraryRepo.Update(c.Request.Context(), item); err != nil {
		h.logger.Error("Failed to update itinerary item", "itemID", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update itinerary item"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteItineraryItem removes an itinerary item
func (h *Handler) DeleteItineraryItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.itineraryRepo.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("Failed to delete itinerary item", "itemID", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete itinerary item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

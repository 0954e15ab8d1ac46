package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travella-service/internal/domain/entity"
)

type placeRequest struct {
	Name    string  `json:"name" binding:"required"`
	Address *string `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Notes   *string `json:"notes"`
}

// ListPlaces returns favorite places, filtered by ?q= when present
func (h *Handler) ListPlaces(c *gin.Context) {
	var (
		places []*entity.FavoritePlace
		err    error
	)
	if q := c.Query("q"); q != "" {
		places, err = h.placeRepo.Search(c.Request.Context(), q)
	} else {
		places, err = h.placeRepo.GetAll(c.Request.Context())
	}
	if err != nil {
		h.logger.Error("Failed to list places", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list places"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"places": places})
}

// CreatePlace saves a favorite place
func (h *Handler) CreatePlace(c *gin.Context) {
	var req placeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	place := &entity.FavoritePlace{
		Name:    req.Name,
		Address: req.Address,
		Lat:     req.Lat,
		Lng:     req.Lng,
		Notes:   req.Notes,
	}
	if err := h.placeRepo.Create(c.Request.Context(), place); err != nil {
		h.logger.Error("Failed to create place", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create place"})
		return
	}
	c.JSON(http.StatusCreated, place)
}

// DeletePlace removes a favorite place
func (h *Handler) DeletePlace(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.placeRepo.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("Failed to delete place", "placeID", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete place"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

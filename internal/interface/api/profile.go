package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travella-service/internal/domain/entity"
)

type profileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email" binding:"required,email"`
}

type profileResponse struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// GetProfile returns the account for ?email=
func (h *Handler) GetProfile(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing email parameter"})
		return
	}

	user, err := h.userRepo.GetByEmail(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	c.JSON(http.StatusOK, profileResponse{Name: user.Name, Phone: user.Phone, Email: user.Email})
}

// PutProfile creates or updates the account keyed by email
func (h *Handler) PutProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userRepo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		user = &entity.User{Name: req.Name, Phone: req.Phone, Email: req.Email}
		if err := h.userRepo.Create(c.Request.Context(), user); err != nil {
			h.logger.Error("Failed to create profile", "email", req.Email, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save profile"})
			return
		}
		c.JSON(http.StatusCreated, profileResponse{Name: user.Name, Phone: user.Phone, Email: user.Email})
		return
	}

	user.Name = req.Name
	user.Phone = req.Phone
	if err := h.userRepo.Update(c.Request.Context(), user); err != nil {
		h.logger.Error("Failed to update profile", "email", req.Email, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save profile"})
		return
	}
	c.JSON(http.StatusOK, profileResponse{Name: user.Name, Phone: user.Phone, Email: user.Email})
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travella-service/internal/domain/entity"
)

type reminderRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	DateTime    int64  `json:"dateTime" binding:"required"`
}

// ListReminders returns all reminders
func (h *Handler) ListReminders(c *gin.Context) {
	reminders, err := h.reminderRepo.GetAll(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list reminders", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reminders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reminders": reminders})
}

// CreateReminder schedules a reminder
func (h *Handler) CreateReminder(c *gin.Context) {
	var req reminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reminder := &entity.Reminder{
		Title:       req.Title,
		Description: req.Description,
		DateTime:    req.DateTime,
	}
	if err := h.reminderRepo.Create(c.Request.Context(), reminder); err != nil {
		h.logger.Error("Failed to create reminder", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create reminder"})
		return
	}
	c.JSON(http.StatusCreated, reminder)
}

// UpdateReminder reschedules or renames a reminder
func (h *Handler) UpdateReminder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	reminder, err := h.reminderRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "reminder not found"})
		return
	}

	var req reminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reminder.Title = req.Title
	reminder.Description = req.Description
	if req.DateTime != reminder.DateTime {
		// Rescheduling re-arms an already fired reminder
		reminder.DateTime = req.DateTime
		reminder.Notified = false
	}

	if err := h.reminderRepo.Update(c.Request.Context(), reminder); err != nil {
		h.logger.Error("Failed to update reminder", "reminderID", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update reminder"})
		return
	}
	c.JSON(http.StatusOK, reminder)
}

// DeleteReminder removes a reminder
func (h *Handler) DeleteReminder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.reminderRepo.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("Failed to delete reminder", "reminderID", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete reminder"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

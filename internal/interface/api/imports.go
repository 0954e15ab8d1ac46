package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"travella-service/internal/domain/entity"
	"travella-service/internal/usecase"
	"travella-service/pkg/export"
)

type importRequest struct {
	Subject     string             `json:"subject"`
	From        string             `json:"from"`
	Body        string             `json:"body" binding:"required"`
	Attachments []importAttachment `json:"attachments"`
}

type importAttachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

// ImportEmail accepts pasted booking text and imports it synchronously
func (h *Handler) ImportEmail(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subject := req.Subject
	if subject == "" {
		// Direct imports always go through the booking handler
		subject = usecase.ManualImportSubject
	}

	email := &entity.Email{
		EmailID:    "manual-" + uuid.NewString(),
		From:       req.From,
		Subject:    subject,
		Body:       req.Body,
		ReceivedAt: time.Now(),
	}
	for _, att := range req.Attachments {
		email.Attachments = append(email.Attachments, entity.Attachment{
			Filename:    att.Filename,
			ContentType: att.ContentType,
			Data:        []byte(att.Content),
		})
	}

	if err := h.emailRepo.Save(c.Request.Context(), email); err != nil {
		h.logger.Error("Failed to save manual import", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save import"})
		return
	}

	if err := h.importer.ProcessEmail(c.Request.Context(), email); err != nil {
		h.logger.Error("Failed to import email", "emailID", email.EmailID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to import email"})
		return
	}

	imported, err := h.emailRepo.FindByEmailID(c.Request.Context(), email.EmailID)
	if err != nil || imported == nil {
		c.JSON(http.StatusOK, gin.H{"emailId": email.EmailID})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"emailId":   imported.EmailID,
		"status":    imported.ImportStatus,
		"extracted": imported.ExtractedData,
	})
}

// ExportPDF renders all trips and expenses as a PDF document
func (h *Handler) ExportPDF(c *gin.Context) {
	trips, err := h.tripRepo.GetAll(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to load trips for export", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export"})
		return
	}
	expenses, err := h.expenseRepo.GetAll(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to load expenses for export", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export"})
		return
	}

	pdf, err := export.RenderPDF(export.TripExport{
		Trips:       trips,
		Expenses:    expenses,
		GeneratedAt: time.Now(),
	})
	if err != nil {
		h.logger.Error("Failed to render export PDF", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=travella-export.pdf")
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// ListCurrencies returns the currency codes conversions support offline
func (h *Handler) ListCurrencies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"currencies": h.converter.SupportedCurrencies()})
}

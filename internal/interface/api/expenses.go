package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"travella-service/internal/domain/entity"
)

type expenseRequest struct {
	TripID        *uint   `json:"tripId"`
	Title         string  `json:"title" binding:"required"`
	Amount        float64 `json:"amount" binding:"required"`
	Currency      string  `json:"currency"`
	Category      string  `json:"category"`
	Date          int64   `json:"date"`
	PaymentMethod string  `json:"paymentMethod"`
	Description   string  `json:"description"`
	Location      string  `json:"location"`
	IsRecurring   bool    `json:"isRecurring"`
	Tags          string  `json:"tags"`
}

func queryTripID(c *gin.Context) (*uint, bool) {
	raw := c.Query("tripId")
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tripId"})
		return nil, false
	}
	tripID := uint(id)
	return &tripID, true
}

// ListExpenses returns expenses, optionally filtered by trip
func (h *Handler) ListExpenses(c *gin.Context) {
	tripID, ok := queryTripID(c)
	if !ok {
		return
	}

	var (
		expenses []*entity.Expense
		err      error
	)
	if tripID != nil {
		expenses, err = h.expenseRepo.GetByTrip(c.Request.Context(), *tripID)
	} else {
		expenses, err = h.expenseRepo.GetAll(c.Request.Context())
	}
	if err != nil {
		h.logger.Error("Failed to list expenses", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list expenses"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"expenses": expenses})
}

// CreateExpense logs an expense, converting the amount to USD
func (h *Handler) CreateExpense(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Currency == "" {
		req.Currency = "USD"
	}

	expense := &entity.Expense{
		TripID:        req.TripID,
		Title:         req.Title,
		Amount:        req.Amount,
		Currency:      req.Currency,
		AmountUSD:     h.converter.Convert(c.Request.Context(), req.Amount, req.Currency, "USD"),
		Category:      req.Category,
		Date:          req.Date,
		PaymentMethod: req.PaymentMethod,
		Description:   req.Description,
		Location:      req.Location,
		IsRecurring:   req.IsRecurring,
		Tags:          req.Tags,
	}

	if err := h.expenseRepo.Create(c.Request.Context(), expense); err != nil {
		h.logger.Error("Failed to create expense", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create expense"})
		return
	}

	if expense.TripID != nil {
		h.refreshTripSpent(c, *expense.TripID)
	}

	c.JSON(http.StatusCreated, expense)
}

// ExpenseSummary returns the USD total, optionally scoped to one trip
func (h *Handler) ExpenseSummary(c *gin.Context) {
	tripID, ok := queryTripID(c)
	if !ok {
		return
	}

	total, err := h.expenseRepo.TotalUSD(c.Request.Context(), tripID)
	if err != nil {
		h.logger.Error("Failed to total expenses", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to total expenses"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"totalUsd": total})
}

// UpdateExpense updates an existing expense
func (h *Handler) UpdateExpense(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	expense, err := h.expenseRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
		return
	}

	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Currency == "" {
		req.Currency = "USD"
	}

	expense.TripID = req.TripID
	expense.Title = req.Title
	expense.Amount = req.Amount
	expense.Currency = req.Currency
	expense.AmountUSD = h.converter.Convert(c.Request.Context(), req.Amount, req.Currency, "USD")
	expense.Category = req.Category
	expense.Date = req.Date
	expense.PaymentMethod = req.PaymentMethod
	expense.Description = req.Description
	expense.Location = req.Location
	expense.IsRecurring = req.IsRecurring
	expense.Tags = req.Tags

	if err := h.expenseRepo.Update(c.Request.Context(), expense); err != nil {
		h.logger.Error("Failed to update expense", "expenseID", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update expense"})
		return
	}

	if expense.TripID != nil {
		h.refreshTripSpent(c, *expense.TripID)
	}

	c.JSON(http.StatusOK, expense)
}

// DeleteExpense removes an expense
func (h *Handler) DeleteExpense(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	expense, err := h.expenseRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
		return
	}

	if err := h.expenseRepo.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("Failed to delete expense", "expenseID", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete expense"})
		return
	}

	if expense.TripID != nil {
		h.refreshTripSpent(c, *expense.TripID)
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// refreshTripSpent recomputes a trip's spent amount from its expenses
func (h *Handler) refreshTripSpent(c *gin.Context, tripID uint) {
	total, err := h.expenseRepo.TotalUSD(c.Request.Context(), &tripID)
	if err != nil {
		h.logger.Warn("Failed to recompute trip spent", "tripID", tripID, "error", err)
		return
	}
	if err := h.tripRepo.UpdateSpent(c.Request.Context(), tripID, total); err != nil {
		h.logger.Warn("Failed to update trip spent", "tripID", tripID, "error", err)
	}
}

package repository

import (
	"context"

	"travella-service/internal/domain/entity"
	"travella-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormExpenseRepository implements the ExpenseRepository interface
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GORM expense repository
func NewGormExpenseRepository(db *gorm.DB) repository.ExpenseRepository {
	return &GormExpenseRepository{
		db: db,
	}
}

// Expenses GORM model for database mapping
type Expenses struct {
	gorm.Model
	TripID        *uint   `gorm:"column:trip_id;index"`
	Title         string  `gorm:"column:title"`
	Amount        float64 `gorm:"column:amount"`
	Currency      string  `gorm:"column:currency"`
	AmountUSD     float64 `gorm:"column:amount_usd"`
	Category      string  `gorm:"column:category"`
	Date          int64   `gorm:"column:date"`
	PaymentMethod string  `gorm:"column:payment_method"`
	Description   string  `gorm:"column:description"`
	ReceiptPath   *string `gorm:"column:receipt_path"`
	Location      string  `gorm:"column:location"`
	IsRecurring   bool    `gorm:"column:is_recurring"`
	Tags          string  `gorm:"column:tags"`
}

// TableName overrides the default table name
func (Expenses) TableName() string {
	return "expenses"
}

func expenseModel(e *entity.Expense) *Expenses {
	m := &Expenses{
		TripID:        e.TripID,
		Title:         e.Title,
		Amount:        e.Amount,
		Currency:      e.Currency,
		AmountUSD:     e.AmountUSD,
		Category:      e.Category,
		Date:          e.Date,
		PaymentMethod: e.PaymentMethod,
		Description:   e.Description,
		ReceiptPath:   e.ReceiptPath,
		Location:      e.Location,
		IsRecurring:   e.IsRecurring,
		Tags:          e.Tags,
	}
	m.ID = e.ID
	return m
}

func expenseEntity(m *Expenses) *entity.Expense {
	return &entity.Expense{
		ID:            m.ID,
		TripID:        m.TripID,
		Title:         m.Title,
		Amount:        m.Amount,
		Currency:      m.Currency,
		AmountUSD:     m.AmountUSD,
		Category:      m.Category,
		Date:          m.Date,
		PaymentMethod: m.PaymentMethod,
		Description:   m.Description,
		ReceiptPath:   m.ReceiptPath,
		Location:      m.Location,
		IsRecurring:   m.IsRecurring,
		Tags:          m.Tags,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		DeletedAt:     m.DeletedAt,
	}
}

// Create inserts an expense and backfills the generated ID
func (r *GormExpenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	m := expenseModel(expense)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	expense.ID = m.ID
	return nil
}

// GetByID finds an expense by primary key
func (r *GormExpenseRepository) GetByID(ctx context.Context, id uint) (*entity.Expense, error) {
	var m Expenses
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return expenseEntity(&m), nil
}

// GetAll returns all expenses, most recent first
func (r *GormExpenseRepository) GetAll(ctx context.Context) ([]*entity.Expense, error) {
	var models []Expenses
	if err := r.db.WithContext(ctx).Order("date DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	return expenseEntities(models), nil
}

// GetByTrip returns a trip's expenses, most recent first
func (r *GormExpenseRepository) GetByTrip(ctx context.Context, tripID uint) ([]*entity.Expense, error) {
	var models []Expenses
	if err := r.db.WithContext(ctx).Where("trip_id = ?", tripID).Order("date DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	return expenseEntities(models), nil
}

// TotalUSD sums converted amounts, optionally scoped to one trip
func (r *GormExpenseRepository) TotalUSD(ctx context.Context, tripID *uint) (float64, error) {
	var total float64
	query := r.db.WithContext(ctx).Model(&Expenses{}).Select("COALESCE(SUM(amount_usd), 0)")
	if tripID != nil {
		query = query.Where("trip_id = ?", *tripID)
	}
	if err := query.Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// Update saves all expense fields
func (r *GormExpenseRepository) Update(ctx context.Context, expense *entity.Expense) error {
	return r.db.WithContext(ctx).Save(expenseModel(expense)).Error
}

// Delete soft-deletes an expense
func (r *GormExpenseRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Expenses{}, id).Error
}

func expenseEntities(models []Expenses) []*entity.Expense {
	expenses := make([]*entity.Expense, 0, len(models))
	for i := range models {
		expenses = append(expenses, expenseEntity(&models[i]))
	}
	return expenses
}

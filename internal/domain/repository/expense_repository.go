package repository

import (
	"context"

	"travella-service/internal/domain/entity"
)

// ExpenseRepository defines the interface for expense storage operations
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	GetByID(ctx context.Context, id uint) (*entity.Expense, error)
	GetAll(ctx context.Context) ([]*entity.Expense, error)
	GetByTrip(ctx context.Context, tripID uint) ([]*entity.Expense, error)
	TotalUSD(ctx context.Context, tripID *uint) (float64, error)
	Update(ctx context.Context, expense *entity.Expense) error
	Delete(ctx context.Context, id uint) error
}

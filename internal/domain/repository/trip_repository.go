package repository

import (
	"context"

	"travella-service/internal/domain/entity"
)

// TripRepository defines the interface for trip storage operations
type TripRepository interface {
	Create(ctx context.Context, trip *entity.Trip) error
	GetByID(ctx context.Context, id uint) (*entity.Trip, error)
	GetAll(ctx context.Context) ([]*entity.Trip, error)
	GetUpcoming(ctx context.Context, nowMillis int64) ([]*entity.Trip, error)
	GetByStatus(ctx context.Context, status string) ([]*entity.Trip, error)
	Update(ctx context.Context, trip *entity.Trip) error
	UpdateSpent(ctx context.Context, id uint, spent float64) error
	Delete(ctx context.Context, id uint) error
}

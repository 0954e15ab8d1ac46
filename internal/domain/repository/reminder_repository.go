package repository

import (
	"context"

	"travella-service/internal/domain/entity"
)

// ReminderRepository defines the interface for reminder operations
type ReminderRepository interface {
	Create(ctx context.Context, reminder *entity.Reminder) error
	GetByID(ctx context.Context, id uint) (*entity.Reminder, error)
	GetAll(ctx context.Context) ([]*entity.Reminder, error)
	FindDue(ctx context.Context, beforeMillis int64, limit int) ([]*entity.Reminder, error)
	MarkNotified(ctx context.Context, id uint) error
	Update(ctx context.Context, reminder *entity.Reminder) error
	Delete(ctx context.Context, id uint) error
}

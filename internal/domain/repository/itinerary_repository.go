package repository

import (
	"context"

	"travella-service/internal/domain/entity"
)

// ItineraryRepository defines the interface for itinerary item operations
type ItineraryRepository interface {
	Create(ctx context.Context, item *entity.ItineraryItem) error
	GetByID(ctx context.Context, id uint) (*entity.ItineraryItem, error)
	GetByTrip(ctx context.Context, tripID uint) ([]*entity.ItineraryItem, error)
	Update(ctx context.Context, item *entity.ItineraryItem) error
	Delete(ctx context.Context, id uint) error
}

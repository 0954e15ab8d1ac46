package repository

import (
	"context"

	"travella-service/internal/domain/entity"
)

// PlaceRepository defines the interface for favorite place operations
type PlaceRepository interface {
	Create(ctx context.Context, place *entity.FavoritePlace) error
	GetAll(ctx context.Context) ([]*entity.FavoritePlace, error)
	Search(ctx context.Context, query string) ([]*entity.FavoritePlace, error)
	Delete(ctx context.Context, id uint) error
}

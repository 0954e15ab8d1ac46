package repository

import (
	"context"

	"travella-service/internal/domain/entity"
	"travella-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormPlaceRepository implements the PlaceRepository interface
type GormPlaceRepository struct {
	db *gorm.DB
}

// NewGormPlaceRepository creates a new GORM favorite place repository
func NewGormPlaceRepository(db *gorm.DB) repository.PlaceRepository {
	return &GormPlaceRepository{
		db: db,
	}
}

// FavoritePlaces GORM model for database mapping
type FavoritePlaces struct {
	gorm.Model
	Name    string  `gorm:"column:name"`
	Address *string `gorm:"column:address"`
	Lat     float64 `gorm:"column:lat"`
	Lng     float64 `gorm:"column:lng"`
	Notes   *string `gorm:"column:notes"`
}

// TableName overrides the default table name
func (FavoritePlaces) TableName() string {
	return "favorite_places"
}

func placeEntity(m *FavoritePlaces) *entity.FavoritePlace {
	return &entity.FavoritePlace{
		ID:        m.ID,
		Name:      m.Name,
		Address:   m.Address,
		Lat:       m.Lat,
		Lng:       m.Lng,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		DeletedAt: m.DeletedAt,
	}
}

// Create inserts a favorite place and backfills the generated ID
func (r *GormPlaceRepository) Create(ctx context.Context, place *entity.FavoritePlace) error {
	m := &FavoritePlaces{
		Name:    place.Name,
		Address: place.Address,
		Lat:     place.Lat,
		Lng:     place.Lng,
		Notes:   place.Notes,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	place.ID = m.ID
	return nil
}

// GetAll returns all saved places
func (r *GormPlaceRepository) GetAll(ctx context.Context) ([]*entity.FavoritePlace, error) {
	var models []FavoritePlaces
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return placeEntities(models), nil
}

// Search matches place names and addresses case-insensitively
func (r *GormPlaceRepository) Search(ctx context.Context, query string) ([]*entity.FavoritePlace, error) {
	var models []FavoritePlaces
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("name ILIKE ? OR address ILIKE ?", pattern, pattern).
		Order("name ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return placeEntities(models), nil
}

// Delete soft-deletes a place
func (r *GormPlaceRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&FavoritePlaces{}, id).Error
}

func placeEntities(models []FavoritePlaces) []*entity.FavoritePlace {
	places := make([]*entity.FavoritePlace, 0, len(models))
	for i := range models {
		places = append(places, placeEntity(&models[i]))
	}
	return places
}

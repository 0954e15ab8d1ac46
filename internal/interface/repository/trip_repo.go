package repository

import (
	"context"

	"travella-service/internal/domain/entity"
	"travella-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormTripRepository implements the TripRepository interface
type GormTripRepository struct {
	db *gorm.DB
}

// NewGormTripRepository creates a new GORM trip repository
func NewGormTripRepository(db *gorm.DB) repository.TripRepository {
	return &GormTripRepository{
		db: db,
	}
}

// Trips GORM model for database mapping
type Trips struct {
	gorm.Model
	Title       string  `gorm:"column:title"`
	Destination string  `gorm:"column:destination"`
	StartDate   int64   `gorm:"column:start_date"`
	EndDate     int64   `gorm:"column:end_date"`
	Status      string  `gorm:"column:status;index"`
	Type        string  `gorm:"column:type"`
	TotalBudget float64 `gorm:"column:total_budget"`
	SpentAmount float64 `gorm:"column:spent_amount"`
	ImageURL    string  `gorm:"column:image_url"`
	Notes       string  `gorm:"column:notes"`
	IsCompleted bool    `gorm:"column:is_completed"`
}

// TableName overrides the default table name
func (Trips) TableName() string {
	return "trips"
}

func tripModel(trip *entity.Trip) *Trips {
	m := &Trips{
		Title:       trip.Title,
		Destination: trip.Destination,
		StartDate:   trip.StartDate,
		EndDate:     trip.EndDate,
		Status:      trip.Status,
		Type:        trip.Type,
		TotalBudget: trip.TotalBudget,
		SpentAmount: trip.SpentAmount,
		ImageURL:    trip.ImageURL,
		Notes:       trip.Notes,
		IsCompleted: trip.IsCompleted,
	}
	m.ID = trip.ID
	return m
}

func tripEntity(m *Trips) *entity.Trip {
	return &entity.Trip{
		ID:          m.ID,
		Title:       m.Title,
		Destination: m.Destination,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		Status:      m.Status,
		Type:        m.Type,
		TotalBudget: m.TotalBudget,
		SpentAmount: m.SpentAmount,
		ImageURL:    m.ImageURL,
		Notes:       m.Notes,
		IsCompleted: m.IsCompleted,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		DeletedAt:   m.DeletedAt,
	}
}

// Create inserts a trip and backfills the generated ID
func (r *GormTripRepository) Create(ctx context.Context, trip *entity.Trip) error {
	m := tripModel(trip)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	trip.ID = m.ID
	trip.CreatedAt = m.CreatedAt
	return nil
}

// GetByID finds a trip by primary key
func (r *GormTripRepository) GetByID(ctx context.Context, id uint) (*entity.Trip, error) {
	var m Trips
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return tripEntity(&m), nil
}

// GetAll returns all trips, most recent first
func (r *GormTripRepository) GetAll(ctx context.Context) ([]*entity.Trip, error) {
	var models []Trips
	if err := r.db.WithContext(ctx).Order("start_date DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	return tripEntities(models), nil
}

// GetUpcoming returns trips that have not ended yet
func (r *GormTripRepository) GetUpcoming(ctx context.Context, nowMillis int64) ([]*entity.Trip, error) {
	var models []Trips
	if err := r.db.WithContext(ctx).Where("end_date >= ?", nowMillis).Order("start_date ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return tripEntities(models), nil
}

// GetByStatus returns trips with the given status
func (r *GormTripRepository) GetByStatus(ctx context.Context, status string) ([]*entity.Trip, error) {
	var models []Trips
	if err := r.db.WithContext(ctx).Where("status = ?", status).Order("start_date ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return tripEntities(models), nil
}

// Update saves all trip fields
func (r *GormTripRepository) Update(ctx context.Context, trip *entity.Trip) error {
	return r.db.WithContext(ctx).Save(tripModel(trip)).Error
}

// UpdateSpent updates just the spent amount
func (r *GormTripRepository) UpdateSpent(ctx context.Context, id uint, spent float64) error {
	return r.db.WithContext(ctx).Model(&Trips{}).Where("id = ?", id).Update("spent_amount", spent).Error
}

// Delete soft-deletes a trip
func (r *GormTripRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Trips{}, id).Error
}

func tripEntities(models []Trips) []*entity.Trip {
	trips := make([]*entity.Trip, 0, len(models))
	for i := range models {
		trips = append(trips, tripEntity(&models[i]))
	}
	return trips
}

package repository

import (
	"context"

	"travella-service/internal/domain/entity"
	"travella-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormItineraryRepository implements the ItineraryRepository interface
type GormItineraryRepository struct {
	db *gorm.DB
}

// NewGormItineraryRepository creates a new GORM itinerary repository
func NewGormItineraryRepository(db *gorm.DB) repository.ItineraryRepository {
	return &GormItineraryRepository{
		db: db,
	}
}

// ItineraryItems GORM model for database mapping
type ItineraryItems struct {
	gorm.Model
	TripID             uint    `gorm:"column:trip_id;index"`
	Type               string  `gorm:"column:type"`
	Title              string  `gorm:"column:title"`
	Description        string  `gorm:"column:description"`
	StartTime          int64   `gorm:"column:start_time"`
	EndTime            int64   `gorm:"column:end_time"`
	Location           string  `gorm:"column:location"`
	ConfirmationNumber string  `gorm:"column:confirmation_number"`
	Cost               float64 `gorm:"column:cost"`
	Status             string  `gorm:"column:status"`
	Airline            *string `gorm:"column:airline"`
	FlightNumber       *string `gorm:"column:flight_number"`
	Gate               *string `gorm:"column:gate"`
	Terminal           *string `gorm:"column:terminal"`
	HotelName          *string `gorm:"column:hotel_name"`
	RoomNumber         *string `gorm:"column:room_number"`
	CheckInDate        *int64  `gorm:"column:check_in_date"`
	CheckOutDate       *int64  `gorm:"column:check_out_date"`
	ActivityName       *string `gorm:"column:activity_name"`
	ActivityDuration   *string `gorm:"column:activity_duration"`
	BookingReference   *string `gorm:"column:booking_reference"`
}

// TableName overrides the default table name
func (ItineraryItems) TableName() string {
	return "itinerary_items"
}

func itineraryModel(item *entity.ItineraryItem) *ItineraryItems {
	m := &ItineraryItems{
		TripID:             item.TripID,
		Type:               item.Type,
		Title:              item.Title,
		Description:        item.Description,
		StartTime:          item.StartTime,
		EndTime:            item.EndTime,
		Location:           item.Location,
		ConfirmationNumber: item.ConfirmationNumber,
		Cost:               item.Cost,
		Status:             item.Status,
		Airline:            item.Airline,
		FlightNumber:       item.FlightNumber,
		Gate:               item.Gate,
		Terminal:           item.Terminal,
		HotelName:          item.HotelName,
		RoomNumber:         item.RoomNumber,
		CheckInDate:        item.CheckInDate,
		CheckOutDate:       item.CheckOutDate,
		ActivityName:       item.ActivityName,
		ActivityDuration:   item.ActivityDuration,
		BookingReference:   item.BookingReference,
	}
	m.ID = item.ID
	return m
}

func itineraryEntity(m *ItineraryItems) *entity.ItineraryItem {
	return &entity.ItineraryItem{
		ID:                 m.ID,
		TripID:             m.TripID,
		Type:               m.Type,
		Title:              m.Title,
		Description:        m.Description,
		StartTime:          m.StartTime,
		EndTime:            m.EndTime,
		Location:           m.Location,
		ConfirmationNumber: m.ConfirmationNumber,
		Cost:               m.Cost,
		Status:             m.Status,
		Airline:            m.Airline,
		FlightNumber:       m.FlightNumber,
		Gate:               m.Gate,
		Terminal:           m.Terminal,
		HotelName:          m.HotelName,
		RoomNumber:         m.RoomNumber,
		CheckInDate:        m.CheckInDate,
		CheckOutDate:       m.CheckOutDate,
		ActivityName:       m.ActivityName,
		ActivityDuration:   m.ActivityDuration,
		BookingReference:   m.BookingReference,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
		DeletedAt:          m.DeletedAt,
	}
}

// Create inserts an itinerary item and backfills the generated ID
func (r *GormItineraryRepository) Create(ctx context.Context, item *entity.ItineraryItem) error {
	m := itineraryModel(item)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	item.ID = m.ID
	return nil
}

// GetByID finds an itinerary item by primary key
func (r *GormItineraryRepository) GetByID(ctx context.Context, id uint) (*entity.ItineraryItem, error) {
	var m ItineraryItems
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return itineraryEntity(&m), nil
}

// GetByTrip returns a trip's items ordered by start time
func (r *GormItineraryRepository) GetByTrip(ctx context.Context, tripID uint) ([]*entity.ItineraryItem, error) {
	var models []ItineraryItems
	if err := r.db.WithContext(ctx).Where("trip_id = ?", tripID).Order("start_time ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	items := make([]*entity.ItineraryItem, 0, len(models))
	for i := range models {
		items = append(items, itineraryEntity(&models[i]))
	}
	return items, nil
}

// Update saves all item fields
func (r *GormItineraryRepository) Update(ctx context.Context, item *entity.ItineraryItem) error {
	return r.db.WithContext(ctx).Save(itineraryModel(item)).Error
}

// Delete soft-deletes an itinerary item
func (r *GormItineraryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&ItineraryItems{}, id).Error
}

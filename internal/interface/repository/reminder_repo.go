package repository

import (
	"context"

	"travella-service/internal/domain/entity"
	"travella-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormReminderRepository implements the ReminderRepository interface
type GormReminderRepository struct {
	db *gorm.DB
}

// NewGormReminderRepository creates a new GORM reminder repository
func NewGormReminderRepository(db *gorm.DB) repository.ReminderRepository {
	return &GormReminderRepository{
		db: db,
	}
}

// Reminders GORM model for database mapping
type Reminders struct {
	gorm.Model
	Title       string `gorm:"column:title"`
	Description string `gorm:"column:description"`
	DateTime    int64  `gorm:"column:date_time;index"`
	Notified    bool   `gorm:"column:notified"`
}

// TableName overrides the default table name
func (Reminders) TableName() string {
	return "reminders"
}

func reminderEntity(m *Reminders) *entity.Reminder {
	return &entity.Reminder{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		DateTime:    m.DateTime,
		Notified:    m.Notified,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		DeletedAt:   m.DeletedAt,
	}
}

// Create inserts a reminder and backfills the generated ID
func (r *GormReminderRepository) Create(ctx context.Context, reminder *entity.Reminder) error {
	m := &Reminders{
		Title:       reminder.Title,
		Description: reminder.Description,
		DateTime:    reminder.DateTime,
		Notified:    reminder.Notified,
	}
	m.ID = reminder.ID
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	reminder.ID = m.ID
	return nil
}

// GetByID finds a reminder by primary key
func (r *GormReminderRepository) GetByID(ctx context.Context, id uint) (*entity.Reminder, error) {
	var m Reminders
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return reminderEntity(&m), nil
}

// GetAll returns all reminders ordered by due time
func (r *GormReminderRepository) GetAll(ctx context.Context) ([]*entity.Reminder, error) {
	var models []Reminders
	if err := r.db.WithContext(ctx).Order("date_time ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	reminders := make([]*entity.Reminder, 0, len(models))
	for i := range models {
		reminders = append(reminders, reminderEntity(&models[i]))
	}
	return reminders, nil
}

// FindDue returns reminders due before the given time that have not fired
func (r *GormReminderRepository) FindDue(ctx context.Context, beforeMillis int64, limit int) ([]*entity.Reminder, error) {
	var models []Reminders
	err := r.db.WithContext(ctx).
		Where("date_time <= ? AND notified = ?", beforeMillis, false).
		Order("date_time ASC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	reminders := make([]*entity.Reminder, 0, len(models))
	for i := range models {
		reminders = append(reminders, reminderEntity(&models[i]))
	}
	return reminders, nil
}

// MarkNotified flags a reminder as dispatched
func (r *GormReminderRepository) MarkNotified(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&Reminders{}).Where("id = ?", id).Update("notified", true).Error
}

// Update saves all reminder fields
func (r *GormReminderRepository) Update(ctx context.Context, reminder *entity.Reminder) error {
	m := &Reminders{
		Title:       reminder.Title,
		Description: reminder.Description,
		DateTime:    reminder.DateTime,
		Notified:    reminder.Notified,
	}
	m.ID = reminder.ID
	return r.db.WithContext(ctx).Save(m).Error
}

// Delete soft-deletes a reminder
func (r *GormReminderRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Reminders{}, id).Error
}

package repository

import (
	"context"

	"travella-service/internal/domain/entity"
	"travella-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormUserRepository implements the UserRepository interface
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM user repository
func NewGormUserRepository(db *gorm.DB) repository.UserRepository {
	return &GormUserRepository{
		db: db,
	}
}

// Users GORM model for database mapping
type Users struct {
	gorm.Model
	Name         string `gorm:"column:name"`
	Phone        string `gorm:"column:phone"`
	Email        string `gorm:"column:email;unique"`
	PasswordHash string `gorm:"column:password_hash"`
}

// TableName overrides the default table name
func (Users) TableName() string {
	return "users"
}

// Create inserts a user and backfills the generated ID
func (r *GormUserRepository) Create(ctx context.Context, user *entity.User) error {
	m := &Users{
		Name:         user.Name,
		Phone:        user.Phone,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	user.ID = m.ID
	return nil
}

// GetByEmail finds a user by email address
func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var m Users
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		return nil, err
	}
	return &entity.User{
		ID:           m.ID,
		Name:         m.Name,
		Phone:        m.Phone,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		DeletedAt:    m.DeletedAt,
	}, nil
}

// Update saves all user fields
func (r *GormUserRepository) Update(ctx context.Context, user *entity.User) error {
	m := &Users{
		Name:         user.Name,
		Phone:        user.Phone,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
	}
	m.ID = user.ID
	return r.db.WithContext(ctx).Save(m).Error
}

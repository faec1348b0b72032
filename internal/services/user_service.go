package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrEmailRequired = errors.New("email is required")
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// DB returns the handle the service was built with.
func (s *UserService) DB() *gorm.DB {
	return s.db
}

// Resolve looks a user up by email without creating one.
func (s *UserService) Resolve(ctx context.Context, email string) (*models.User, error) {
	return Resolve(s.db.WithContext(ctx), email)
}

// ResolveOrCreate upserts the user by email and returns the persisted row.
func (s *UserService) ResolveOrCreate(ctx context.Context, email string) (*models.User, error) {
	return ResolveOrCreate(s.db.WithContext(ctx), email)
}

// Resolve runs the lookup on tx, so callers inside a transaction can share it.
func Resolve(tx *gorm.DB, email string) (*models.User, error) {
	email = identity.Normalize(email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	var user models.User
	res := tx.Where("email = ?", email).Limit(1).Find(&user)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to look up user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

// ResolveOrCreate is a single INSERT ... ON CONFLICT DO NOTHING followed by a
// select, so concurrent first references to one email converge on one row.
func ResolveOrCreate(tx *gorm.DB, email string) (*models.User, error) {
	email = identity.Normalize(email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	candidate := models.User{Email: email}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(&candidate).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return Resolve(tx, email)
}

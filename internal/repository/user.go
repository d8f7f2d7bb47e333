package repository

import (
	"context" // Context for DB operations
	"errors"  // Error inspection
	"fmt"     // Error wrapping

	"cashcard_system/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// UserRepository is the credential store consulted by the access control gate
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

// GormUserRepository implements UserRepository with GORM
type GormUserRepository struct {
	db *gorm.DB // Database handle
}

// NewUserRepository creates a GORM backed credential store
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByUsername returns nil when the username is unknown
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Unknown user, not an error
		}
		return nil, fmt.Errorf("find user %s: %w", username, err)
	}
	return &user, nil
}

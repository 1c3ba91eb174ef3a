package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/FrancielliAndreghetto/moviefavs/internal/user/domain"
)

// GormUserRepository implements UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM user repository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create inserts a new user into the database
func (r *GormUserRepository) Create(user *domain.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByID retrieves a user by ID
func (r *GormUserRepository) FindByID(id uint) (*domain.User, error) {
	var user domain.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// FindByEmail retrieves a user by email
func (r *GormUserRepository) FindByEmail(email string) (*domain.User, error) {
	var user domain.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// AutoMigrate runs database migrations for the users table
func (r *GormUserRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.User{})
}

// GormTokenRepository implements TokenRepository using GORM
type GormTokenRepository struct {
	db *gorm.DB
}

// NewGormTokenRepository creates a new GORM token repository
func NewGormTokenRepository(db *gorm.DB) *GormTokenRepository {
	return &GormTokenRepository{db: db}
}

// Create inserts a new access token
func (r *GormTokenRepository) Create(token *domain.AccessToken) error {
	if err := r.db.Create(token).Error; err != nil {
		return fmt.Errorf("failed to create token: %w", err)
	}
	return nil
}

// FindByID retrieves an access token by ID
func (r *GormTokenRepository) FindByID(id uint) (*domain.AccessToken, error) {
	var token domain.AccessToken
	if err := r.db.First(&token, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to find token: %w", err)
	}
	return &token, nil
}

// TouchLastUsed stamps the token's last_used_at
func (r *GormTokenRepository) TouchLastUsed(id uint) error {
	now := time.Now()
	err := r.db.Model(&domain.AccessToken{}).
		Where("id = ?", id).
		Update("last_used_at", now).Error
	if err != nil {
		return fmt.Errorf("failed to touch token: %w", err)
	}
	return nil
}

// Delete revokes a single token. Deleting an already-revoked token is a
// no-op, not an error, so logout stays idempotent.
func (r *GormTokenRepository) Delete(id uint) error {
	if err := r.db.Delete(&domain.AccessToken{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

// DeleteForUser revokes every token the user holds
func (r *GormTokenRepository) DeleteForUser(userID uint) error {
	err := r.db.Where("user_id = ?", userID).Delete(&domain.AccessToken{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete user tokens: %w", err)
	}
	return nil
}

// AutoMigrate runs database migrations for the access_tokens table
func (r *GormTokenRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.AccessToken{})
}

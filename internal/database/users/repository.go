// Package users provides database operations for user profiles. Profiles
// are keyed by the auth provider's account uuid, so the identifier is a
// string rather than an auto-increment integer, and JoinedAt is stamped
// at profile creation. Profiles are never hard-deleted; Deactivate is the
// only removal path.
package users

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mimiru/mimiru/internal/database"
	"github.com/mimiru/mimiru/internal/entities"
)

const table = "user_profiles"

// Repository handles all user profile database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindAll retrieves every profile.
func (r *Repository) FindAll() ([]entities.UserProfile, error) {
	var users []entities.UserProfile
	if err := r.db.Find(&users).Error; err != nil {
		return nil, database.NewQueryError(table, "fetch", err)
	}
	return users, nil
}

// FindByID retrieves a profile by its uuid. A missing row is not an
// error; both return values are nil.
func (r *Repository) FindByID(id string) (*entities.UserProfile, error) {
	var user entities.UserProfile
	err := r.db.Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, database.NewQueryError(table, "fetch", err)
	}
	return &user, nil
}

// CreateProfile inserts a profile, stamping JoinedAt server-side.
func (r *Repository) CreateProfile(user *entities.UserProfile) (*entities.UserProfile, error) {
	user.JoinedAt = time.Now()
	if err := r.db.Create(user).Error; err != nil {
		return nil, database.NewQueryError(table, "create", err)
	}
	return user, nil
}

// UpdateProfile applies the named fields only. The id and joined_at
// columns are never written.
func (r *Repository) UpdateProfile(id string, fields map[string]any) (*entities.UserProfile, error) {
	delete(fields, "id")
	delete(fields, "joined_at")
	result := r.db.Model(&entities.UserProfile{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return nil, database.NewQueryError(table, "update", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, database.NewQueryError(table, "update", gorm.ErrRecordNotFound)
	}
	var user entities.UserProfile
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, database.NewQueryError(table, "fetch", err)
	}
	return &user, nil
}

// Count returns the total number of profiles.
func (r *Repository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&entities.UserProfile{}).Count(&count).Error; err != nil {
		return 0, database.NewQueryError(table, "count", err)
	}
	return count, nil
}

// FindByUsername retrieves a profile by exact username. A missing row
// returns (nil, nil).
func (r *Repository) FindByUsername(username string) (*entities.UserProfile, error) {
	var user entities.UserProfile
	err := r.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, database.NewQueryError(table, "fetch by username", err)
	}
	return &user, nil
}

// FindByRole retrieves active profiles with the given role, most recently
// joined first.
func (r *Repository) FindByRole(role entities.UserRole) ([]entities.UserProfile, error) {
	var users []entities.UserProfile
	err := r.db.
		Where("role = ? AND is_active = ?", role, true).
		Order("joined_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, database.NewQueryError(table, "fetch by role", err)
	}
	return users, nil
}

// FindActive retrieves all active profiles, most recently joined first.
func (r *Repository) FindActive() ([]entities.UserProfile, error) {
	var users []entities.UserProfile
	err := r.db.
		Where("is_active = ?", true).
		Order("joined_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, database.NewQueryError(table, "fetch active", err)
	}
	return users, nil
}

// Search matches the query case-insensitively against username or display
// name, active profiles only, ordered by username.
func (r *Repository) Search(query string) ([]entities.UserProfile, error) {
	var users []entities.UserProfile
	pattern := "%" + query + "%"
	err := r.db.
		Where("is_active = ?", true).
		Where("LOWER(username) LIKE LOWER(?) OR LOWER(display_name) LIKE LOWER(?)", pattern, pattern).
		Order("username ASC").
		Find(&users).Error
	if err != nil {
		return nil, database.NewQueryError(table, "search", err)
	}
	return users, nil
}

// UpdateRole sets a profile's role.
func (r *Repository) UpdateRole(id string, role entities.UserRole) (*entities.UserProfile, error) {
	return r.UpdateProfile(id, map[string]any{"role": role})
}

// Deactivate marks a profile inactive. Deactivating an already inactive
// profile succeeds and leaves it inactive.
func (r *Repository) Deactivate(id string) (*entities.UserProfile, error) {
	result := r.db.Model(&entities.UserProfile{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		return nil, database.NewQueryError(table, "deactivate", result.Error)
	}
	var user entities.UserProfile
	err := r.db.Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, database.NewQueryError(table, "deactivate", gorm.ErrRecordNotFound)
	}
	if err != nil {
		return nil, database.NewQueryError(table, "fetch", err)
	}
	return &user, nil
}

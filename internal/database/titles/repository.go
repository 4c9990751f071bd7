// Package titles provides database operations for title management.
//
// # Usage
//
//	repo := titles.NewRepository(db)
//	title, err := repo.FindByID(42)
package titles

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mimiru/mimiru/internal/database"
	"github.com/mimiru/mimiru/internal/entities"
)

const table = "titles"

// Repository handles all title database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new titles repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindAll retrieves every title.
func (r *Repository) FindAll() ([]entities.Title, error) {
	var titles []entities.Title
	if err := r.db.Find(&titles).Error; err != nil {
		return nil, database.NewQueryError(table, "fetch", err)
	}
	return titles, nil
}

// FindByID retrieves a title by ID. A missing row is not an error; both
// return values are nil.
func (r *Repository) FindByID(id uint) (*entities.Title, error) {
	var title entities.Title
	err := r.db.First(&title, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, database.NewQueryError(table, "fetch", err)
	}
	return &title, nil
}

// Create inserts a title and returns the stored row including the
// generated ID and timestamps.
func (r *Repository) Create(title *entities.Title) (*entities.Title, error) {
	if err := r.db.Create(title).Error; err != nil {
		return nil, database.NewQueryError(table, "create", err)
	}
	return title, nil
}

// Update applies the named fields only; zero-valued fields in the map are
// written as given, fields absent from the map are left untouched.
func (r *Repository) Update(id uint, fields map[string]any) (*entities.Title, error) {
	result := r.db.Model(&entities.Title{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return nil, database.NewQueryError(table, "update", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, database.NewQueryError(table, "update", gorm.ErrRecordNotFound)
	}
	var title entities.Title
	if err := r.db.First(&title, id).Error; err != nil {
		return nil, database.NewQueryError(table, "fetch", err)
	}
	return &title, nil
}

// Delete removes a title. Deleting an ID that does not exist is reported
// as success.
func (r *Repository) Delete(id uint) error {
	if err := r.db.Delete(&entities.Title{}, id).Error; err != nil {
		return database.NewQueryError(table, "delete", err)
	}
	return nil
}

// Count returns the total number of titles.
func (r *Repository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&entities.Title{}).Count(&count).Error; err != nil {
		return 0, database.NewQueryError(table, "count", err)
	}
	return count, nil
}

// FindByStatus retrieves titles with the given status, newest first.
func (r *Repository) FindByStatus(status entities.TitleStatus) ([]entities.Title, error) {
	var titles []entities.Title
	err := r.db.Where("status = ?", status).Order("created_at DESC").Find(&titles).Error
	if err != nil {
		return nil, database.NewQueryError(table, "fetch by status", err)
	}
	return titles, nil
}

// FindPaginated retrieves one page of titles (newest first) together with
// the unfiltered total, using offset = (page-1)*limit.
func (r *Repository) FindPaginated(page, limit int) ([]entities.Title, int64, error) {
	var total int64
	if err := r.db.Model(&entities.Title{}).Count(&total).Error; err != nil {
		return nil, 0, database.NewQueryError(table, "count", err)
	}

	var titles []entities.Title
	offset := (page - 1) * limit
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&titles).Error
	if err != nil {
		return nil, 0, database.NewQueryError(table, "fetch page", err)
	}
	return titles, total, nil
}

// Search matches the query case-insensitively against title or
// description, newest first.
func (r *Repository) Search(query string) ([]entities.Title, error) {
	var titles []entities.Title
	pattern := "%" + query + "%"
	err := r.db.
		Where("LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern).
		Order("created_at DESC").
		Find(&titles).Error
	if err != nil {
		return nil, database.NewQueryError(table, "search", err)
	}
	return titles, nil
}

// FindByCreator retrieves titles created by the given user, newest first.
func (r *Repository) FindByCreator(creatorID string) ([]entities.Title, error) {
	var titles []entities.Title
	err := r.db.Where("created_by = ?", creatorID).Order("created_at DESC").Find(&titles).Error
	if err != nil {
		return nil, database.NewQueryError(table, "fetch by creator", err)
	}
	return titles, nil
}

// FindWithGenres retrieves all titles with their genres eager-loaded,
// newest first.
func (r *Repository) FindWithGenres() ([]entities.Title, error) {
	var titles []entities.Title
	err := r.db.Preload("Genres").Order("created_at DESC").Find(&titles).Error
	if err != nil {
		return nil, database.NewQueryError(table, "fetch with genres", err)
	}
	return titles, nil
}

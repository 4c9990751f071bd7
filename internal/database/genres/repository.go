// Package genres provides database operations for the genre catalogue.
package genres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mimiru/mimiru/internal/database"
	"github.com/mimiru/mimiru/internal/entities"
)

const table = "genres"

// Repository handles all genre database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new genres repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GenreWithTitleCount pairs a genre with the number of titles tagged
// with it.
type GenreWithTitleCount struct {
	entities.Genre
	TitleCount int64 `json:"title_count"`
}

// FindAll retrieves every genre.
func (r *Repository) FindAll() ([]entities.Genre, error) {
	var genres []entities.Genre
	if err := r.db.Find(&genres).Error; err != nil {
		return nil, database.NewQueryError(table, "fetch", err)
	}
	return genres, nil
}

// FindByID retrieves a genre by ID. A missing row is not an error; both
// return values are nil.
func (r *Repository) FindByID(id uint) (*entities.Genre, error) {
	var genre entities.Genre
	err := r.db.First(&genre, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, database.NewQueryError(table, "fetch", err)
	}
	return &genre, nil
}

// Create inserts a genre and returns the stored row.
func (r *Repository) Create(genre *entities.Genre) (*entities.Genre, error) {
	if err := r.db.Create(genre).Error; err != nil {
		return nil, database.NewQueryError(table, "create", err)
	}
	return genre, nil
}

// Update applies the named fields only.
func (r *Repository) Update(id uint, fields map[string]any) (*entities.Genre, error) {
	result := r.db.Model(&entities.Genre{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return nil, database.NewQueryError(table, "update", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, database.NewQueryError(table, "update", gorm.ErrRecordNotFound)
	}
	var genre entities.Genre
	if err := r.db.First(&genre, id).Error; err != nil {
		return nil, database.NewQueryError(table, "fetch", err)
	}
	return &genre, nil
}

// Delete removes a genre. Deleting an ID that does not exist is reported
// as success.
func (r *Repository) Delete(id uint) error {
	if err := r.db.Delete(&entities.Genre{}, id).Error; err != nil {
		return database.NewQueryError(table, "delete", err)
	}
	return nil
}

// Count returns the total number of genres.
func (r *Repository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&entities.Genre{}).Count(&count).Error; err != nil {
		return 0, database.NewQueryError(table, "count", err)
	}
	return count, nil
}

// FindByName retrieves a genre by exact name. A missing row returns
// (nil, nil).
func (r *Repository) FindByName(name string) (*entities.Genre, error) {
	var genre entities.Genre
	err := r.db.Where("name = ?", name).First(&genre).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, database.NewQueryError(table, "fetch by name", err)
	}
	return &genre, nil
}

// FindWithTitleCount retrieves every genre together with the number of
// titles carrying it.
func (r *Repository) FindWithTitleCount() ([]GenreWithTitleCount, error) {
	var rows []GenreWithTitleCount
	err := r.db.Model(&entities.Genre{}).
		Select("genres.*, COUNT(title_genres.title_id) AS title_count").
		Joins("LEFT JOIN title_genres ON title_genres.genre_id = genres.id").
		Group("genres.id").
		Find(&rows).Error
	if err != nil {
		return nil, database.NewQueryError(table, "fetch with title count", err)
	}
	return rows, nil
}

// Search matches the query case-insensitively against genre names,
// ordered alphabetically.
func (r *Repository) Search(query string) ([]entities.Genre, error) {
	var genres []entities.Genre
	pattern := "%" + query + "%"
	err := r.db.
		Where("LOWER(name) LIKE LOWER(?)", pattern).
		Order("name ASC").
		Find(&genres).Error
	if err != nil {
		return nil, database.NewQueryError(table, "search", err)
	}
	return genres, nil
}

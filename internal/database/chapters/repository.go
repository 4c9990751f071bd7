// Package chapters provides database operations for chapter management,
// including reader navigation queries (next/previous/latest).
package chapters

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mimiru/mimiru/internal/database"
	"github.com/mimiru/mimiru/internal/entities"
)

const table = "chapters"

// Repository handles all chapter database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new chapters repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindAll retrieves every chapter.
func (r *Repository) FindAll() ([]entities.Chapter, error) {
	var chapters []entities.Chapter
	if err := r.db.Find(&chapters).Error; err != nil {
		return nil, database.NewQueryError(table, "fetch", err)
	}
	return chapters, nil
}

// FindByID retrieves a chapter by ID. A missing row is not an error; both
// return values are nil.
func (r *Repository) FindByID(id uint) (*entities.Chapter, error) {
	var chapter entities.Chapter
	err := r.db.First(&chapter, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, database.NewQueryError(table, "fetch", err)
	}
	return &chapter, nil
}

// Create inserts a chapter and returns the stored row.
func (r *Repository) Create(chapter *entities.Chapter) (*entities.Chapter, error) {
	if err := r.db.Create(chapter).Error; err != nil {
		return nil, database.NewQueryError(table, "create", err)
	}
	return chapter, nil
}

// Update applies the named fields only.
func (r *Repository) Update(id uint, fields map[string]any) (*entities.Chapter, error) {
	result := r.db.Model(&entities.Chapter{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return nil, database.NewQueryError(table, "update", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, database.NewQueryError(table, "update", gorm.ErrRecordNotFound)
	}
	var chapter entities.Chapter
	if err := r.db.First(&chapter, id).Error; err != nil {
		return nil, database.NewQueryError(table, "fetch", err)
	}
	return &chapter, nil
}

// Delete removes a chapter. Deleting an ID that does not exist is
// reported as success.
func (r *Repository) Delete(id uint) error {
	if err := r.db.Delete(&entities.Chapter{}, id).Error; err != nil {
		return database.NewQueryError(table, "delete", err)
	}
	return nil
}

// Count returns the total number of chapters.
func (r *Repository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&entities.Chapter{}).Count(&count).Error; err != nil {
		return 0, database.NewQueryError(table, "count", err)
	}
	return count, nil
}

// FindByTitleVersion retrieves the chapters of a title version ordered by
// chapter number ascending.
func (r *Repository) FindByTitleVersion(titleVersionID uint) ([]entities.Chapter, error) {
	var chapters []entities.Chapter
	err := r.db.
		Where("title_version_id = ?", titleVersionID).
		Order("chapter_number ASC").
		Find(&chapters).Error
	if err != nil {
		return nil, database.NewQueryError(table, "fetch by title version", err)
	}
	return chapters, nil
}

// FindWithPages retrieves a chapter with its pages eager-loaded in page
// order. A missing chapter returns (nil, nil).
func (r *Repository) FindWithPages(id uint) (*entities.Chapter, error) {
	var chapter entities.Chapter
	err := r.db.
		Preload("Pages", func(db *gorm.DB) *gorm.DB {
			return db.Order("page_number ASC")
		}).
		First(&chapter, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, database.NewQueryError(table, "fetch with pages", err)
	}
	return &chapter, nil
}

// FindNext retrieves the first chapter of the version with a number
// strictly greater than current. No next chapter returns (nil, nil).
func (r *Repository) FindNext(titleVersionID uint, current float64) (*entities.Chapter, error) {
	var chapter entities.Chapter
	err := r.db.
		Where("title_version_id = ? AND chapter_number > ?", titleVersionID, current).
		Order("chapter_number ASC").
		First(&chapter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, database.NewQueryError(table, "fetch next", err)
	}
	return &chapter, nil
}

// FindPrevious retrieves the last chapter of the version with a number
// strictly less than current. No previous chapter returns (nil, nil).
func (r *Repository) FindPrevious(titleVersionID uint, current float64) (*entities.Chapter, error) {
	var chapter entities.Chapter
	err := r.db.
		Where("title_version_id = ? AND chapter_number < ?", titleVersionID, current).
		Order("chapter_number DESC").
		First(&chapter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, database.NewQueryError(table, "fetch previous", err)
	}
	return &chapter, nil
}

// FindLatest retrieves the most recently created chapters across all
// titles with their title version (and its title) eager-loaded.
func (r *Repository) FindLatest(limit int) ([]entities.Chapter, error) {
	var chapters []entities.Chapter
	err := r.db.
		Preload("TitleVersion").
		Preload("TitleVersion.Title").
		Order("created_at DESC").
		Limit(limit).
		Find(&chapters).Error
	if err != nil {
		return nil, database.NewQueryError(table, "fetch latest", err)
	}
	return chapters, nil
}

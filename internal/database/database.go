// Package database opens the sqlite database, runs migrations and seeds
// the default genre catalogue. Per-entity query code lives in the
// sub-packages (titles, chapters, genres, users, audit).
package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mimiru/mimiru/internal/entities"
)

var defaultGenres = []entities.Genre{
	{Name: "Action"},
	{Name: "Adventure"},
	{Name: "Comedy"},
	{Name: "Drama"},
	{Name: "Fantasy"},
	{Name: "Horror"},
	{Name: "Mystery"},
	{Name: "Romance"},
	{Name: "Sci-Fi"},
	{Name: "Slice of Life"},
}

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto-migrate all entities
	err = db.AutoMigrate(
		&entities.Genre{},
		&entities.UserProfile{},
		&entities.Account{},
		&entities.Title{},
		&entities.TitleGenre{},
		&entities.TitleVersion{},
		&entities.Chapter{},
		&entities.Page{},
		&entities.AuditEvent{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database := &Database{DB: db}

	if err := database.seedGenres(); err != nil {
		return nil, fmt.Errorf("failed to seed genres: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return database, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *Database) seedGenres() error {
	for _, genre := range defaultGenres {
		var existing entities.Genre
		result := d.DB.Where("name = ?", genre.Name).First(&existing)
		if result.Error == gorm.ErrRecordNotFound {
			if err := d.DB.Create(&genre).Error; err != nil {
				return fmt.Errorf("failed to create genre %s: %w", genre.Name, err)
			}
		}
	}
	return nil
}

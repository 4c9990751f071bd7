package actions

import (
	"fmt"
	"log"
	"strings"

	"github.com/mimiru/mimiru/internal/database/genres"
	"github.com/mimiru/mimiru/internal/entities"
)

// Genres exposes the genre actions.
type Genres struct {
	store       GenreStore
	revalidator Revalidator
	auditor     Auditor
}

// NewGenres constructs the genre actions over a store. revalidator and
// auditor may be nil.
func NewGenres(store GenreStore, revalidator Revalidator, auditor Auditor) *Genres {
	if revalidator == nil {
		revalidator = NopRevalidator{}
	}
	return &Genres{store: store, revalidator: revalidator, auditor: auditor}
}

// CreateGenreInput carries the caller-supplied fields for a new genre.
type CreateGenreInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateGenreInput carries a partial update; nil fields are left
// untouched.
type UpdateGenreInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// GetGenres returns every genre.
func (a *Genres) GetGenres() Result[[]entities.Genre] {
	list, err := a.store.FindAll()
	if err != nil {
		log.Printf("Get genres error: %v", err)
		return Err[[]entities.Genre]("Failed to fetch genres")
	}
	return Ok(list)
}

// GetGenreByID returns a single genre; the data is nil when no genre has
// the given ID.
func (a *Genres) GetGenreByID(id uint) Result[*entities.Genre] {
	if id == 0 {
		return Err[*entities.Genre]("Invalid genre ID")
	}
	genre, err := a.store.FindByID(id)
	if err != nil {
		log.Printf("Get genre error: %v", err)
		return Err[*entities.Genre]("Failed to fetch genre")
	}
	return Ok(genre)
}

// GetGenreByName returns a genre by exact name; the data is nil when the
// name is unknown.
func (a *Genres) GetGenreByName(name string) Result[*entities.Genre] {
	if strings.TrimSpace(name) == "" {
		return Err[*entities.Genre]("Invalid genre name")
	}
	genre, err := a.store.FindByName(strings.TrimSpace(name))
	if err != nil {
		log.Printf("Get genre by name error: %v", err)
		return Err[*entities.Genre]("Failed to fetch genre by name")
	}
	return Ok(genre)
}

// GetGenresWithTitleCount returns every genre with its title count.
func (a *Genres) GetGenresWithTitleCount() Result[[]genres.GenreWithTitleCount] {
	rows, err := a.store.FindWithTitleCount()
	if err != nil {
		log.Printf("Get genres with title count error: %v", err)
		return Err[[]genres.GenreWithTitleCount]("Failed to fetch genres with title count")
	}
	return Ok(rows)
}

// SearchGenres matches the query against genre names.
func (a *Genres) SearchGenres(query string) Result[[]entities.Genre] {
	if len(strings.TrimSpace(query)) < 2 {
		return Err[[]entities.Genre]("Search query must be at least 2 characters long")
	}
	list, err := a.store.Search(strings.TrimSpace(query))
	if err != nil {
		log.Printf("Search genres error: %v", err)
		return Err[[]entities.Genre]("Failed to search genres")
	}
	return Ok(list)
}

// CreateGenre validates and stores a new genre. The name must be unique.
func (a *Genres) CreateGenre(input CreateGenreInput) Result[*entities.Genre] {
	name := strings.TrimSpace(input.Name)
	if len(name) < 2 {
		return Err[*entities.Genre]("Genre name must be at least 2 characters long")
	}
	if len(name) > 100 {
		return Err[*entities.Genre]("Genre name must be less than 100 characters")
	}
	description := strings.TrimSpace(input.Description)
	if len(description) > 500 {
		return Err[*entities.Genre]("Genre description must be less than 500 characters")
	}

	existing, err := a.store.FindByName(name)
	if err != nil {
		log.Printf("Create genre error: %v", err)
		return Err[*entities.Genre]("Failed to create genre")
	}
	if existing != nil {
		return Err[*entities.Genre]("Genre already exists")
	}

	created, err := a.store.Create(&entities.Genre{Name: name, Description: description})
	a.audit("genre_create", created, err)
	if err != nil {
		log.Printf("Create genre error: %v", err)
		return Err[*entities.Genre]("Failed to create genre")
	}

	a.revalidator.Revalidate("/dashboard/genres", "/titles")
	return Ok(created)
}

// UpdateGenre validates and applies a partial update.
func (a *Genres) UpdateGenre(id uint, input UpdateGenreInput) Result[*entities.Genre] {
	if id == 0 {
		return Err[*entities.Genre]("Invalid genre ID")
	}

	fields := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if len(name) < 2 {
			return Err[*entities.Genre]("Genre name must be at least 2 characters long")
		}
		if len(name) > 100 {
			return Err[*entities.Genre]("Genre name must be less than 100 characters")
		}
		fields["name"] = name
	}
	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		if len(description) > 500 {
			return Err[*entities.Genre]("Genre description must be less than 500 characters")
		}
		fields["description"] = description
	}
	if len(fields) == 0 {
		return Err[*entities.Genre]("No fields to update")
	}

	updated, err := a.store.Update(id, fields)
	a.audit("genre_update", updated, err)
	if err != nil {
		log.Printf("Update genre error: %v", err)
		return Err[*entities.Genre]("Failed to update genre")
	}

	a.revalidator.Revalidate("/dashboard/genres", "/titles")
	return Ok(updated)
}

// DeleteGenre removes a genre. Deleting an ID that does not exist is
// reported as success.
func (a *Genres) DeleteGenre(id uint) Result[struct{}] {
	if id == 0 {
		return Err[struct{}]("Invalid genre ID")
	}
	err := a.store.Delete(id)
	if a.auditor != nil {
		a.auditor.LogMutation("", "genre_delete", "genre", fmt.Sprint(id), err)
	}
	if err != nil {
		log.Printf("Delete genre error: %v", err)
		return Err[struct{}]("Failed to delete genre")
	}

	a.revalidator.Revalidate("/dashboard/genres", "/titles")
	return Ok(struct{}{})
}

func (a *Genres) audit(action string, genre *entities.Genre, err error) {
	if a.auditor == nil {
		return
	}
	entityID := ""
	if genre != nil {
		entityID = fmt.Sprint(genre.ID)
	}
	a.auditor.LogMutation("", action, "genre", entityID, err)
}

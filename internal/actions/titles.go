package actions

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/mimiru/mimiru/internal/entities"
)

// Titles exposes the title actions.
type Titles struct {
	store       TitleStore
	revalidator Revalidator
	auditor     Auditor
}

// NewTitles constructs the title actions over a store. revalidator and
// auditor may be nil.
func NewTitles(store TitleStore, revalidator Revalidator, auditor Auditor) *Titles {
	if revalidator == nil {
		revalidator = NopRevalidator{}
	}
	return &Titles{store: store, revalidator: revalidator, auditor: auditor}
}

// CreateTitleInput carries the caller-supplied fields for a new title.
type CreateTitleInput struct {
	Title            string               `json:"title"`
	Description      string               `json:"description"`
	CoverURL         string               `json:"cover_url"`
	Status           entities.TitleStatus `json:"status"`
	OriginalLanguage string               `json:"original_language"`
	CreatedBy        string               `json:"created_by"`
}

// UpdateTitleInput carries a partial update; nil fields are left
// untouched.
type UpdateTitleInput struct {
	Title            *string               `json:"title"`
	Description      *string               `json:"description"`
	CoverURL         *string               `json:"cover_url"`
	Status           *entities.TitleStatus `json:"status"`
	OriginalLanguage *string               `json:"original_language"`
}

// GetTitles returns every title.
func (a *Titles) GetTitles() Result[[]entities.Title] {
	titles, err := a.store.FindAll()
	if err != nil {
		log.Printf("Get titles error: %v", err)
		return Err[[]entities.Title]("Failed to fetch titles")
	}
	return Ok(titles)
}

// GetTitleByID returns a single title; the data is nil when no title has
// the given ID.
func (a *Titles) GetTitleByID(id uint) Result[*entities.Title] {
	if id == 0 {
		return Err[*entities.Title]("Invalid title ID")
	}
	title, err := a.store.FindByID(id)
	if err != nil {
		log.Printf("Get title error: %v", err)
		return Err[*entities.Title]("Failed to fetch title")
	}
	return Ok(title)
}

// GetTitlesPaginated returns one page of titles with paging metadata.
func (a *Titles) GetTitlesPaginated(page, limit int) Result[PaginationResult[entities.Title]] {
	if page <= 0 || limit <= 0 {
		return Err[PaginationResult[entities.Title]]("Invalid pagination parameters")
	}
	data, total, err := a.store.FindPaginated(page, limit)
	if err != nil {
		log.Printf("Get paginated titles error: %v", err)
		return Err[PaginationResult[entities.Title]]("Failed to fetch paginated titles")
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Ok(PaginationResult[entities.Title]{
		Data:       data,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	})
}

// GetTitlesByStatus returns the titles with the given status.
func (a *Titles) GetTitlesByStatus(status entities.TitleStatus) Result[[]entities.Title] {
	if !entities.ValidTitleStatus(status) {
		return Err[[]entities.Title]("Invalid title status")
	}
	titles, err := a.store.FindByStatus(status)
	if err != nil {
		log.Printf("Get titles by status error: %v", err)
		return Err[[]entities.Title]("Failed to fetch titles by status")
	}
	return Ok(titles)
}

// SearchTitles matches the query against title or description.
func (a *Titles) SearchTitles(query string) Result[[]entities.Title] {
	if len(strings.TrimSpace(query)) < 2 {
		return Err[[]entities.Title]("Search query must be at least 2 characters long")
	}
	titles, err := a.store.Search(strings.TrimSpace(query))
	if err != nil {
		log.Printf("Search titles error: %v", err)
		return Err[[]entities.Title]("Failed to search titles")
	}
	return Ok(titles)
}

// GetTitlesByCreator returns the titles created by the given user.
func (a *Titles) GetTitlesByCreator(creatorID string) Result[[]entities.Title] {
	if strings.TrimSpace(creatorID) == "" {
		return Err[[]entities.Title]("Invalid creator ID")
	}
	titles, err := a.store.FindByCreator(creatorID)
	if err != nil {
		log.Printf("Get titles by creator error: %v", err)
		return Err[[]entities.Title]("Failed to fetch titles by creator")
	}
	return Ok(titles)
}

// GetTitlesWithGenres returns all titles with their genres eager-loaded.
func (a *Titles) GetTitlesWithGenres() Result[[]entities.Title] {
	titles, err := a.store.FindWithGenres()
	if err != nil {
		log.Printf("Get titles with genres error: %v", err)
		return Err[[]entities.Title]("Failed to fetch titles with genres")
	}
	return Ok(titles)
}

// CreateTitle validates and stores a new title. Status defaults to
// "ongoing" when unset.
func (a *Titles) CreateTitle(input CreateTitleInput) Result[*entities.Title] {
	title := strings.TrimSpace(input.Title)
	if len(title) < 3 {
		return Err[*entities.Title]("Title must be at least 3 characters long")
	}
	if len(title) > 255 {
		return Err[*entities.Title]("Title must be less than 255 characters")
	}
	description := strings.TrimSpace(input.Description)
	if len(description) > 1000 {
		return Err[*entities.Title]("Description must be less than 1000 characters")
	}
	status := input.Status
	if status == "" {
		status = entities.TitleStatusOngoing
	}
	if !entities.ValidTitleStatus(status) {
		return Err[*entities.Title]("Invalid title status")
	}

	created, err := a.store.Create(&entities.Title{
		Title:            title,
		Description:      description,
		CoverURL:         input.CoverURL,
		Status:           status,
		OriginalLanguage: input.OriginalLanguage,
		CreatedBy:        input.CreatedBy,
	})
	a.audit(input.CreatedBy, "title_create", created, err)
	if err != nil {
		log.Printf("Create title error: %v", err)
		return Err[*entities.Title]("Failed to create title")
	}

	a.revalidator.Revalidate("/dashboard/titles", "/titles")
	return Ok(created)
}

// UpdateTitle validates and applies a partial update. Only the provided
// fields are written; updated_at is always refreshed.
func (a *Titles) UpdateTitle(id uint, input UpdateTitleInput) Result[*entities.Title] {
	if id == 0 {
		return Err[*entities.Title]("Invalid title ID")
	}

	fields := map[string]any{}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if len(title) < 3 {
			return Err[*entities.Title]("Title must be at least 3 characters long")
		}
		if len(title) > 255 {
			return Err[*entities.Title]("Title must be less than 255 characters")
		}
		fields["title"] = title
	}
	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		if len(description) > 1000 {
			return Err[*entities.Title]("Description must be less than 1000 characters")
		}
		fields["description"] = description
	}
	if input.CoverURL != nil {
		fields["cover_url"] = *input.CoverURL
	}
	if input.Status != nil {
		if !entities.ValidTitleStatus(*input.Status) {
			return Err[*entities.Title]("Invalid title status")
		}
		fields["status"] = *input.Status
	}
	if input.OriginalLanguage != nil {
		fields["original_language"] = *input.OriginalLanguage
	}
	fields["updated_at"] = time.Now()

	updated, err := a.store.Update(id, fields)
	a.audit("", "title_update", updated, err)
	if err != nil {
		log.Printf("Update title error: %v", err)
		return Err[*entities.Title]("Failed to update title")
	}

	a.revalidator.Revalidate("/dashboard/titles", "/titles", fmt.Sprintf("/titles/%d", id))
	return Ok(updated)
}

// DeleteTitle removes a title. Deleting an ID that does not exist is
// reported as success.
func (a *Titles) DeleteTitle(id uint) Result[struct{}] {
	if id == 0 {
		return Err[struct{}]("Invalid title ID")
	}
	err := a.store.Delete(id)
	if a.auditor != nil {
		a.auditor.LogMutation("", "title_delete", "title", fmt.Sprint(id), err)
	}
	if err != nil {
		log.Printf("Delete title error: %v", err)
		return Err[struct{}]("Failed to delete title")
	}

	a.revalidator.Revalidate("/dashboard/titles", "/titles")
	return Ok(struct{}{})
}

func (a *Titles) audit(actorID, action string, title *entities.Title, err error) {
	if a.auditor == nil {
		return
	}
	entityID := ""
	if title != nil {
		entityID = fmt.Sprint(title.ID)
	}
	a.auditor.LogMutation(actorID, action, "title", entityID, err)
}

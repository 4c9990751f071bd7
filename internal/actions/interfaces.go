package actions

import (
	"github.com/mimiru/mimiru/internal/database/genres"
	"github.com/mimiru/mimiru/internal/entities"
)

// Store interfaces are defined here, on the consumer side, so the action
// services can be constructed over the real repositories in production
// and over spies in tests. The repository packages satisfy them:
//
//	var _ actions.TitleStore = (*titles.Repository)(nil)

// TitleStore is the data access surface the title actions depend on.
type TitleStore interface {
	FindAll() ([]entities.Title, error)
	FindByID(id uint) (*entities.Title, error)
	Create(title *entities.Title) (*entities.Title, error)
	Update(id uint, fields map[string]any) (*entities.Title, error)
	Delete(id uint) error
	Count() (int64, error)
	FindByStatus(status entities.TitleStatus) ([]entities.Title, error)
	FindPaginated(page, limit int) ([]entities.Title, int64, error)
	Search(query string) ([]entities.Title, error)
	FindByCreator(creatorID string) ([]entities.Title, error)
	FindWithGenres() ([]entities.Title, error)
}

// ChapterStore is the data access surface the chapter actions depend on.
type ChapterStore interface {
	FindByID(id uint) (*entities.Chapter, error)
	Create(chapter *entities.Chapter) (*entities.Chapter, error)
	Update(id uint, fields map[string]any) (*entities.Chapter, error)
	Delete(id uint) error
	FindByTitleVersion(titleVersionID uint) ([]entities.Chapter, error)
	FindWithPages(id uint) (*entities.Chapter, error)
	FindNext(titleVersionID uint, current float64) (*entities.Chapter, error)
	FindPrevious(titleVersionID uint, current float64) (*entities.Chapter, error)
	FindLatest(limit int) ([]entities.Chapter, error)
}

// GenreStore is the data access surface the genre actions depend on.
type GenreStore interface {
	FindAll() ([]entities.Genre, error)
	FindByID(id uint) (*entities.Genre, error)
	Create(genre *entities.Genre) (*entities.Genre, error)
	Update(id uint, fields map[string]any) (*entities.Genre, error)
	Delete(id uint) error
	FindByName(name string) (*entities.Genre, error)
	FindWithTitleCount() ([]genres.GenreWithTitleCount, error)
	Search(query string) ([]entities.Genre, error)
}

// UserStore is the data access surface the user actions depend on.
type UserStore interface {
	FindAll() ([]entities.UserProfile, error)
	FindByID(id string) (*entities.UserProfile, error)
	CreateProfile(user *entities.UserProfile) (*entities.UserProfile, error)
	UpdateProfile(id string, fields map[string]any) (*entities.UserProfile, error)
	FindByUsername(username string) (*entities.UserProfile, error)
	FindByRole(role entities.UserRole) ([]entities.UserProfile, error)
	FindActive() ([]entities.UserProfile, error)
	Search(query string) ([]entities.UserProfile, error)
	UpdateRole(id string, role entities.UserRole) (*entities.UserProfile, error)
	Deactivate(id string) (*entities.UserProfile, error)
}

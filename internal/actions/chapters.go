package actions

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/mimiru/mimiru/internal/entities"
)

// LatestChaptersMaxLimit caps how many recent chapters a single call may
// request.
const LatestChaptersMaxLimit = 50

// Chapters exposes the chapter actions.
type Chapters struct {
	store       ChapterStore
	revalidator Revalidator
	auditor     Auditor
}

// NewChapters constructs the chapter actions over a store. revalidator
// and auditor may be nil.
func NewChapters(store ChapterStore, revalidator Revalidator, auditor Auditor) *Chapters {
	if revalidator == nil {
		revalidator = NopRevalidator{}
	}
	return &Chapters{store: store, revalidator: revalidator, auditor: auditor}
}

// CreateChapterInput carries the caller-supplied fields for a new
// chapter.
type CreateChapterInput struct {
	TitleVersionID uint    `json:"title_version_id"`
	ChapterNumber  float64 `json:"chapter_number"`
	Title          string  `json:"title"`
}

// UpdateChapterInput carries a partial update; nil fields are left
// untouched.
type UpdateChapterInput struct {
	ChapterNumber *float64 `json:"chapter_number"`
	Title         *string  `json:"title"`
}

// GetChaptersByTitleVersion returns a version's chapters in reading
// order.
func (a *Chapters) GetChaptersByTitleVersion(titleVersionID uint) Result[[]entities.Chapter] {
	if titleVersionID == 0 {
		return Err[[]entities.Chapter]("Invalid title version ID")
	}
	chapters, err := a.store.FindByTitleVersion(titleVersionID)
	if err != nil {
		log.Printf("Get chapters by title version error: %v", err)
		return Err[[]entities.Chapter]("Failed to fetch chapters")
	}
	return Ok(chapters)
}

// GetChapterByID returns a single chapter; the data is nil when no
// chapter has the given ID.
func (a *Chapters) GetChapterByID(id uint) Result[*entities.Chapter] {
	if id == 0 {
		return Err[*entities.Chapter]("Invalid chapter ID")
	}
	chapter, err := a.store.FindByID(id)
	if err != nil {
		log.Printf("Get chapter error: %v", err)
		return Err[*entities.Chapter]("Failed to fetch chapter")
	}
	return Ok(chapter)
}

// GetChapterWithPages returns a chapter with its pages in page order.
// Unlike GetChapterByID, a missing chapter is an error here: the reader
// page cannot render without one.
func (a *Chapters) GetChapterWithPages(id uint) Result[*entities.Chapter] {
	if id == 0 {
		return Err[*entities.Chapter]("Invalid chapter ID")
	}
	chapter, err := a.store.FindWithPages(id)
	if err != nil {
		log.Printf("Get chapter with pages error: %v", err)
		return Err[*entities.Chapter]("Failed to fetch chapter with pages")
	}
	if chapter == nil {
		return Err[*entities.Chapter]("Chapter not found")
	}
	return Ok(chapter)
}

// GetNextChapter returns the first chapter numbered strictly greater than
// current, or nil data when the current chapter is the last.
func (a *Chapters) GetNextChapter(titleVersionID uint, current float64) Result[*entities.Chapter] {
	if titleVersionID == 0 {
		return Err[*entities.Chapter]("Invalid title version ID")
	}
	if current < 0 {
		return Err[*entities.Chapter]("Invalid chapter number")
	}
	chapter, err := a.store.FindNext(titleVersionID, current)
	if err != nil {
		log.Printf("Get next chapter error: %v", err)
		return Err[*entities.Chapter]("Failed to fetch next chapter")
	}
	return Ok(chapter)
}

// GetPreviousChapter returns the last chapter numbered strictly less than
// current, or nil data when the current chapter is the first.
func (a *Chapters) GetPreviousChapter(titleVersionID uint, current float64) Result[*entities.Chapter] {
	if titleVersionID == 0 {
		return Err[*entities.Chapter]("Invalid title version ID")
	}
	if current <= 0 {
		return Err[*entities.Chapter]("Invalid chapter number")
	}
	chapter, err := a.store.FindPrevious(titleVersionID, current)
	if err != nil {
		log.Printf("Get previous chapter error: %v", err)
		return Err[*entities.Chapter]("Failed to fetch previous chapter")
	}
	return Ok(chapter)
}

// GetLatestChapters returns the most recently created chapters across all
// titles.
func (a *Chapters) GetLatestChapters(limit int) Result[[]entities.Chapter] {
	if limit <= 0 || limit > LatestChaptersMaxLimit {
		return Err[[]entities.Chapter]("Limit must be between 1 and 50")
	}
	chapters, err := a.store.FindLatest(limit)
	if err != nil {
		log.Printf("Get latest chapters error: %v", err)
		return Err[[]entities.Chapter]("Failed to fetch latest chapters")
	}
	return Ok(chapters)
}

// CreateChapter validates and stores a new chapter.
func (a *Chapters) CreateChapter(input CreateChapterInput) Result[*entities.Chapter] {
	if input.TitleVersionID == 0 {
		return Err[*entities.Chapter]("Invalid title version ID")
	}
	if input.ChapterNumber <= 0 {
		return Err[*entities.Chapter]("Chapter number must be greater than 0")
	}
	title := strings.TrimSpace(input.Title)
	if len(title) > 255 {
		return Err[*entities.Chapter]("Chapter title must be less than 255 characters")
	}

	created, err := a.store.Create(&entities.Chapter{
		TitleVersionID: input.TitleVersionID,
		ChapterNumber:  input.ChapterNumber,
		Title:          title,
	})
	a.audit("chapter_create", created, err)
	if err != nil {
		log.Printf("Create chapter error: %v", err)
		return Err[*entities.Chapter]("Failed to create chapter")
	}

	a.revalidator.Revalidate(
		"/dashboard/chapters",
		fmt.Sprintf("/dashboard/title-versions/%d", input.TitleVersionID),
	)
	return Ok(created)
}

// UpdateChapter validates and applies a partial update; updated_at is
// always refreshed.
func (a *Chapters) UpdateChapter(id uint, input UpdateChapterInput) Result[*entities.Chapter] {
	if id == 0 {
		return Err[*entities.Chapter]("Invalid chapter ID")
	}

	fields := map[string]any{}
	if input.ChapterNumber != nil {
		if *input.ChapterNumber <= 0 {
			return Err[*entities.Chapter]("Chapter number must be greater than 0")
		}
		fields["chapter_number"] = *input.ChapterNumber
	}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if len(title) > 255 {
			return Err[*entities.Chapter]("Chapter title must be less than 255 characters")
		}
		fields["title"] = title
	}
	fields["updated_at"] = time.Now()

	updated, err := a.store.Update(id, fields)
	a.audit("chapter_update", updated, err)
	if err != nil {
		log.Printf("Update chapter error: %v", err)
		return Err[*entities.Chapter]("Failed to update chapter")
	}

	a.revalidator.Revalidate("/dashboard/chapters", fmt.Sprintf("/dashboard/chapters/%d", id))
	return Ok(updated)
}

// DeleteChapter removes a chapter. Deleting an ID that does not exist is
// reported as success.
func (a *Chapters) DeleteChapter(id uint) Result[struct{}] {
	if id == 0 {
		return Err[struct{}]("Invalid chapter ID")
	}
	err := a.store.Delete(id)
	if a.auditor != nil {
		a.auditor.LogMutation("", "chapter_delete", "chapter", fmt.Sprint(id), err)
	}
	if err != nil {
		log.Printf("Delete chapter error: %v", err)
		return Err[struct{}]("Failed to delete chapter")
	}

	a.revalidator.Revalidate("/dashboard/chapters")
	return Ok(struct{}{})
}

func (a *Chapters) audit(action string, chapter *entities.Chapter, err error) {
	if a.auditor == nil {
		return
	}
	entityID := ""
	if chapter != nil {
		entityID = fmt.Sprint(chapter.ID)
	}
	a.auditor.LogMutation("", action, "chapter", entityID, err)
}

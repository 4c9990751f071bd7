package actions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mimiru/mimiru/internal/entities"
)

type spyChapterStore struct {
	createCalls int
	updateCalls int
	latestLimit int

	chapters map[uint][]entities.Chapter
}

func (s *spyChapterStore) FindByID(id uint) (*entities.Chapter, error) {
	return &entities.Chapter{ID: id}, nil
}
func (s *spyChapterStore) Create(chapter *entities.Chapter) (*entities.Chapter, error) {
	s.createCalls++
	chapter.ID = 1
	return chapter, nil
}
func (s *spyChapterStore) Update(id uint, fields map[string]any) (*entities.Chapter, error) {
	s.updateCalls++
	return &entities.Chapter{ID: id}, nil
}
func (s *spyChapterStore) Delete(id uint) error { return nil }
func (s *spyChapterStore) FindByTitleVersion(titleVersionID uint) ([]entities.Chapter, error) {
	return s.chapters[titleVersionID], nil
}
func (s *spyChapterStore) FindWithPages(id uint) (*entities.Chapter, error) {
	return nil, nil
}
func (s *spyChapterStore) FindNext(titleVersionID uint, current float64) (*entities.Chapter, error) {
	for _, ch := range s.chapters[titleVersionID] {
		if ch.ChapterNumber > current {
			return &ch, nil
		}
	}
	return nil, nil
}
func (s *spyChapterStore) FindPrevious(titleVersionID uint, current float64) (*entities.Chapter, error) {
	var prev *entities.Chapter
	for i := range s.chapters[titleVersionID] {
		ch := s.chapters[titleVersionID][i]
		if ch.ChapterNumber < current {
			prev = &ch
		}
	}
	return prev, nil
}
func (s *spyChapterStore) FindLatest(limit int) ([]entities.Chapter, error) {
	s.latestLimit = limit
	return []entities.Chapter{}, nil
}

func sortedChapters(numbers ...float64) []entities.Chapter {
	chapters := make([]entities.Chapter, len(numbers))
	for i, n := range numbers {
		chapters[i] = entities.Chapter{ID: uint(i + 1), ChapterNumber: n}
	}
	return chapters
}

func TestGetNextChapter_SkipsGaps(t *testing.T) {
	store := &spyChapterStore{chapters: map[uint][]entities.Chapter{
		1: sortedChapters(1, 2, 3, 5),
	}}
	chapters := NewChapters(store, nil, nil)

	result := chapters.GetNextChapter(1, 3)
	require.True(t, result.Success())
	require.NotNil(t, result.Data())
	assert.Equal(t, 5.0, result.Data().ChapterNumber)
}

func TestGetNextChapter_LastChapterReturnsNil(t *testing.T) {
	store := &spyChapterStore{chapters: map[uint][]entities.Chapter{
		1: sortedChapters(1, 2, 3, 5),
	}}
	chapters := NewChapters(store, nil, nil)

	result := chapters.GetNextChapter(1, 5)
	require.True(t, result.Success())
	assert.Nil(t, result.Data())
}

func TestGetPreviousChapter(t *testing.T) {
	store := &spyChapterStore{chapters: map[uint][]entities.Chapter{
		1: sortedChapters(1, 2, 3, 5),
	}}
	chapters := NewChapters(store, nil, nil)

	result := chapters.GetPreviousChapter(1, 5)
	require.True(t, result.Success())
	require.NotNil(t, result.Data())
	assert.Equal(t, 3.0, result.Data().ChapterNumber)
}

func TestGetNextChapter_Validation(t *testing.T) {
	chapters := NewChapters(&spyChapterStore{}, nil, nil)

	result := chapters.GetNextChapter(0, 1)
	require.False(t, result.Success())
	assert.Equal(t, "Invalid title version ID", result.Err())

	result = chapters.GetNextChapter(1, -1)
	require.False(t, result.Success())
	assert.Equal(t, "Invalid chapter number", result.Err())
}

func TestGetPreviousChapter_ZeroCurrentIsInvalid(t *testing.T) {
	chapters := NewChapters(&spyChapterStore{}, nil, nil)

	result := chapters.GetPreviousChapter(1, 0)
	require.False(t, result.Success())
	assert.Equal(t, "Invalid chapter number", result.Err())
}

func TestGetLatestChapters_LimitBounds(t *testing.T) {
	store := &spyChapterStore{}
	chapters := NewChapters(store, nil, nil)

	for _, limit := range []int{0, -1, 51} {
		result := chapters.GetLatestChapters(limit)
		require.False(t, result.Success())
		assert.Equal(t, "Limit must be between 1 and 50", result.Err())
	}

	result := chapters.GetLatestChapters(50)
	require.True(t, result.Success())
	assert.Equal(t, 50, store.latestLimit)
}

func TestCreateChapter_Validation(t *testing.T) {
	store := &spyChapterStore{}
	chapters := NewChapters(store, nil, nil)

	result := chapters.CreateChapter(CreateChapterInput{TitleVersionID: 0, ChapterNumber: 1})
	require.False(t, result.Success())
	assert.Equal(t, "Invalid title version ID", result.Err())

	result = chapters.CreateChapter(CreateChapterInput{TitleVersionID: 1, ChapterNumber: 0})
	require.False(t, result.Success())
	assert.Equal(t, "Chapter number must be greater than 0", result.Err())

	assert.Zero(t, store.createCalls)
}

func TestCreateChapter_AllowsFractionalNumbers(t *testing.T) {
	store := &spyChapterStore{}
	chapters := NewChapters(store, nil, nil)

	result := chapters.CreateChapter(CreateChapterInput{TitleVersionID: 1, ChapterNumber: 2.5, Title: "Extra"})
	require.True(t, result.Success())
	assert.Equal(t, 2.5, result.Data().ChapterNumber)
}

func TestCreateChapter_RevalidatesVersionPage(t *testing.T) {
	store := &spyChapterStore{}
	revalidator := &spyRevalidator{}
	chapters := NewChapters(store, revalidator, nil)

	result := chapters.CreateChapter(CreateChapterInput{TitleVersionID: 4, ChapterNumber: 1})
	require.True(t, result.Success())
	assert.Contains(t, revalidator.paths, "/dashboard/title-versions/4")
}

func TestGetChapterWithPages_MissingIsError(t *testing.T) {
	chapters := NewChapters(&spyChapterStore{}, nil, nil)

	result := chapters.GetChapterWithPages(42)
	require.False(t, result.Success())
	assert.Equal(t, "Chapter not found", result.Err())
}

func TestUpdateChapter_InvalidNumber(t *testing.T) {
	store := &spyChapterStore{}
	chapters := NewChapters(store, nil, nil)

	zero := 0.0
	result := chapters.UpdateChapter(1, UpdateChapterInput{ChapterNumber: &zero})
	require.False(t, result.Success())
	assert.Equal(t, "Chapter number must be greater than 0", result.Err())
	assert.Zero(t, store.updateCalls)
}

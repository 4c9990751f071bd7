package chapters

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mimiru/mimiru/internal/database"
	"github.com/mimiru/mimiru/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository, func()) {
	dbPath := "./test_chapters_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.Title{},
		&entities.TitleVersion{},
		&entities.Chapter{},
		&entities.Page{},
	)
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return db, repo, cleanup
}

func createTestVersion(t *testing.T, db *gorm.DB) *entities.TitleVersion {
	title := &entities.Title{Title: "Test Title"}
	require.NoError(t, db.Create(title).Error)

	version := &entities.TitleVersion{TitleID: title.ID, Language: "en"}
	require.NoError(t, db.Create(version).Error)
	return version
}

func createTestChapter(t *testing.T, db *gorm.DB, versionID uint, number float64) *entities.Chapter {
	chapter := &entities.Chapter{
		TitleVersionID: versionID,
		ChapterNumber:  number,
	}
	require.NoError(t, db.Create(chapter).Error)
	return chapter
}

func TestRepository_FindByTitleVersion_Ordering(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	version := createTestVersion(t, db)
	createTestChapter(t, db, version.ID, 3)
	createTestChapter(t, db, version.ID, 1)
	createTestChapter(t, db, version.ID, 2.5)

	chapters, err := repo.FindByTitleVersion(version.ID)
	require.NoError(t, err)
	require.Len(t, chapters, 3)
	assert.Equal(t, 1.0, chapters[0].ChapterNumber)
	assert.Equal(t, 2.5, chapters[1].ChapterNumber)
	assert.Equal(t, 3.0, chapters[2].ChapterNumber)
}

func TestRepository_FindNext(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	version := createTestVersion(t, db)
	for _, n := range []float64{1, 2, 3, 5} {
		createTestChapter(t, db, version.ID, n)
	}

	next, err := repo.FindNext(version.ID, 3)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, 5.0, next.ChapterNumber)

	// Highest chapter has no next.
	next, err = repo.FindNext(version.ID, 5)
	require.NoError(t, err)
	assert.Nil(t, next)
}

func TestRepository_FindPrevious(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	version := createTestVersion(t, db)
	for _, n := range []float64{1, 2, 3, 5} {
		createTestChapter(t, db, version.ID, n)
	}

	prev, err := repo.FindPrevious(version.ID, 5)
	require.NoError(t, err)
	require.NotNil(t, prev)
	assert.Equal(t, 3.0, prev.ChapterNumber)

	prev, err = repo.FindPrevious(version.ID, 1)
	require.NoError(t, err)
	assert.Nil(t, prev)
}

func TestRepository_FindNext_IgnoresOtherVersions(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	version := createTestVersion(t, db)
	other := createTestVersion(t, db)
	createTestChapter(t, db, version.ID, 1)
	createTestChapter(t, db, other.ID, 2)

	next, err := repo.FindNext(version.ID, 1)
	require.NoError(t, err)
	assert.Nil(t, next)
}

func TestRepository_FindWithPages(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	version := createTestVersion(t, db)
	chapter := createTestChapter(t, db, version.ID, 1)

	pages := []entities.Page{
		{ChapterID: chapter.ID, PageNumber: 2, ImageURL: "https://cdn.example.com/p2.png"},
		{ChapterID: chapter.ID, PageNumber: 1, ImageURL: "https://cdn.example.com/p1.png"},
	}
	require.NoError(t, db.Create(&pages).Error)

	found, err := repo.FindWithPages(chapter.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Len(t, found.Pages, 2)
	assert.Equal(t, 1, found.Pages[0].PageNumber)
	assert.Equal(t, 2, found.Pages[1].PageNumber)
}

func TestRepository_FindWithPages_Missing(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	found, err := repo.FindWithPages(9999)
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestRepository_FindLatest(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	version := createTestVersion(t, db)
	base := time.Now()
	for i := 0; i < 5; i++ {
		chapter := &entities.Chapter{
			TitleVersionID: version.ID,
			ChapterNumber:  float64(i + 1),
			CreatedAt:      base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, db.Create(chapter).Error)
	}

	latest, err := repo.FindLatest(3)
	require.NoError(t, err)
	require.Len(t, latest, 3)
	assert.Equal(t, 5.0, latest[0].ChapterNumber)
	require.NotNil(t, latest[0].TitleVersion)
	require.NotNil(t, latest[0].TitleVersion.Title)
	assert.Equal(t, "Test Title", latest[0].TitleVersion.Title.Title)
}

func TestRepository_Create_DuplicateNumberInVersion(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	version := createTestVersion(t, db)
	createTestChapter(t, db, version.ID, 1)

	_, err := repo.Create(&entities.Chapter{TitleVersionID: version.ID, ChapterNumber: 1})
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err))
}

func TestRepository_UpdateAndDelete(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	version := createTestVersion(t, db)
	chapter := createTestChapter(t, db, version.ID, 1)

	updated, err := repo.Update(chapter.ID, map[string]any{"title": "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)

	require.NoError(t, repo.Delete(chapter.ID))

	found, err := repo.FindByID(chapter.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

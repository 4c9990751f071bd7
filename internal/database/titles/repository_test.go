package titles

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mimiru/mimiru/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository, func()) {
	dbPath := "./test_titles_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.Title{},
		&entities.Genre{},
		&entities.TitleGenre{},
		&entities.TitleVersion{},
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

func createTestTitle(t *testing.T, db *gorm.DB, name string, createdAt time.Time) *entities.Title {
	title := &entities.Title{
		Title:     name,
		Status:    entities.TitleStatusOngoing,
		CreatedAt: createdAt,
	}
	err := db.Create(title).Error
	require.NoError(t, err)
	return title
}

func TestRepository_CreateAndFindByID(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	created, err := repo.Create(&entities.Title{
		Title:       "Solo Farming",
		Description: "A farmer levels up",
		Status:      entities.TitleStatusOngoing,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	found, err := repo.FindByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Solo Farming", found.Title)
	assert.Equal(t, entities.TitleStatusOngoing, found.Status)
}

func TestRepository_FindByID_Missing(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	found, err := repo.FindByID(9999)
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestRepository_Update_PartialFields(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	title := createTestTitle(t, db, "Original", time.Now())

	updated, err := repo.Update(title.ID, map[string]any{"description": "New description"})
	require.NoError(t, err)
	assert.Equal(t, "Original", updated.Title)
	assert.Equal(t, "New description", updated.Description)
}

func TestRepository_Update_MissingRow(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.Update(9999, map[string]any{"title": "Nope"})
	assert.Error(t, err)
}

func TestRepository_Delete_MissingRowIsSuccess(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.Delete(9999)
	assert.NoError(t, err)
}

func TestRepository_Delete(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	title := createTestTitle(t, db, "Doomed", time.Now())

	require.NoError(t, repo.Delete(title.ID))

	found, err := repo.FindByID(title.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestRepository_FindByStatus(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	base := time.Now()
	createTestTitle(t, db, "Ongoing One", base)
	done := &entities.Title{Title: "Finished", Status: entities.TitleStatusCompleted, CreatedAt: base.Add(time.Minute)}
	require.NoError(t, db.Create(done).Error)

	ongoing, err := repo.FindByStatus(entities.TitleStatusOngoing)
	require.NoError(t, err)
	require.Len(t, ongoing, 1)
	assert.Equal(t, "Ongoing One", ongoing[0].Title)

	completed, err := repo.FindByStatus(entities.TitleStatusCompleted)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, "Finished", completed[0].Title)
}

func TestRepository_FindPaginated(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	base := time.Now()
	for i := 0; i < 25; i++ {
		createTestTitle(t, db, fmt.Sprintf("Title %02d", i), base.Add(time.Duration(i)*time.Second))
	}

	pageOne, total, err := repo.FindPaginated(1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	require.Len(t, pageOne, 10)
	// Newest first
	assert.Equal(t, "Title 24", pageOne[0].Title)

	pageThree, total, err := repo.FindPaginated(3, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	assert.Len(t, pageThree, 5)

	pageFour, total, err := repo.FindPaginated(4, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	assert.Empty(t, pageFour)
}

func TestRepository_Search(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	base := time.Now()
	createTestTitle(t, db, "Tower of Dawn", base)
	createTestTitle(t, db, "Midnight Bakery", base.Add(time.Second))
	withDesc := &entities.Title{Title: "Untitled", Description: "a tower grows", CreatedAt: base.Add(2 * time.Second)}
	require.NoError(t, db.Create(withDesc).Error)

	results, err := repo.Search("TOWER")
	require.NoError(t, err)
	require.Len(t, results, 2)
	// Newest first: the description match was created last.
	assert.Equal(t, "Untitled", results[0].Title)
	assert.Equal(t, "Tower of Dawn", results[1].Title)
}

func TestRepository_FindByCreator(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	mine := &entities.Title{Title: "Mine", CreatedBy: "user-1"}
	theirs := &entities.Title{Title: "Theirs", CreatedBy: "user-2"}
	require.NoError(t, db.Create(mine).Error)
	require.NoError(t, db.Create(theirs).Error)

	results, err := repo.FindByCreator("user-1")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Mine", results[0].Title)
}

func TestRepository_FindWithGenres(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	genre := &entities.Genre{Name: "Isekai"}
	require.NoError(t, db.Create(genre).Error)

	title := &entities.Title{Title: "Reborn as a Vending Machine", Genres: []entities.Genre{*genre}}
	require.NoError(t, db.Create(title).Error)

	results, err := repo.FindWithGenres()
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Len(t, results[0].Genres, 1)
	assert.Equal(t, "Isekai", results[0].Genres[0].Name)
}

func TestRepository_Count(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	createTestTitle(t, db, "One", time.Now())
	createTestTitle(t, db, "Two", time.Now())

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

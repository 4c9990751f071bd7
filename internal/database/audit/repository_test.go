package audit

import (
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

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := "./test_audit_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&entities.AuditEvent{}))

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func TestRepository_LogEvent_StampsCreatedAt(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	event := &entities.AuditEvent{
		ActorID:    "actor-1",
		Action:     "title_create",
		EntityType: "title",
		Status:     entities.AuditStatusSuccess,
	}
	require.NoError(t, repo.LogEvent(event))
	assert.False(t, event.CreatedAt.IsZero())
}

func TestRepository_GetEvents_FilterByActor(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.LogEvent(&entities.AuditEvent{
			ActorID: "actor-1",
			Action:  "title_update",
		}))
	}
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{
		ActorID: "actor-2",
		Action:  "genre_create",
	}))

	events, total, err := repo.GetEvents("actor-1", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, events, 3)

	all, total, err := repo.GetEvents("", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, all, 4)
}

func TestRepository_GetEvents_Pagination(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	base := time.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.LogEvent(&entities.AuditEvent{
			Action:    "title_create",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	events, total, err := repo.GetEvents("", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, events, 2)
}

func TestRepository_DeleteOlderThan(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	old := &entities.AuditEvent{Action: "title_delete", CreatedAt: time.Now().Add(-48 * time.Hour)}
	recent := &entities.AuditEvent{Action: "title_create", CreatedAt: time.Now()}
	require.NoError(t, repo.LogEvent(old))
	require.NoError(t, repo.LogEvent(recent))

	deleted, err := repo.DeleteOlderThan(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, total, err := repo.GetEvents("", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

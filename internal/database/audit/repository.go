package audit

import (
	"time"

	"gorm.io/gorm"

	"github.com/mimiru/mimiru/internal/database"
	"github.com/mimiru/mimiru/internal/entities"
)

const table = "audit_events"

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// LogEvent saves an audit event.
func (r *Repository) LogEvent(event *entities.AuditEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	if err := r.db.Create(event).Error; err != nil {
		return database.NewQueryError(table, "create", err)
	}
	return nil
}

// GetEvents retrieves paginated audit events, most recent first. An empty
// actorID returns events for all actors.
func (r *Repository) GetEvents(actorID string, limit, offset int) ([]entities.AuditEvent, int64, error) {
	var events []entities.AuditEvent
	var total int64

	query := r.db.Model(&entities.AuditEvent{})
	if actorID != "" {
		query = query.Where("actor_id = ?", actorID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, database.NewQueryError(table, "count", err)
	}

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&events).Error
	if err != nil {
		return nil, 0, database.NewQueryError(table, "fetch", err)
	}
	return events, total, nil
}

// DeleteOlderThan removes events created before the cutoff and returns
// how many were deleted.
func (r *Repository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&entities.AuditEvent{})
	if result.Error != nil {
		return 0, database.NewQueryError(table, "delete", result.Error)
	}
	return result.RowsAffected, nil
}

// Package audit provides the dashboard activity log. Mutating actions
// record what was changed and by whom; failures are recorded with the
// underlying detail so operators can see what callers cannot.
package audit

import (
	"log"

	"github.com/mimiru/mimiru/internal/database/audit"
	"github.com/mimiru/mimiru/internal/entities"
)

// Service provides high-level audit logging over the audit repository.
type Service struct {
	repo *audit.Repository
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records an audit event synchronously.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	go func() {
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// LogMutation records a successful or failed entity mutation.
func (s *Service) LogMutation(actorID, action, entityType, entityID string, err error) {
	event := &entities.AuditEvent{
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Status:     entities.AuditStatusSuccess,
	}
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.Detail = truncate(err.Error(), 500)
	}
	s.LogAsync(event)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

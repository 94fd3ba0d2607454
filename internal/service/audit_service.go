package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/dpointtt/sun-class-app/internal/models"
)

type auditStore interface {
	Create(ctx context.Context, entry *models.AuditLog) error
}

// AuditService records form action outcomes. Failures are logged and never reach the caller.
type AuditService struct {
	store  auditStore
	logger *zap.Logger
}

// NewAuditService constructs AuditService. A nil store disables recording.
func NewAuditService(store auditStore, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{store: store, logger: logger}
}

// Record persists entry.
func (s *AuditService) Record(ctx context.Context, entry models.AuditLog) {
	if s == nil || s.store == nil {
		return
	}
	if err := s.store.Create(ctx, &entry); err != nil {
		s.logger.Warn("failed to record audit log",
			zap.String("action", entry.Action),
			zap.String("outcome", entry.Outcome),
			zap.Error(err),
		)
	}
}

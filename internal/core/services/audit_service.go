package services

import (
	"context"
	"encoding/json"
	"log/slog"

	portsrepo "github.com/finacct/backend/internal/core/ports/repositories"
	portssvc "github.com/finacct/backend/internal/core/ports/services"
	"github.com/finacct/backend/internal/middleware"
)

// AuditService writes audit records through the audit log repository.
// Recording is best effort: a failed audit write is logged but never fails
// the operation being audited.
type AuditService struct {
	auditRepo portsrepo.AuditLogRepository
}

func NewAuditService(auditRepo portsrepo.AuditLogRepository) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

var _ portssvc.AuditSink = (*AuditService)(nil)

func (s *AuditService) Record(ctx context.Context, tenantID string, userID string, action string, details any) {
	logger := middleware.GetLoggerFromCtx(ctx)

	payload, err := json.Marshal(details)
	if err != nil {
		logger.Error("Failed to serialize audit details", slog.String("action", action), slog.String("error", err.Error()))
		payload = []byte("{}")
	}

	if err := s.auditRepo.SaveAuditLog(ctx, tenantID, userID, action, payload); err != nil {
		logger.Error("Failed to save audit log", slog.String("action", action), slog.String("error", err.Error()))
	}
}

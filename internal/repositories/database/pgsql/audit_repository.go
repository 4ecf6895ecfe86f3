package pgsql

import (
	"context"
	"fmt"
	"time"

	portsrepo "github.com/finacct/backend/internal/core/ports/repositories"
	"github.com/finacct/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuditLogRepository struct {
	BaseRepository
}

// newPgxAuditLogRepository creates a new repository for the audit trail.
func newPgxAuditLogRepository(pool *pgxpool.Pool) portsrepo.AuditLogRepository {
	return &PgxAuditLogRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditLogRepository = (*PgxAuditLogRepository)(nil)

// SaveAuditLog persists one audit record. Details is pre-serialized JSON.
func (r *PgxAuditLogRepository) SaveAuditLog(ctx context.Context, tenantID string, userID string, action string, details []byte) error {
	m := models.AuditLog{
		AuditID:   uuid.NewString(),
		TenantID:  tenantID,
		UserID:    userID,
		Action:    action,
		Details:   details,
		CreatedAt: time.Now(),
	}
	query := `
		INSERT INTO audit_logs (audit_id, tenant_id, user_id, action, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query, m.AuditID, m.TenantID, m.UserID, m.Action, m.Details, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save audit log (%s): %w", action, err)
	}
	return nil
}

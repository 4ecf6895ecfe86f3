package repositories

import "context"

// AuditLogRepository defines write access to the audit trail.
type AuditLogRepository interface {
	// SaveAuditLog persists one audit record; details is serialized JSON.
	SaveAuditLog(ctx context.Context, tenantID string, userID string, action string, details []byte) error
}

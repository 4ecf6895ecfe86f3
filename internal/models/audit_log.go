package models

import "time"

// AuditLog is the DB representation of one audit trail record.
// Details is serialized JSON.
type AuditLog struct {
	AuditID   string    `db:"audit_id"`
	TenantID  string    `db:"tenant_id"`
	UserID    string    `db:"user_id"`
	Action    string    `db:"action"`
	Details   []byte    `db:"details"`
	CreatedAt time.Time `db:"created_at"`
}

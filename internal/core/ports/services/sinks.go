package services

import "context"

// AuditSink records tamper-evident audit events for sensitive operations.
// Implementations must not fail the caller's operation.
type AuditSink interface {
	Record(ctx context.Context, tenantID string, userID string, action string, details any)
}

// NotificationSink dispatches operational notifications, such as large
// transaction alerts, to an external channel.
type NotificationSink interface {
	Notify(ctx context.Context, tenantID string, kind string, payload any)
}

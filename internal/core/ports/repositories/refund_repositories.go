package repositories

import (
	"context"

	"github.com/finacct/backend/internal/core/domain"
)

// RefundReader defines read operations for refunds
type RefundReader interface {
	// FindRefundByID retrieves a refund by its unique identifier.
	FindRefundByID(ctx context.Context, tenantID string, refundID string) (*domain.Refund, error)

	// FindActiveRefundForTransaction returns an existing refund in the
	// requested/approved/released states for the original transaction, or
	// ErrNotFound when none exists.
	FindActiveRefundForTransaction(ctx context.Context, tenantID string, originalTransactionID string) (*domain.Refund, error)

	// ListRefundsByTenant retrieves all refunds for a tenant, newest first.
	ListRefundsByTenant(ctx context.Context, tenantID string) ([]domain.Refund, error)
}

// RefundWriter defines write operations for refunds
type RefundWriter interface {
	// SaveRefund persists a new refund request.
	SaveRefund(ctx context.Context, refund domain.Refund) error

	// UpdateRefundStatus transitions a refund's status. The approval
	// transition itself happens inside PostingWriter.SaveReversal; this is
	// used for release and failure transitions.
	UpdateRefundStatus(ctx context.Context, tenantID string, refundID string, status domain.RefundStatus, actorUserID string) error
}

// RefundRepositoryFacade combines all refund-related repository interfaces
type RefundRepositoryFacade interface {
	RefundReader
	RefundWriter
}

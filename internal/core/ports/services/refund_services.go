package services

import (
	"context"

	"github.com/finacct/backend/internal/core/domain"
	"github.com/finacct/backend/internal/dto"
)

// RefundSvcFacade defines the refund lifecycle and reversal operations
type RefundSvcFacade interface {
	// RequestRefund records a refund request against a posted transaction.
	// A transaction can carry at most one active refund at a time.
	RequestRefund(ctx context.Context, tenantID string, req dto.RequestRefundRequest, userID string) (*domain.Refund, error)

	// ApproveRefund approves a requested refund and posts the proportional
	// reversal transaction in the same unit of work.
	ApproveRefund(ctx context.Context, tenantID string, refundID string, userID string) (*domain.Refund, *domain.Transaction, error)

	// ReleaseRefund marks an approved refund as settled externally.
	ReleaseRefund(ctx context.Context, tenantID string, refundID string, userID string) (*domain.Refund, error)

	// FailRefund marks a requested or approved refund as failed, freeing the
	// one-active-refund slot on the original transaction.
	FailRefund(ctx context.Context, tenantID string, refundID string, userID string) (*domain.Refund, error)

	// GetRefundByID retrieves a refund.
	GetRefundByID(ctx context.Context, tenantID string, refundID string) (*domain.Refund, error)

	// ListRefunds retrieves the tenant's refunds, newest first.
	ListRefunds(ctx context.Context, tenantID string) ([]domain.Refund, error)
}

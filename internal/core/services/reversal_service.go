package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finacct/backend/internal/apperrors"
	"github.com/finacct/backend/internal/core/domain"
	portsrepo "github.com/finacct/backend/internal/core/ports/repositories"
	portssvc "github.com/finacct/backend/internal/core/ports/services"
	"github.com/finacct/backend/internal/dto"
	"github.com/finacct/backend/internal/middleware"
	"github.com/finacct/backend/internal/platform/cache"
	"github.com/finacct/backend/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ReversalService struct {
	refundRepo  portsrepo.RefundRepositoryFacade
	postingRepo portsrepo.PostingRepositoryFacade
	auditSink   portssvc.AuditSink
	reportCache *cache.ReportCache
}

func NewReversalService(
	refundRepo portsrepo.RefundRepositoryFacade,
	postingRepo portsrepo.PostingRepositoryFacade,
	auditSink portssvc.AuditSink,
	reportCache *cache.ReportCache,
) *ReversalService {
	return &ReversalService{
		refundRepo:  refundRepo,
		postingRepo: postingRepo,
		auditSink:   auditSink,
		reportCache: reportCache,
	}
}

var _ portssvc.RefundSvcFacade = (*ReversalService)(nil)

// RequestRefund records a refund request after checking the original
// transaction exists and carries no other active refund.
func (s *ReversalService) RequestRefund(ctx context.Context, tenantID string, req dto.RequestRefundRequest, userID string) (*domain.Refund, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: refund amount must be positive", apperrors.ErrValidation)
	}

	original, err := s.postingRepo.FindTransactionByID(ctx, req.OriginalTransactionID)
	if err != nil {
		return nil, err
	}
	if original.TenantID != tenantID {
		return nil, apperrors.ErrNotFound
	}

	existing, err := s.refundRepo.FindActiveRefundForTransaction(ctx, tenantID, req.OriginalTransactionID)
	if err == nil {
		return nil, fmt.Errorf("%w: refund %s is already active for transaction %s", apperrors.ErrDuplicate, existing.RefundID, req.OriginalTransactionID)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	refund := domain.Refund{
		RefundID:              uuid.NewString(),
		TenantID:              tenantID,
		CustomerID:            req.CustomerID,
		OriginalTransactionID: req.OriginalTransactionID,
		Amount:                req.Amount,
		CurrencyCode:          req.CurrencyCode,
		Reason:                req.Reason,
		Status:                domain.RefundRequested,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.refundRepo.SaveRefund(ctx, refund); err != nil {
		logger.Error("Failed to save refund", slog.String("error", err.Error()), slog.String("refund_id", refund.RefundID))
		return nil, err
	}

	s.auditSink.Record(ctx, tenantID, userID, "REFUND_REQUESTED", map[string]string{
		"refundID":              refund.RefundID,
		"originalTransactionID": refund.OriginalTransactionID,
		"amount":                refund.Amount.String(),
	})
	logger.Info("Refund requested", slog.String("refund_id", refund.RefundID))
	return &refund, nil
}

// ApproveRefund builds the proportionally-scaled reversal of the original
// transaction and posts it together with the refund's approval transition.
// Partial refunds scale every leg by min(|amount / originalNet|, 1); a
// degenerate zero-net original reverses one-to-one.
func (s *ReversalService) ApproveRefund(ctx context.Context, tenantID string, refundID string, userID string) (*domain.Refund, *domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	refund, err := s.refundRepo.FindRefundByID(ctx, tenantID, refundID)
	if err != nil {
		return nil, nil, err
	}
	if refund.Status != domain.RefundRequested {
		return nil, nil, fmt.Errorf("%w: refund %s is %s, only requested refunds can be approved", apperrors.ErrConflict, refundID, refund.Status)
	}

	original, err := s.postingRepo.FindTransactionByID(ctx, refund.OriginalTransactionID)
	if err != nil {
		return nil, nil, err
	}
	originalEntries, err := s.postingRepo.FindEntriesByTransactionID(ctx, refund.OriginalTransactionID)
	if err != nil {
		return nil, nil, err
	}
	if len(originalEntries) == 0 {
		return nil, nil, fmt.Errorf("%w: transaction %s has no entries", apperrors.ErrReversalFailed, refund.OriginalTransactionID)
	}

	originalNet := accounting.NetValue(originalEntries)
	factor := accounting.ReversalFactor(refund.Amount, originalNet)

	now := time.Now()
	reversalID := uuid.NewString()
	reversalEntries := accounting.ScaleEntries(accounting.SwapLegs(originalEntries), factor)
	for i := range reversalEntries {
		reversalEntries[i].EntryID = uuid.NewString()
		reversalEntries[i].TransactionID = reversalID
		reversalEntries[i].AuditFields = domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		}
	}

	if err := accounting.ValidateEntriesBalance(reversalEntries); err != nil {
		return nil, nil, fmt.Errorf("%w: scaled reversal does not balance: %s", apperrors.ErrReversalFailed, err.Error())
	}

	reversal := domain.Transaction{
		TransactionID:   reversalID,
		TenantID:        tenantID,
		TransactionDate: now,
		Description:     fmt.Sprintf("Reversal of %s (refund %s)", original.Description, refundID),
		Source:          domain.SourceRefund,
		Status:          domain.Posted,
		CurrencyCode:    original.CurrencyCode,
		Amount:          accounting.SumDebits(reversalEntries).Round(2),
		RefundID:        &refundID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.postingRepo.SaveReversal(ctx, reversal, reversalEntries, refundID, userID); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) && !errors.Is(err, apperrors.ErrPeriodLocked) {
			logger.Error("Failed to post reversal", slog.String("error", err.Error()), slog.String("refund_id", refundID))
		}
		return nil, nil, err
	}

	s.reportCache.InvalidateTenant(ctx, tenantID)

	refund.Status = domain.RefundApproved
	refund.ApprovedBy = userID
	refund.ReversalTransactionID = &reversalID
	reversal.Entries = reversalEntries

	s.auditSink.Record(ctx, tenantID, userID, "REFUND_APPROVED", map[string]string{
		"refundID":              refundID,
		"reversalTransactionID": reversalID,
		"factor":                factor.String(),
	})
	logger.Info("Refund approved", slog.String("refund_id", refundID), slog.String("reversal_transaction_id", reversalID))
	return refund, &reversal, nil
}

// ReleaseRefund marks an approved refund as settled externally.
func (s *ReversalService) ReleaseRefund(ctx context.Context, tenantID string, refundID string, userID string) (*domain.Refund, error) {
	return s.transition(ctx, tenantID, refundID, userID, domain.RefundApproved, domain.RefundReleased, "REFUND_RELEASED")
}

// FailRefund marks a requested or approved refund as failed.
func (s *ReversalService) FailRefund(ctx context.Context, tenantID string, refundID string, userID string) (*domain.Refund, error) {
	refund, err := s.refundRepo.FindRefundByID(ctx, tenantID, refundID)
	if err != nil {
		return nil, err
	}
	if refund.Status != domain.RefundRequested && refund.Status != domain.RefundApproved {
		return nil, fmt.Errorf("%w: refund %s is %s and cannot fail", apperrors.ErrConflict, refundID, refund.Status)
	}
	return s.transition(ctx, tenantID, refundID, userID, refund.Status, domain.RefundFailed, "REFUND_FAILED")
}

func (s *ReversalService) transition(ctx context.Context, tenantID, refundID, userID string, from, to domain.RefundStatus, auditAction string) (*domain.Refund, error) {
	refund, err := s.refundRepo.FindRefundByID(ctx, tenantID, refundID)
	if err != nil {
		return nil, err
	}
	if refund.Status != from {
		return nil, fmt.Errorf("%w: refund %s is %s, expected %s", apperrors.ErrConflict, refundID, refund.Status, from)
	}

	if err := s.refundRepo.UpdateRefundStatus(ctx, tenantID, refundID, to, userID); err != nil {
		return nil, err
	}
	refund.Status = to

	s.auditSink.Record(ctx, tenantID, userID, auditAction, map[string]string{"refundID": refundID})
	return refund, nil
}

// GetRefundByID retrieves a refund.
func (s *ReversalService) GetRefundByID(ctx context.Context, tenantID string, refundID string) (*domain.Refund, error) {
	return s.refundRepo.FindRefundByID(ctx, tenantID, refundID)
}

// ListRefunds retrieves the tenant's refunds, newest first.
func (s *ReversalService) ListRefunds(ctx context.Context, tenantID string) ([]domain.Refund, error) {
	refunds, err := s.refundRepo.ListRefundsByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if refunds == nil {
		return []domain.Refund{}, nil
	}
	return refunds, nil
}

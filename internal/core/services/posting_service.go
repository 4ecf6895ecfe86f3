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

type PostingService struct {
	postingRepo      portsrepo.PostingRepositoryFacade
	periodRepo       portsrepo.PeriodReader
	accountSvc       portssvc.AccountReaderSvc
	auditSink        portssvc.AuditSink
	notificationSink portssvc.NotificationSink
	reportCache      *cache.ReportCache
	largeTxThreshold decimal.Decimal
}

func NewPostingService(
	postingRepo portsrepo.PostingRepositoryFacade,
	periodRepo portsrepo.PeriodReader,
	accountSvc portssvc.AccountReaderSvc,
	auditSink portssvc.AuditSink,
	notificationSink portssvc.NotificationSink,
	reportCache *cache.ReportCache,
	largeTxThreshold decimal.Decimal,
) *PostingService {
	return &PostingService{
		postingRepo:      postingRepo,
		periodRepo:       periodRepo,
		accountSvc:       accountSvc,
		auditSink:        auditSink,
		notificationSink: notificationSink,
		reportCache:      reportCache,
		largeTxThreshold: largeTxThreshold,
	}
}

var _ portssvc.PostingSvcFacade = (*PostingService)(nil)

// PostTransaction validates the balance invariant, verifies every referenced
// account, checks the date against closed periods and persists atomically.
// The repository re-checks closed periods under the tenant period lock, so a
// close committing between the check here and the insert still rejects the
// posting.
func (s *PostingService) PostTransaction(ctx context.Context, tenantID string, req dto.PostTransactionRequest, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	source := req.Source
	if source == "" {
		source = domain.SourceManual
	}

	transactionID := uuid.NewString()
	entries := make([]domain.Entry, len(req.Lines))
	for i, line := range req.Lines {
		entries[i] = domain.Entry{
			EntryID:       uuid.NewString(),
			TransactionID: transactionID,
			AccountID:     line.AccountID,
			Debit:         line.Debit,
			Credit:        line.Credit,
			CurrencyCode:  req.CurrencyCode,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	if err := accounting.ValidateEntriesBalance(entries); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnbalancedEntry, err.Error())
	}

	accountIDs := make([]string, len(entries))
	for i, e := range entries {
		accountIDs[i] = e.AccountID
	}
	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, tenantID, accountIDs)
	if err != nil {
		return nil, err
	}
	for id, acc := range accounts {
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
	}

	if covering, err := s.periodRepo.FindClosedPeriodCovering(ctx, tenantID, req.Date); err == nil {
		return nil, fmt.Errorf("%w: period %s is closed", apperrors.ErrPeriodLocked, covering.Period)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	amount := accounting.SumDebits(entries).Round(2)
	transaction := domain.Transaction{
		TransactionID:   transactionID,
		TenantID:        tenantID,
		TransactionDate: req.Date,
		Description:     req.Description,
		Source:          source,
		Status:          domain.Posted,
		CurrencyCode:    req.CurrencyCode,
		Amount:          amount,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.postingRepo.SaveTransaction(ctx, transaction, entries); err != nil {
		if !errors.Is(err, apperrors.ErrPeriodLocked) && !errors.Is(err, apperrors.ErrAccountNotFound) {
			logger.Error("Failed to save transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		}
		return nil, err
	}

	s.reportCache.InvalidateTenant(ctx, tenantID)
	s.auditSink.Record(ctx, tenantID, userID, "JOURNAL_ENTRY_POSTED", map[string]string{
		"transactionID": transactionID,
		"amount":        amount.String(),
		"source":        string(source),
	})
	s.flagLargeTransaction(ctx, tenantID, userID, &transaction)

	transaction.Entries = entries
	logger.Info("Transaction posted", slog.String("transaction_id", transactionID), slog.String("amount", amount.String()))
	return &transaction, nil
}

// flagLargeTransaction records an audit event and dispatches a notification
// when the posted amount reaches the configured threshold. Both are best
// effort, a posted transaction is never rolled back over them.
func (s *PostingService) flagLargeTransaction(ctx context.Context, tenantID, userID string, txn *domain.Transaction) {
	if s.largeTxThreshold.LessThanOrEqual(decimal.Zero) || txn.Amount.LessThan(s.largeTxThreshold) {
		return
	}
	details := map[string]string{
		"transactionID": txn.TransactionID,
		"amount":        txn.Amount.String(),
		"threshold":     s.largeTxThreshold.String(),
	}
	s.auditSink.Record(ctx, tenantID, userID, "LARGE_TX", details)
	s.notificationSink.Notify(ctx, tenantID, "large_tx_detected", details)
}

// GetTransactionByID retrieves a transaction with its entries, enforcing
// tenant ownership.
func (s *PostingService) GetTransactionByID(ctx context.Context, tenantID string, transactionID string) (*domain.Transaction, error) {
	transaction, err := s.postingRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if transaction.TenantID != tenantID {
		return nil, apperrors.ErrNotFound
	}

	entries, err := s.postingRepo.FindEntriesByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	transaction.Entries = entries
	return transaction, nil
}

// ListTransactions retrieves a page of transactions, newest first.
func (s *PostingService) ListTransactions(ctx context.Context, tenantID string, params dto.ListTransactionsParams) ([]domain.Transaction, string, error) {
	transactions, nextToken, err := s.postingRepo.ListTransactionsByTenant(ctx, tenantID, params.Limit, params.NextToken)
	if err != nil {
		return nil, "", err
	}
	token := ""
	if nextToken != nil {
		token = *nextToken
	}
	return transactions, token, nil
}

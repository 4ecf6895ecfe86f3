package services

import (
	"context"

	"github.com/finacct/backend/internal/core/domain"
	"github.com/finacct/backend/internal/dto"
)

// PostingSvcFacade defines operations for posting and reading journal transactions
type PostingSvcFacade interface {
	// PostTransaction validates and persists a balanced journal transaction.
	// Rejects unbalanced entry sets and transactions dated inside a closed
	// period.
	PostTransaction(ctx context.Context, tenantID string, req dto.PostTransactionRequest, userID string) (*domain.Transaction, error)

	// GetTransactionByID retrieves a transaction with its entries.
	GetTransactionByID(ctx context.Context, tenantID string, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves transactions for a tenant, newest first,
	// with token pagination.
	ListTransactions(ctx context.Context, tenantID string, params dto.ListTransactionsParams) ([]domain.Transaction, string, error)
}

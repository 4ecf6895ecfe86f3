package repositories

import (
	"context"

	"github.com/finacct/backend/internal/core/domain"
)

// PostingReader defines read operations for posted transactions and their entries
type PostingReader interface {
	// FindTransactionByID retrieves a transaction header by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindEntriesByTransactionID retrieves all entry legs of a single transaction.
	FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.Entry, error)

	// ListTransactionsByTenant retrieves a paginated list of transactions using
	// token-based pagination, newest first.
	ListTransactionsByTenant(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// PostingWriter defines write operations for posting balanced transactions
type PostingWriter interface {
	// SaveTransaction persists the transaction header and its entries as one
	// atomic unit. It takes a shared tenant period lock and fails with
	// ErrPeriodLocked if the transaction date falls inside a closed period.
	SaveTransaction(ctx context.Context, transaction domain.Transaction, entries []domain.Entry) error

	// SaveReversal persists a reversal transaction with its entries AND marks
	// the originating refund approved, all in one atomic unit.
	SaveReversal(ctx context.Context, transaction domain.Transaction, entries []domain.Entry, refundID string, approverUserID string) error
}

// PostingRepositoryFacade combines all posting-related repository interfaces
type PostingRepositoryFacade interface {
	PostingReader
	PostingWriter
}

package repositories

import (
	"context"
	"time"

	"github.com/finacct/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ClosingAccounts carries the resolved system account ids needed to post the
// closing entry. Either id may be empty if the tenant has no such account;
// the close then fails with ErrMissingSystemAccount when a closing entry is
// actually required.
type ClosingAccounts struct {
	RetainedEarningsID string
	IncomeSummaryID    string
	CurrencyCode       string
}

// PeriodReader defines read operations for closed periods
type PeriodReader interface {
	// FindClosedPeriodCovering returns the closed period containing the date,
	// or ErrNotFound when the date is open for posting.
	FindClosedPeriodCovering(ctx context.Context, tenantID string, date time.Time) (*domain.PeriodClose, error)

	// FindPeriodClose retrieves the close record for a period label.
	FindPeriodClose(ctx context.Context, tenantID string, period string) (*domain.PeriodClose, error)

	// ListPeriodCloses retrieves all close records for a tenant, newest first.
	ListPeriodCloses(ctx context.Context, tenantID string) ([]domain.PeriodClose, error)
}

// PeriodWriter defines the atomic close operation
type PeriodWriter interface {
	// ClosePeriod performs the whole close as one atomic unit under an
	// exclusive tenant period lock: duplicate check (ErrAlreadyClosed),
	// persisting the close record, measuring net income over the range by
	// account-code classification, and posting the closing entry that sweeps
	// net income into retained earnings. Nothing is persisted on failure.
	// Returns the measured net income and the closing transaction id, if any.
	ClosePeriod(ctx context.Context, close domain.PeriodClose, accounts ClosingAccounts, closedByUserID string) (decimal.Decimal, *string, error)
}

// PeriodRepositoryFacade combines all period-related repository interfaces
type PeriodRepositoryFacade interface {
	PeriodReader
	PeriodWriter
}

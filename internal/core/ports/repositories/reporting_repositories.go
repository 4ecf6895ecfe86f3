package repositories

import (
	"context"
	"time"

	"github.com/finacct/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository defines the read-side aggregations used by the trial
// balance calculator and the ledger query facade. All methods are pure reads.
type ReportingRepository interface {
	// GetTrialBalanceRows returns one row per account of the tenant's chart
	// with summed debit/credit activity in [start, end]. Accounts with no
	// activity appear with zero sums.
	GetTrialBalanceRows(ctx context.Context, tenantID string, start, end time.Time) ([]domain.TrialBalanceRow, error)

	// GetBalanceSheetRows returns per-account net totals (debit - credit) up
	// to asOf for the whole chart, zero-activity accounts included.
	GetBalanceSheetRows(ctx context.Context, tenantID string, asOf time.Time) ([]domain.Account, map[string]decimal.Decimal, error)

	// GetIncomeStatementTotals returns summed revenue (credit-normal) and
	// expense (debit-normal) activity in [start, end].
	GetIncomeStatementTotals(ctx context.Context, tenantID string, start, end time.Time) (revenue, expense decimal.Decimal, err error)

	// GetCashFlowTotals returns summed debits (inflows) and credits
	// (outflows) over the given accounts in [start, end].
	GetCashFlowTotals(ctx context.Context, tenantID string, accountIDs []string, start, end time.Time) (inflows, outflows decimal.Decimal, err error)

	// ListLedgerLines retrieves entry legs for one account joined with their
	// owning transaction, date-ascending, with token pagination.
	ListLedgerLines(ctx context.Context, tenantID string, accountID string, limit int, nextToken *string) ([]domain.LedgerLine, *string, error)
}

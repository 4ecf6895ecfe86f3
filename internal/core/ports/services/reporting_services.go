package services

import (
	"context"
	"time"

	"github.com/finacct/backend/internal/core/domain"
	"github.com/finacct/backend/internal/dto"
)

// TrialBalanceSvc defines the trial balance report
type TrialBalanceSvc interface {
	// GetTrialBalance aggregates per-account debit and credit totals over the
	// date range and reports whether the books balance.
	GetTrialBalance(ctx context.Context, tenantID string, from time.Time, to time.Time) (*domain.TrialBalanceReport, error)
}

// LedgerQuerySvc defines the read-side reports over posted entries
type LedgerQuerySvc interface {
	// GetBalanceSheet reports assets, liabilities and equity as of a date.
	GetBalanceSheet(ctx context.Context, tenantID string, asOf time.Time) (*domain.BalanceSheetReport, error)

	// GetIncomeStatement reports income, expenses and net income over a range.
	GetIncomeStatement(ctx context.Context, tenantID string, from time.Time, to time.Time) (*domain.IncomeStatementReport, error)

	// GetCashFlow reports inflow and outflow over cash accounts for a range.
	GetCashFlow(ctx context.Context, tenantID string, from time.Time, to time.Time) (*domain.CashFlowReport, error)

	// ListLedgerLines retrieves the account's entry lines joined with their
	// transactions, date ascending, token paginated.
	ListLedgerLines(ctx context.Context, tenantID string, accountID string, params dto.ListLedgerParams) ([]domain.LedgerLine, string, error)
}

// ReportingSvcFacade combines all reporting service interfaces
type ReportingSvcFacade interface {
	TrialBalanceSvc
	LedgerQuerySvc
}

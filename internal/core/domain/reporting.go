package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents one account's aggregated activity in a date range.
// Zero-activity accounts still appear with zero debit/credit/balance.
type TrialBalanceRow struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Balance   decimal.Decimal `json:"balance"` // debit - credit
}

// TrialBalanceTotals sums all rows. Balanced is a system health check: balance
// is already enforced per transaction at posting time, so an imbalance here
// indicates data corruption.
type TrialBalanceTotals struct {
	Debit    decimal.Decimal `json:"debit"`
	Credit   decimal.Decimal `json:"credit"`
	Balanced bool            `json:"balanced"`
}

// TrialBalanceReport is the full trial balance for a tenant and date range.
type TrialBalanceReport struct {
	Rows   []TrialBalanceRow  `json:"rows"`
	Totals TrialBalanceTotals `json:"totals"`
	Start  time.Time          `json:"start"`
	End    time.Time          `json:"end"`
}

// PeriodCloseResult is the outcome of closing an accounting period.
type PeriodCloseResult struct {
	Status    PeriodStatus    `json:"status"`
	Period    string          `json:"period"`
	NetIncome decimal.Decimal `json:"netIncome"`
}

// BalanceGroupRow is one account line within a balance sheet group.
type BalanceGroupRow struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Total     decimal.Decimal `json:"total"`
}

// BalanceSheetReport groups the chart into assets, liabilities and equity as
// of a date. Accounts with no activity appear with a zero total.
type BalanceSheetReport struct {
	AsOf        time.Time         `json:"asOf"`
	Assets      []BalanceGroupRow `json:"assets"`
	Liabilities []BalanceGroupRow `json:"liabilities"`
	Equity      []BalanceGroupRow `json:"equity"`
}

// IncomeStatementReport summarizes revenue and expense activity in a range.
type IncomeStatementReport struct {
	Start     time.Time       `json:"start"`
	End       time.Time       `json:"end"`
	Revenue   decimal.Decimal `json:"revenue"`
	Expense   decimal.Decimal `json:"expense"`
	NetIncome decimal.Decimal `json:"netIncome"`
}

// CashFlowReport aggregates debits (inflows) and credits (outflows) across
// the tenant's cash accounts.
type CashFlowReport struct {
	Start    time.Time       `json:"start"`
	End      time.Time       `json:"end"`
	Inflows  decimal.Decimal `json:"inflows"`
	Outflows decimal.Decimal `json:"outflows"`
	Net      decimal.Decimal `json:"net"`
}

// LedgerLine is one entry leg joined with its owning transaction, as shown in
// a per-account ledger listing.
type LedgerLine struct {
	EntryID         string          `json:"entryID"`
	TransactionID   string          `json:"transactionID"`
	TransactionDate time.Time       `json:"transactionDate"`
	Description     string          `json:"description"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	CurrencyCode    string          `json:"currencyCode"`
}

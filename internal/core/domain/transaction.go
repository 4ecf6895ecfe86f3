package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus indicates the state of a posted transaction.
type TransactionStatus string

const (
	Posted TransactionStatus = "POSTED"
)

// TransactionSource records which subsystem produced a transaction.
type TransactionSource string

const (
	SourceManual  TransactionSource = "manual"
	SourceSystem  TransactionSource = "system"
	SourceRefund  TransactionSource = "refund"
	SourceBankCSV TransactionSource = "bank_csv"
)

// Transaction represents a single balanced journal entry: one economic event
// composed of two or more debit/credit entries. Transactions are immutable
// once posted; corrections happen via new reversing transactions.
type Transaction struct {
	TransactionID   string            `json:"transactionID"` // Primary key (UUID)
	TenantID        string            `json:"tenantID"`      // FK -> tenants (NON-NULL)
	TransactionDate time.Time         `json:"transactionDate"`
	Description     string            `json:"description"`
	Source          TransactionSource `json:"source"`
	Status          TransactionStatus `json:"status"`       // Default: POSTED
	CurrencyCode    string            `json:"currencyCode"` // Primary currency (NON-NULL)
	Amount          decimal.Decimal   `json:"amount"`       // Informational total (sum of debits)
	RefundID        *string           `json:"refundID,omitempty"`
	Entries         []Entry           `json:"entries,omitempty"`
	AuditFields
}

// Entry represents a single debit or credit leg within a Transaction,
// affecting one account. Exactly one of Debit/Credit is expected to be
// non-zero; both are always >= 0.
type Entry struct {
	EntryID       string          `json:"entryID"`       // Primary key (UUID)
	TransactionID string          `json:"transactionID"` // FK -> Transaction (NON-NULL)
	AccountID     string          `json:"accountID"`     // FK -> Account (NON-NULL)
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	CurrencyCode  string          `json:"currencyCode"`
	AuditFields
}

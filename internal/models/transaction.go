package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the DB representation of a posted journal entry header.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	TenantID        string          `db:"tenant_id"`
	TransactionDate time.Time       `db:"transaction_date"`
	Description     string          `db:"description"`
	Source          string          `db:"source"`
	Status          string          `db:"status"`
	CurrencyCode    string          `db:"currency_code"`
	Amount          decimal.Decimal `db:"amount"`
	RefundID        *string         `db:"refund_id"`
	AuditFields
}

// Entry is the DB representation of a single debit/credit leg.
type Entry struct {
	EntryID       string          `db:"entry_id"`
	TransactionID string          `db:"transaction_id"`
	AccountID     string          `db:"account_id"`
	Debit         decimal.Decimal `db:"debit"`
	Credit        decimal.Decimal `db:"credit"`
	CurrencyCode  string          `db:"currency_code"`
	AuditFields
}

package models

import "github.com/shopspring/decimal"

// Refund is the DB representation of a refund request.
type Refund struct {
	RefundID              string          `db:"refund_id"`
	TenantID              string          `db:"tenant_id"`
	CustomerID            string          `db:"customer_id"`
	OriginalTransactionID string          `db:"original_transaction_id"`
	Amount                decimal.Decimal `db:"amount"`
	CurrencyCode          string          `db:"currency_code"`
	Reason                string          `db:"reason"`
	Status                string          `db:"status"`
	ApprovedBy            string          `db:"approved_by"`
	ReversalTransactionID *string         `db:"reversal_transaction_id"`
	AuditFields
}

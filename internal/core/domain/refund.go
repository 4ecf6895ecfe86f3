package domain

import "github.com/shopspring/decimal"

// RefundStatus tracks the refund lifecycle:
// requested -> approved -> released, or requested/approved -> failed.
type RefundStatus string

const (
	RefundRequested RefundStatus = "requested"
	RefundApproved  RefundStatus = "approved"
	RefundReleased  RefundStatus = "released"
	RefundFailed    RefundStatus = "failed"
)

// Refund is a request to return value from a previously posted transaction.
// Approval generates a proportionally-scaled reversal transaction; release is
// the optional external settlement step.
type Refund struct {
	RefundID              string          `json:"refundID"` // Primary key (UUID)
	TenantID              string          `json:"tenantID"`
	CustomerID            string          `json:"customerID"`
	OriginalTransactionID string          `json:"originalTransactionID"`
	Amount                decimal.Decimal `json:"amount"` // May be less than the original net (partial refund)
	CurrencyCode          string          `json:"currencyCode"`
	Reason                string          `json:"reason,omitempty"`
	Status                RefundStatus    `json:"status"`
	ApprovedBy            string          `json:"approvedBy,omitempty"`
	ReversalTransactionID *string         `json:"reversalTransactionID,omitempty"`
	AuditFields
}

// IsActive reports whether the refund still occupies the one-active-refund
// slot for its original transaction.
func (r Refund) IsActive() bool {
	switch r.Status {
	case RefundRequested, RefundApproved, RefundReleased:
		return true
	}
	return false
}

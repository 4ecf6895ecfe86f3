package dto

import (
	"time"

	"github.com/finacct/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RequestRefundRequest defines the data needed to open a refund request.
type RequestRefundRequest struct {
	CustomerID            string          `json:"customerID" binding:"required"`
	OriginalTransactionID string          `json:"originalTransactionID" binding:"required"`
	Amount                decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode          string          `json:"currencyCode" binding:"required,currency"`
	Reason                string          `json:"reason"`
}

// RefundResponse defines the data returned for a refund.
type RefundResponse struct {
	RefundID              string          `json:"refundID"`
	CustomerID            string          `json:"customerID"`
	OriginalTransactionID string          `json:"originalTransactionID"`
	Amount                decimal.Decimal `json:"amount"`
	CurrencyCode          string          `json:"currencyCode"`
	Reason                string          `json:"reason,omitempty"`
	Status                string          `json:"status"`
	ApprovedBy            string          `json:"approvedBy,omitempty"`
	ReversalTransactionID *string         `json:"reversalTransactionID,omitempty"`
	CreatedAt             time.Time       `json:"createdAt"`
}

// ApproveRefundResponse is returned after a refund approval posts its reversal.
type ApproveRefundResponse struct {
	RefundID              string `json:"refundID"`
	Status                string `json:"status"`
	ReversalTransactionID string `json:"reversalTransactionID"`
}

// ToRefundResponse converts a domain.Refund to RefundResponse DTO.
func ToRefundResponse(r *domain.Refund) RefundResponse {
	return RefundResponse{
		RefundID:              r.RefundID,
		CustomerID:            r.CustomerID,
		OriginalTransactionID: r.OriginalTransactionID,
		Amount:                r.Amount,
		CurrencyCode:          r.CurrencyCode,
		Reason:                r.Reason,
		Status:                string(r.Status),
		ApprovedBy:            r.ApprovedBy,
		ReversalTransactionID: r.ReversalTransactionID,
		CreatedAt:             r.CreatedAt,
	}
}

// ToRefundResponses converts a slice of domain.Refund to []RefundResponse.
func ToRefundResponses(refunds []domain.Refund) []RefundResponse {
	responses := make([]RefundResponse, len(refunds))
	for i := range refunds {
		responses[i] = ToRefundResponse(&refunds[i])
	}
	return responses
}

package mapping

import (
	"github.com/finacct/backend/internal/core/domain"
	"github.com/finacct/backend/internal/models"
)

// ToModelRefund converts a domain Refund to a model Refund
func ToModelRefund(d domain.Refund) models.Refund {
	return models.Refund{
		RefundID:              d.RefundID,
		TenantID:              d.TenantID,
		CustomerID:            d.CustomerID,
		OriginalTransactionID: d.OriginalTransactionID,
		Amount:                d.Amount,
		CurrencyCode:          d.CurrencyCode,
		Reason:                d.Reason,
		Status:                string(d.Status),
		ApprovedBy:            d.ApprovedBy,
		ReversalTransactionID: d.ReversalTransactionID,
		AuditFields:           ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRefund converts a model Refund to a domain Refund
func ToDomainRefund(m models.Refund) domain.Refund {
	return domain.Refund{
		RefundID:              m.RefundID,
		TenantID:              m.TenantID,
		CustomerID:            m.CustomerID,
		OriginalTransactionID: m.OriginalTransactionID,
		Amount:                m.Amount,
		CurrencyCode:          m.CurrencyCode,
		Reason:                m.Reason,
		Status:                domain.RefundStatus(m.Status),
		ApprovedBy:            m.ApprovedBy,
		ReversalTransactionID: m.ReversalTransactionID,
		AuditFields:           ToDomainAuditFields(m.AuditFields),
	}
}

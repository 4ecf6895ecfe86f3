package mapping

import (
	"github.com/finacct/backend/internal/core/domain"
	"github.com/finacct/backend/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		TenantID:        d.TenantID,
		TransactionDate: d.TransactionDate,
		Description:     d.Description,
		Source:          string(d.Source),
		Status:          string(d.Status),
		CurrencyCode:    d.CurrencyCode,
		Amount:          d.Amount,
		RefundID:        d.RefundID,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		TenantID:        m.TenantID,
		TransactionDate: m.TransactionDate,
		Description:     m.Description,
		Source:          domain.TransactionSource(m.Source),
		Status:          domain.TransactionStatus(m.Status),
		CurrencyCode:    m.CurrencyCode,
		Amount:          m.Amount,
		RefundID:        m.RefundID,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelEntry converts a domain Entry to a model Entry
func ToModelEntry(d domain.Entry) models.Entry {
	return models.Entry{
		EntryID:       d.EntryID,
		TransactionID: d.TransactionID,
		AccountID:     d.AccountID,
		Debit:         d.Debit,
		Credit:        d.Credit,
		CurrencyCode:  d.CurrencyCode,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEntry converts a model Entry to a domain Entry
func ToDomainEntry(m models.Entry) domain.Entry {
	return domain.Entry{
		EntryID:       m.EntryID,
		TransactionID: m.TransactionID,
		AccountID:     m.AccountID,
		Debit:         m.Debit,
		Credit:        m.Credit,
		CurrencyCode:  m.CurrencyCode,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainEntrySlice converts a slice of model Entries to a slice of domain Entries
func ToDomainEntrySlice(ms []models.Entry) []domain.Entry {
	ds := make([]domain.Entry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntry(m)
	}
	return ds
}

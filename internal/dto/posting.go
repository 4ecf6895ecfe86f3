package dto

import (
	"time"

	"github.com/finacct/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryLineRequest is one debit or credit leg in a posting request. Amounts
// omitted are treated as zero; both must be >= 0.
type EntryLineRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// PostTransactionRequest defines the data needed to post a balanced journal entry.
type PostTransactionRequest struct {
	Date         time.Time                `json:"date" binding:"required" time_format:"2006-01-02"`
	Description  string                   `json:"description" binding:"required"`
	CurrencyCode string                   `json:"currencyCode" binding:"required,currency"`
	Source       domain.TransactionSource `json:"source"` // Defaults to manual
	Lines        []EntryLineRequest       `json:"lines" binding:"required,min=1,dive"`
}

// EntryResponse defines the data returned for one entry leg.
type EntryResponse struct {
	EntryID   string          `json:"entryID"`
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// TransactionResponse defines the data returned for a posted transaction.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	TenantID      string          `json:"tenantID"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	Source        string          `json:"source"`
	Status        string          `json:"status"`
	CurrencyCode  string          `json:"currencyCode"`
	Amount        decimal.Decimal `json:"amount"`
	Entries       []EntryResponse `json:"entries,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
}

// ListTransactionsParams holds pagination parameters for listing transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse is a page of transactions plus the continuation token.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToEntryResponse converts a domain.Entry to EntryResponse DTO.
func ToEntryResponse(e *domain.Entry) EntryResponse {
	return EntryResponse{
		EntryID:   e.EntryID,
		AccountID: e.AccountID,
		Debit:     e.Debit,
		Credit:    e.Credit,
	}
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		TransactionID: txn.TransactionID,
		TenantID:      txn.TenantID,
		Date:          txn.TransactionDate,
		Description:   txn.Description,
		Source:        string(txn.Source),
		Status:        string(txn.Status),
		CurrencyCode:  txn.CurrencyCode,
		Amount:        txn.Amount,
		CreatedAt:     txn.CreatedAt,
		CreatedBy:     txn.CreatedBy,
	}
	for i := range txn.Entries {
		resp.Entries = append(resp.Entries, ToEntryResponse(&txn.Entries[i]))
	}
	return resp
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}

package dto

import (
	"time"

	"github.com/finacct/backend/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
// AccountType accepts REVENUE as an alias for INCOME.
type CreateAccountRequest struct {
	Code         string `json:"code" binding:"required"`
	Name         string `json:"name" binding:"required"`
	AccountType  string `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME REVENUE EXPENSE"`
	CurrencyCode string `json:"currencyCode" binding:"omitempty,currency"` // Optional, defaults to the tenant currency
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string             `json:"accountID"`
	TenantID      string             `json:"tenantID"`
	Code          string             `json:"code"`
	Name          string             `json:"name"`
	AccountType   domain.AccountType `json:"accountType"`
	CurrencyCode  string             `json:"currencyCode"`
	IsActive      bool               `json:"isActive"`
	CreatedAt     time.Time          `json:"createdAt"`
	CreatedBy     string             `json:"createdBy"`
	LastUpdatedAt time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy string             `json:"lastUpdatedBy"`
}

// AssignRoleRequest maps a well-known system role to an account.
type AssignRoleRequest struct {
	Role      domain.AccountRole `json:"role" binding:"required,oneof=CASH AP_CONTROL RETAINED_EARNINGS INCOME_SUMMARY TAX_LIABILITY"`
	AccountID string             `json:"accountID" binding:"required"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		TenantID:      acc.TenantID,
		Code:          acc.Code,
		Name:          acc.Name,
		AccountType:   acc.AccountType,
		CurrencyCode:  acc.CurrencyCode,
		IsActive:      acc.IsActive,
		CreatedAt:     acc.CreatedAt,
		CreatedBy:     acc.CreatedBy,
		LastUpdatedAt: acc.LastUpdatedAt,
		LastUpdatedBy: acc.LastUpdatedBy,
	}
}

// ToAccountResponses converts a slice of domain.Account to []AccountResponse.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}

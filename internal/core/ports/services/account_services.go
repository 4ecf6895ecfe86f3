package services

import (
	"context"

	"github.com/finacct/backend/internal/core/domain"
	"github.com/finacct/backend/internal/dto"
)

// AccountReaderSvc defines read operations for the chart of accounts
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts by id, verifying every one
	// exists and belongs to the tenant.
	GetAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error)

	// FindByCode retrieves the tenant's account with the given code.
	FindByCode(ctx context.Context, tenantID string, code string) (*domain.Account, error)

	// FindByTypeAndNamePattern retrieves an account by type and case-insensitive
	// name substring. Fails with ErrAccountNotFound naming the pattern so the
	// caller can surface "create account X first".
	FindByTypeAndNamePattern(ctx context.Context, tenantID string, accountType domain.AccountType, pattern string) (*domain.Account, error)

	// ListAccounts retrieves the tenant's full chart ordered by code.
	ListAccounts(ctx context.Context, tenantID string) ([]domain.Account, error)

	// ResolveRoleAccount resolves a well-known system role (CASH,
	// RETAINED_EARNINGS, ...) to the tenant's mapped account. Falls back to
	// the conventional account code when the role is unmapped.
	ResolveRoleAccount(ctx context.Context, tenantID string, role domain.AccountRole) (*domain.Account, error)
}

// AccountWriterSvc defines write operations for the chart of accounts
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// AssignRole maps a well-known system role to an account.
	AssignRole(ctx context.Context, tenantID string, req dto.AssignRoleRequest, userID string) error
}

// AccountRegistrySvcFacade combines all account-registry service interfaces
type AccountRegistrySvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}

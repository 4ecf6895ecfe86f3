package repositories

import (
	"context"

	"github.com/finacct/backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AccountReader defines read operations for chart-of-accounts data
type AccountReader interface {
	// FindAccountByID retrieves an account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by id.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// FindAccountByCode retrieves the tenant's account with the given code.
	FindAccountByCode(ctx context.Context, tenantID string, code string) (*domain.Account, error)

	// FindAccountByTypeAndNamePattern retrieves the first active account of the
	// given type whose name contains the pattern (case-insensitive).
	FindAccountByTypeAndNamePattern(ctx context.Context, tenantID string, accountType domain.AccountType, pattern string) (*domain.Account, error)

	// ListAccountsByTenant retrieves the full chart of accounts ordered by code.
	ListAccountsByTenant(ctx context.Context, tenantID string) ([]domain.Account, error)

	// FindRoleAccountID resolves a well-known role to an account id from the
	// tenant's role mapping table. Returns ErrNotFound when unmapped.
	FindRoleAccountID(ctx context.Context, tenantID string, role domain.AccountRole) (string, error)

	// FindAccountsByCodePrefix retrieves active accounts whose code starts with the prefix.
	FindAccountsByCodePrefix(ctx context.Context, tenantID string, prefix string) ([]domain.Account, error)
}

// AccountWriter defines write operations for chart-of-accounts data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpsertRoleMapping assigns an account to a well-known role for a tenant,
	// replacing any previous assignment.
	UpsertRoleMapping(ctx context.Context, tenantID string, role domain.AccountRole, accountID string) error
}

// AccountTxReader defines reads that participate in a caller-managed pgx transaction.
type AccountTxReader interface {
	// FindAccountsByIDsForUpdate locks the given account rows for the duration
	// of the surrounding transaction and returns them keyed by id.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTxReader
}

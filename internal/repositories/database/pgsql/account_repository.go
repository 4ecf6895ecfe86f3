package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/finacct/backend/internal/apperrors"
	"github.com/finacct/backend/internal/core/domain"
	portsrepo "github.com/finacct/backend/internal/core/ports/repositories"
	"github.com/finacct/backend/internal/models"
	"github.com/finacct/backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `account_id, tenant_id, code, name, account_type, currency_code, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (*models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.TenantID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.CurrencyCode,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (account_id, tenant_id, code, name, account_type, currency_code, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.TenantID,
		m.Code,
		m.Name,
		m.AccountType,
		m.CurrencyCode,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: account with code %s already exists for tenant", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	d := mapping.ToDomainAccount(*m)
	return &d, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs.
// Missing IDs are simply absent from the map; the caller checks completeness.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`

	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account)
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row during batch fetch: %w", err)
		}
		accountsMap[m.AccountID] = mapping.ToDomainAccount(*m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows during batch fetch: %w", err)
	}
	return accountsMap, nil
}

// FindAccountByCode retrieves the tenant's account with the given code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, tenantID string, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND code = $2;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, tenantID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by code %s: %w", code, err)
	}
	d := mapping.ToDomainAccount(*m)
	return &d, nil
}

// FindAccountByTypeAndNamePattern retrieves the first active account of the
// given type whose name matches the pattern, case-insensitive.
func (r *PgxAccountRepository) FindAccountByTypeAndNamePattern(ctx context.Context, tenantID string, accountType domain.AccountType, pattern string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE tenant_id = $1 AND account_type = $2 AND is_active = TRUE AND name ILIKE $3
		ORDER BY code
		LIMIT 1;
	`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, tenantID, string(accountType), "%"+pattern+"%"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find %s account matching %q: %w", accountType, pattern, err)
	}
	d := mapping.ToDomainAccount(*m)
	return &d, nil
}

// ListAccountsByTenant retrieves the full chart of accounts ordered by code.
func (r *PgxAccountRepository) ListAccountsByTenant(ctx context.Context, tenantID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 ORDER BY code;`

	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row for tenant %s: %w", tenantID, err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating account rows for tenant %s: %w", tenantID, rows.Err())
	}
	return accounts, nil
}

// FindRoleAccountID resolves a well-known role from the tenant's mapping table.
func (r *PgxAccountRepository) FindRoleAccountID(ctx context.Context, tenantID string, role domain.AccountRole) (string, error) {
	query := `SELECT account_id FROM account_roles WHERE tenant_id = $1 AND role = $2;`

	var accountID string
	err := r.Pool.QueryRow(ctx, query, tenantID, string(role)).Scan(&accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("failed to resolve role %s for tenant %s: %w", role, tenantID, err)
	}
	return accountID, nil
}

// FindAccountsByCodePrefix retrieves active accounts whose code starts with the prefix.
func (r *PgxAccountRepository) FindAccountsByCodePrefix(ctx context.Context, tenantID string, prefix string) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE tenant_id = $1 AND is_active = TRUE AND code LIKE $2
		ORDER BY code;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, prefix+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by code prefix %s: %w", prefix, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row by code prefix: %w", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating account rows by code prefix: %w", rows.Err())
	}
	return accounts, nil
}

// UpsertRoleMapping assigns an account to a system role, replacing any
// previous assignment for that role.
func (r *PgxAccountRepository) UpsertRoleMapping(ctx context.Context, tenantID string, role domain.AccountRole, accountID string) error {
	query := `
		INSERT INTO account_roles (tenant_id, role, account_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (tenant_id, role) DO UPDATE SET account_id = EXCLUDED.account_id;
	`
	_, err := r.Pool.Exec(ctx, query, tenantID, string(role), accountID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("%w: account %s does not exist", apperrors.ErrValidation, accountID)
		}
		return fmt.Errorf("failed to upsert role mapping %s for tenant %s: %w", role, tenantID, err)
	}
	return nil
}

// FindAccountsByIDsForUpdate locks the account rows within the caller's
// transaction to keep concurrent postings from interleaving on them.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1) ORDER BY account_id FOR UPDATE;`

	rows, err := tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts for update: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account)
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked account row: %w", err)
		}
		accountsMap[m.AccountID] = mapping.ToDomainAccount(*m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked account rows: %w", err)
	}
	return accountsMap, nil
}

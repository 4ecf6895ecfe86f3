package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finacct/backend/internal/apperrors"
	"github.com/finacct/backend/internal/core/domain"
	portsrepo "github.com/finacct/backend/internal/core/ports/repositories"
	"github.com/finacct/backend/internal/models"
	"github.com/finacct/backend/internal/utils/mapping"
	"github.com/finacct/backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `transaction_id, tenant_id, transaction_date, description, source, status, currency_code, amount, refund_id, created_at, created_by, last_updated_at, last_updated_by`

const entryColumns = `entry_id, transaction_id, account_id, debit, credit, currency_code, created_at, created_by, last_updated_at, last_updated_by`

type PgxPostingRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxPostingRepository creates a new repository for posted transactions.
// It needs the account repository to lock account rows inside its own
// transactions.
func newPgxPostingRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.PostingRepositoryFacade {
	return &PgxPostingRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.PostingRepositoryFacade = (*PgxPostingRepository)(nil)

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.TenantID,
		&m.TransactionDate,
		&m.Description,
		&m.Source,
		&m.Status,
		&m.CurrencyCode,
		&m.Amount,
		&m.RefundID,
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

// SaveTransaction persists the header and its entries atomically. The shared
// tenant period lock plus the in-transaction closed-period re-check guarantee
// the date cannot land in a period that a concurrent close is locking.
func (r *PgxPostingRepository) SaveTransaction(ctx context.Context, transaction domain.Transaction, entries []domain.Entry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.insertTransactionInTx(ctx, tx, transaction, entries); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SaveReversal persists the reversal transaction and flips the refund to
// approved in the same database transaction, so a failed insert never leaves
// an approved refund without its reversal.
func (r *PgxPostingRepository) SaveReversal(ctx context.Context, transaction domain.Transaction, entries []domain.Entry, refundID string, approverUserID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.insertTransactionInTx(ctx, tx, transaction, entries); err != nil {
		return err
	}

	updateQuery := `
		UPDATE refunds
		SET status = $1, approved_by = $2, reversal_transaction_id = $3, last_updated_at = $4, last_updated_by = $2
		WHERE refund_id = $5 AND tenant_id = $6 AND status = $7;
	`
	cmdTag, err := tx.Exec(ctx, updateQuery,
		string(domain.RefundApproved),
		approverUserID,
		transaction.TransactionID,
		time.Now(),
		refundID,
		transaction.TenantID,
		string(domain.RefundRequested),
	)
	if err != nil {
		return fmt.Errorf("failed to approve refund %s: %w", refundID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: refund %s is not in requested state", apperrors.ErrConflict, refundID)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxPostingRepository) insertTransactionInTx(ctx context.Context, tx pgx.Tx, transaction domain.Transaction, entries []domain.Entry) error {
	if err := acquireSharedPeriodLock(ctx, tx, transaction.TenantID); err != nil {
		return err
	}

	// Re-check under the lock: a close that committed after the service's
	// pre-check would otherwise be silently bypassed.
	lockQuery := `
		SELECT period
		FROM period_closes
		WHERE tenant_id = $1 AND status = $2 AND start_date <= $3 AND end_date >= $3
		LIMIT 1;
	`
	var period string
	err := tx.QueryRow(ctx, lockQuery, transaction.TenantID, string(domain.PeriodClosed), transaction.TransactionDate).Scan(&period)
	if err == nil {
		return fmt.Errorf("%w: period %s is closed", apperrors.ErrPeriodLocked, period)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed to check closed periods for tenant %s: %w", transaction.TenantID, err)
	}

	accountIDs := make([]string, 0, len(entries))
	for _, e := range entries {
		accountIDs = append(accountIDs, e.AccountID)
	}
	locked, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock accounts for update", err)
	}
	for _, id := range accountIDs {
		if _, ok := locked[id]; !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrAccountNotFound, id)
		}
	}

	m := mapping.ToModelTransaction(transaction)
	headerQuery := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, headerQuery,
		m.TransactionID,
		m.TenantID,
		m.TransactionDate,
		m.Description,
		m.Source,
		m.Status,
		m.CurrencyCode,
		m.Amount,
		m.RefundID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", m.TransactionID, err)
	}

	batch := &pgx.Batch{}
	entryQuery := `
		INSERT INTO entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, entry := range entries {
		me := mapping.ToModelEntry(entry)
		batch.Queue(entryQuery,
			me.EntryID,
			m.TransactionID,
			me.AccountID,
			me.Debit,
			me.Credit,
			me.CurrencyCode,
			me.CreatedAt,
			me.CreatedBy,
			me.LastUpdatedAt,
			me.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert entries for transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// FindTransactionByID retrieves a transaction header by its ID.
func (r *PgxPostingRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	d := mapping.ToDomainTransaction(*m)
	return &d, nil
}

// FindEntriesByTransactionID retrieves all entry legs of one transaction.
func (r *PgxPostingRepository) FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE transaction_id = $1 ORDER BY entry_id;`

	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries for transaction %s: %w", transactionID, err)
	}
	defer rows.Close()

	modelEntries := []models.Entry{}
	for rows.Next() {
		var me models.Entry
		err := rows.Scan(
			&me.EntryID,
			&me.TransactionID,
			&me.AccountID,
			&me.Debit,
			&me.Credit,
			&me.CurrencyCode,
			&me.CreatedAt,
			&me.CreatedBy,
			&me.LastUpdatedAt,
			&me.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry row for transaction %s: %w", transactionID, err)
		}
		modelEntries = append(modelEntries, me)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating entry rows for transaction %s: %w", transactionID, rows.Err())
	}
	return mapping.ToDomainEntrySlice(modelEntries), nil
}

// ListTransactionsByTenant retrieves transactions newest first with
// keyset pagination on (transaction_date, created_at).
func (r *PgxPostingRepository) ListTransactionsByTenant(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	args := []any{tenantID, limit + 1}
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE tenant_id = $1
	`
	if nextToken != nil && *nextToken != "" {
		txnDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (transaction_date, created_at) < ($3, $4)`
		args = append(args, txnDate, createdAt)
	}
	query += `
		ORDER BY transaction_date DESC, created_at DESC
		LIMIT $2;
	`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row for tenant %s: %w", tenantID, err)
		}
		transactions = append(transactions, mapping.ToDomainTransaction(*m))
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows for tenant %s: %w", tenantID, rows.Err())
	}

	var newToken *string
	if len(transactions) > limit {
		last := transactions[limit-1]
		token := pagination.EncodeToken(last.TransactionDate, last.CreatedAt)
		newToken = &token
		transactions = transactions[:limit]
	}
	return transactions, newToken, nil
}

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
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const periodCloseColumns = `period_close_id, tenant_id, period, start_date, end_date, status, closed_at`

// netIncomeEpsilon is the threshold below which a period's net income is
// treated as zero and no closing entry is posted.
var netIncomeEpsilon = decimal.NewFromFloat(0.0001)

type PgxPeriodRepository struct {
	BaseRepository
}

// newPgxPeriodRepository creates a new repository for accounting period closes.
func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryFacade {
	return &PgxPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

func scanPeriodClose(row pgx.Row) (*models.PeriodClose, error) {
	var m models.PeriodClose
	err := row.Scan(
		&m.PeriodCloseID,
		&m.TenantID,
		&m.Period,
		&m.StartDate,
		&m.EndDate,
		&m.Status,
		&m.ClosedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindClosedPeriodCovering returns the closed period containing the date.
func (r *PgxPeriodRepository) FindClosedPeriodCovering(ctx context.Context, tenantID string, date time.Time) (*domain.PeriodClose, error) {
	query := `
		SELECT ` + periodCloseColumns + `
		FROM period_closes
		WHERE tenant_id = $1 AND status = $2 AND start_date <= $3 AND end_date >= $3
		LIMIT 1;
	`
	m, err := scanPeriodClose(r.Pool.QueryRow(ctx, query, tenantID, string(domain.PeriodClosed), date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find closed period covering %s: %w", date.Format(time.DateOnly), err)
	}
	d := mapping.ToDomainPeriodClose(*m)
	return &d, nil
}

// FindPeriodClose retrieves the close record for a period label.
func (r *PgxPeriodRepository) FindPeriodClose(ctx context.Context, tenantID string, period string) (*domain.PeriodClose, error) {
	query := `SELECT ` + periodCloseColumns + ` FROM period_closes WHERE tenant_id = $1 AND period = $2;`

	m, err := scanPeriodClose(r.Pool.QueryRow(ctx, query, tenantID, period))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find period close %s: %w", period, err)
	}
	d := mapping.ToDomainPeriodClose(*m)
	return &d, nil
}

// ListPeriodCloses retrieves all close records for a tenant, newest first.
func (r *PgxPeriodRepository) ListPeriodCloses(ctx context.Context, tenantID string) ([]domain.PeriodClose, error) {
	query := `SELECT ` + periodCloseColumns + ` FROM period_closes WHERE tenant_id = $1 ORDER BY start_date DESC;`

	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query period closes for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	closes := []domain.PeriodClose{}
	for rows.Next() {
		m, err := scanPeriodClose(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan period close row for tenant %s: %w", tenantID, err)
		}
		closes = append(closes, mapping.ToDomainPeriodClose(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating period close rows for tenant %s: %w", tenantID, rows.Err())
	}
	return closes, nil
}

// ClosePeriod runs the whole close under one transaction and an exclusive
// tenant period lock. In-flight postings hold the lock shared, so by the time
// this acquires it no posting can still land inside the range. Steps: verify
// the period is not already closed, insert the close record, measure net
// income over the range, and post the closing entry. A failure at any step
// rolls everything back.
func (r *PgxPeriodRepository) ClosePeriod(ctx context.Context, close domain.PeriodClose, accounts portsrepo.ClosingAccounts, closedByUserID string) (decimal.Decimal, *string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return decimal.Zero, nil, err
	}
	defer r.Rollback(ctx, tx)

	if err := acquireExclusivePeriodLock(ctx, tx, close.TenantID); err != nil {
		return decimal.Zero, nil, err
	}

	dupQuery := `SELECT 1 FROM period_closes WHERE tenant_id = $1 AND period = $2 AND status = $3;`
	var one int
	err = tx.QueryRow(ctx, dupQuery, close.TenantID, close.Period, string(domain.PeriodClosed)).Scan(&one)
	if err == nil {
		return decimal.Zero, nil, fmt.Errorf("%w: period %s", apperrors.ErrAlreadyClosed, close.Period)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, nil, fmt.Errorf("failed to check existing close for period %s: %w", close.Period, err)
	}

	m := mapping.ToModelPeriodClose(close)
	insertQuery := `
		INSERT INTO period_closes (` + periodCloseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.PeriodCloseID,
		m.TenantID,
		m.Period,
		m.StartDate,
		m.EndDate,
		m.Status,
		m.ClosedAt,
	)
	if err != nil {
		return decimal.Zero, nil, fmt.Errorf("failed to insert period close %s: %w", close.Period, err)
	}

	netIncome, err := r.netIncomeInTx(ctx, tx, close.TenantID, close.StartDate, close.EndDate)
	if err != nil {
		return decimal.Zero, nil, err
	}

	if netIncome.Abs().LessThan(netIncomeEpsilon) {
		if err := r.Commit(ctx, tx); err != nil {
			return decimal.Zero, nil, err
		}
		return netIncome, nil, nil
	}

	if accounts.RetainedEarningsID == "" || accounts.IncomeSummaryID == "" {
		return decimal.Zero, nil, fmt.Errorf("%w: retained earnings and income summary accounts are required to close %s", apperrors.ErrMissingSystemAccount, close.Period)
	}

	closingTxnID, err := r.insertClosingEntryInTx(ctx, tx, close, accounts, netIncome, closedByUserID)
	if err != nil {
		return decimal.Zero, nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return decimal.Zero, nil, err
	}
	return netIncome, &closingTxnID, nil
}

// netIncomeInTx measures revenue minus expenses over [start, end]. Income
// accounts are credit-normal and expense accounts debit-normal, so a
// profitable period yields a positive number.
func (r *PgxPeriodRepository) netIncomeInTx(ctx context.Context, tx pgx.Tx, tenantID string, start, end time.Time) (decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN a.account_type = $4 THEN e.credit - e.debit ELSE 0 END), 0) AS revenue,
			COALESCE(SUM(CASE WHEN a.account_type = $5 THEN e.debit - e.credit ELSE 0 END), 0) AS expense
		FROM entries e
		JOIN transactions t ON e.transaction_id = t.transaction_id
		JOIN accounts a ON e.account_id = a.account_id
		WHERE t.tenant_id = $1 AND t.transaction_date >= $2 AND t.transaction_date <= $3;
	`
	var revenue, expense decimal.Decimal
	err := tx.QueryRow(ctx, query, tenantID, start, end, string(domain.Income), string(domain.Expense)).Scan(&revenue, &expense)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to measure net income for tenant %s: %w", tenantID, err)
	}
	return revenue.Sub(expense), nil
}

// insertClosingEntryInTx posts the sweep of net income into retained
// earnings, dated at the period end. Profit credits retained earnings,
// loss debits it.
func (r *PgxPeriodRepository) insertClosingEntryInTx(ctx context.Context, tx pgx.Tx, close domain.PeriodClose, accounts portsrepo.ClosingAccounts, netIncome decimal.Decimal, closedByUserID string) (string, error) {
	now := time.Now()
	txnID := uuid.NewString()
	amount := netIncome.Abs().Round(2)

	headerQuery := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, headerQuery,
		txnID,
		close.TenantID,
		close.EndDate,
		fmt.Sprintf("Closing Entry for %s", close.Period),
		string(domain.SourceSystem),
		string(domain.Posted),
		accounts.CurrencyCode,
		amount,
		nil,
		now,
		closedByUserID,
		now,
		closedByUserID,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert closing entry for period %s: %w", close.Period, err)
	}

	debitAccount := accounts.IncomeSummaryID
	creditAccount := accounts.RetainedEarningsID
	if netIncome.IsNegative() {
		debitAccount = accounts.RetainedEarningsID
		creditAccount = accounts.IncomeSummaryID
	}

	entryQuery := `
		INSERT INTO entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	batch := &pgx.Batch{}
	batch.Queue(entryQuery, uuid.NewString(), txnID, debitAccount, amount, decimal.Zero, accounts.CurrencyCode, now, closedByUserID, now, closedByUserID)
	batch.Queue(entryQuery, uuid.NewString(), txnID, creditAccount, decimal.Zero, amount, accounts.CurrencyCode, now, closedByUserID, now, closedByUserID)
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return "", fmt.Errorf("failed to insert closing entry legs for period %s: %w", close.Period, err)
	}
	return txnID, nil
}

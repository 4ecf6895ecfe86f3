package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/finacct/backend/internal/apperrors"
	"github.com/finacct/backend/internal/core/domain"
	portsrepo "github.com/finacct/backend/internal/core/ports/repositories"
	"github.com/finacct/backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// GetTrialBalanceRows aggregates per-account debit/credit sums over the date
// range. The left join keeps zero-activity accounts in the result.
func (r *reportingRepository) GetTrialBalanceRows(ctx context.Context, tenantID string, start, end time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			a.account_id,
			a.code,
			a.name,
			COALESCE(SUM(e.debit), 0) AS total_debit,
			COALESCE(SUM(e.credit), 0) AS total_credit
		FROM accounts a
		LEFT JOIN (
			SELECT e.account_id, e.debit, e.credit
			FROM entries e
			JOIN transactions t ON t.transaction_id = e.transaction_id
			WHERE t.tenant_id = $1 AND t.transaction_date >= $2 AND t.transaction_date <= $3
		) e ON e.account_id = a.account_id
		WHERE a.tenant_id = $1
		GROUP BY a.account_id, a.code, a.name
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, start, end)
	if err != nil {
		return nil, fmt.Errorf("error querying trial balance rows: %w", err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		if err := rows.Scan(&row.AccountID, &row.Code, &row.Name, &row.Debit, &row.Credit); err != nil {
			return nil, fmt.Errorf("error scanning trial balance row: %w", err)
		}
		row.Balance = row.Debit.Sub(row.Credit)
		result = append(result, row)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", rows.Err())
	}
	return result, nil
}

// GetBalanceSheetRows returns the tenant's chart plus per-account net totals
// (debit minus credit) over everything posted up to asOf.
func (r *reportingRepository) GetBalanceSheetRows(ctx context.Context, tenantID string, asOf time.Time) ([]domain.Account, map[string]decimal.Decimal, error) {
	query := `
		SELECT
			a.account_id,
			a.code,
			a.name,
			a.account_type,
			a.currency_code,
			a.is_active,
			COALESCE(SUM(e.debit - e.credit) FILTER (WHERE t.transaction_date <= $2), 0) AS net
		FROM accounts a
		LEFT JOIN entries e ON e.account_id = a.account_id
		LEFT JOIN transactions t ON t.transaction_id = e.transaction_id
		WHERE a.tenant_id = $1
		GROUP BY a.account_id, a.code, a.name, a.account_type, a.currency_code, a.is_active
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, asOf)
	if err != nil {
		return nil, nil, fmt.Errorf("error querying balance sheet rows: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	nets := make(map[string]decimal.Decimal)
	for rows.Next() {
		var acc domain.Account
		var net decimal.Decimal
		if err := rows.Scan(&acc.AccountID, &acc.Code, &acc.Name, &acc.AccountType, &acc.CurrencyCode, &acc.IsActive, &net); err != nil {
			return nil, nil, fmt.Errorf("error scanning balance sheet row: %w", err)
		}
		acc.TenantID = tenantID
		accounts = append(accounts, acc)
		nets[acc.AccountID] = net
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating balance sheet rows: %w", rows.Err())
	}
	return accounts, nets, nil
}

// GetIncomeStatementTotals sums revenue (credit-normal) and expense
// (debit-normal) activity over the range.
func (r *reportingRepository) GetIncomeStatementTotals(ctx context.Context, tenantID string, start, end time.Time) (decimal.Decimal, decimal.Decimal, error) {
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
	err := r.Pool.QueryRow(ctx, query, tenantID, start, end, string(domain.Income), string(domain.Expense)).Scan(&revenue, &expense)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("error querying income statement totals: %w", err)
	}
	return revenue, expense, nil
}

// GetCashFlowTotals sums debit (inflow) and credit (outflow) activity over
// the given cash accounts in the range.
func (r *reportingRepository) GetCashFlowTotals(ctx context.Context, tenantID string, accountIDs []string, start, end time.Time) (decimal.Decimal, decimal.Decimal, error) {
	if len(accountIDs) == 0 {
		return decimal.Zero, decimal.Zero, nil
	}

	query := `
		SELECT
			COALESCE(SUM(e.debit), 0) AS inflows,
			COALESCE(SUM(e.credit), 0) AS outflows
		FROM entries e
		JOIN transactions t ON e.transaction_id = t.transaction_id
		WHERE t.tenant_id = $1 AND e.account_id = ANY($2)
			AND t.transaction_date >= $3 AND t.transaction_date <= $4;
	`
	var inflows, outflows decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, tenantID, accountIDs, start, end).Scan(&inflows, &outflows)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("error querying cash flow totals: %w", err)
	}
	return inflows, outflows, nil
}

// ListLedgerLines retrieves the account's entry legs joined with their owning
// transaction, date ascending, with keyset pagination.
func (r *reportingRepository) ListLedgerLines(ctx context.Context, tenantID string, accountID string, limit int, nextToken *string) ([]domain.LedgerLine, *string, error) {
	if limit <= 0 {
		limit = 50
	}

	args := []any{tenantID, accountID, limit + 1}
	query := `
		SELECT
			e.entry_id,
			e.transaction_id,
			t.transaction_date,
			t.description,
			e.debit,
			e.credit,
			e.currency_code,
			e.created_at
		FROM entries e
		JOIN transactions t ON e.transaction_id = t.transaction_id
		WHERE t.tenant_id = $1 AND e.account_id = $2
	`
	if nextToken != nil && *nextToken != "" {
		txnDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (t.transaction_date, e.created_at) > ($4, $5)`
		args = append(args, txnDate, createdAt)
	}
	query += `
		ORDER BY t.transaction_date, e.created_at
		LIMIT $3;
	`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("error querying ledger lines for account %s: %w", accountID, err)
	}
	defer rows.Close()

	type lineWithCreated struct {
		line      domain.LedgerLine
		createdAt time.Time
	}
	lines := []lineWithCreated{}
	for rows.Next() {
		var lc lineWithCreated
		err := rows.Scan(
			&lc.line.EntryID,
			&lc.line.TransactionID,
			&lc.line.TransactionDate,
			&lc.line.Description,
			&lc.line.Debit,
			&lc.line.Credit,
			&lc.line.CurrencyCode,
			&lc.createdAt,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("error scanning ledger line for account %s: %w", accountID, err)
		}
		lines = append(lines, lc)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating ledger lines for account %s: %w", accountID, rows.Err())
	}

	var newToken *string
	if len(lines) > limit {
		last := lines[limit-1]
		token := pagination.EncodeToken(last.line.TransactionDate, last.createdAt)
		newToken = &token
		lines = lines[:limit]
	}

	result := make([]domain.LedgerLine, len(lines))
	for i, lc := range lines {
		result[i] = lc.line
	}
	return result, newToken, nil
}

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
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const refundColumns = `refund_id, tenant_id, customer_id, original_transaction_id, amount, currency_code, reason, status, approved_by, reversal_transaction_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxRefundRepository struct {
	BaseRepository
}

// newPgxRefundRepository creates a new repository for refund requests.
func newPgxRefundRepository(pool *pgxpool.Pool) portsrepo.RefundRepositoryFacade {
	return &PgxRefundRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.RefundRepositoryFacade = (*PgxRefundRepository)(nil)

func scanRefund(row pgx.Row) (*models.Refund, error) {
	var m models.Refund
	err := row.Scan(
		&m.RefundID,
		&m.TenantID,
		&m.CustomerID,
		&m.OriginalTransactionID,
		&m.Amount,
		&m.CurrencyCode,
		&m.Reason,
		&m.Status,
		&m.ApprovedBy,
		&m.ReversalTransactionID,
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

// SaveRefund persists a new refund request.
func (r *PgxRefundRepository) SaveRefund(ctx context.Context, refund domain.Refund) error {
	m := mapping.ToModelRefund(refund)

	query := `
		INSERT INTO refunds (` + refundColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.RefundID,
		m.TenantID,
		m.CustomerID,
		m.OriginalTransactionID,
		m.Amount,
		m.CurrencyCode,
		m.Reason,
		m.Status,
		m.ApprovedBy,
		m.ReversalTransactionID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: refund %s already exists", apperrors.ErrDuplicate, m.RefundID)
		}
		return fmt.Errorf("failed to save refund %s: %w", m.RefundID, err)
	}
	return nil
}

// FindRefundByID retrieves a refund by its ID, scoped to the tenant.
func (r *PgxRefundRepository) FindRefundByID(ctx context.Context, tenantID string, refundID string) (*domain.Refund, error) {
	query := `SELECT ` + refundColumns + ` FROM refunds WHERE tenant_id = $1 AND refund_id = $2;`

	m, err := scanRefund(r.Pool.QueryRow(ctx, query, tenantID, refundID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find refund by ID %s: %w", refundID, err)
	}
	d := mapping.ToDomainRefund(*m)
	return &d, nil
}

// FindActiveRefundForTransaction returns the refund occupying the one-active
// slot for the original transaction, if any.
func (r *PgxRefundRepository) FindActiveRefundForTransaction(ctx context.Context, tenantID string, originalTransactionID string) (*domain.Refund, error) {
	query := `
		SELECT ` + refundColumns + `
		FROM refunds
		WHERE tenant_id = $1 AND original_transaction_id = $2 AND status = ANY($3)
		LIMIT 1;
	`
	active := []string{
		string(domain.RefundRequested),
		string(domain.RefundApproved),
		string(domain.RefundReleased),
	}
	m, err := scanRefund(r.Pool.QueryRow(ctx, query, tenantID, originalTransactionID, active))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find active refund for transaction %s: %w", originalTransactionID, err)
	}
	d := mapping.ToDomainRefund(*m)
	return &d, nil
}

// ListRefundsByTenant retrieves all refunds for a tenant, newest first.
func (r *PgxRefundRepository) ListRefundsByTenant(ctx context.Context, tenantID string) ([]domain.Refund, error) {
	query := `SELECT ` + refundColumns + ` FROM refunds WHERE tenant_id = $1 ORDER BY created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query refunds for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	refunds := []domain.Refund{}
	for rows.Next() {
		m, err := scanRefund(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan refund row for tenant %s: %w", tenantID, err)
		}
		refunds = append(refunds, mapping.ToDomainRefund(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating refund rows for tenant %s: %w", tenantID, rows.Err())
	}
	return refunds, nil
}

// UpdateRefundStatus transitions a refund between lifecycle states. The
// approval transition goes through PostingRepository.SaveReversal instead so
// it commits together with the reversal.
func (r *PgxRefundRepository) UpdateRefundStatus(ctx context.Context, tenantID string, refundID string, status domain.RefundStatus, actorUserID string) error {
	query := `
		UPDATE refunds
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE tenant_id = $4 AND refund_id = $5;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, string(status), time.Now(), actorUserID, tenantID, refundID)
	if err != nil {
		return fmt.Errorf("failed to update refund %s status: %w", refundID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

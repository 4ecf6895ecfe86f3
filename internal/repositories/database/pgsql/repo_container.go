package pgsql

import (
	portsrepo "github.com/finacct/backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	postingRepo := newPgxPostingRepository(dbPool, accountRepo)
	periodRepo := newPgxPeriodRepository(dbPool)
	refundRepo := newPgxRefundRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)
	auditRepo := newPgxAuditLogRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:   accountRepo,
		PostingRepo:   postingRepo,
		PeriodRepo:    periodRepo,
		RefundRepo:    refundRepo,
		ReportingRepo: reportingRepo,
		AuditRepo:     auditRepo,
	}
}

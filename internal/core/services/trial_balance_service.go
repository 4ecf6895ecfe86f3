package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/finacct/backend/internal/core/domain"
	portsrepo "github.com/finacct/backend/internal/core/ports/repositories"
	portssvc "github.com/finacct/backend/internal/core/ports/services"
	"github.com/finacct/backend/internal/middleware"
	"github.com/finacct/backend/internal/platform/cache"
	"github.com/finacct/backend/internal/utils/accounting"
)

// ReportingService implements the trial balance calculator and the ledger
// query facade over the read-side aggregation repository. Reports are cached
// per tenant with a short TTL; every write path invalidates the tenant's
// cache entries.
type ReportingService struct {
	reportingRepo portsrepo.ReportingRepository
	accountSvc    portssvc.AccountReaderSvc
	reportCache   *cache.ReportCache
}

func NewReportingService(reportingRepo portsrepo.ReportingRepository, accountSvc portssvc.AccountReaderSvc, reportCache *cache.ReportCache) *ReportingService {
	return &ReportingService{
		reportingRepo: reportingRepo,
		accountSvc:    accountSvc,
		reportCache:   reportCache,
	}
}

var _ portssvc.ReportingSvcFacade = (*ReportingService)(nil)

// GetTrialBalance aggregates per-account activity over the range. The
// Balanced flag is a health check: posting enforces balance per transaction,
// so totals that disagree beyond rounding tolerance indicate corrupted data.
func (s *ReportingService) GetTrialBalance(ctx context.Context, tenantID string, from time.Time, to time.Time) (*domain.TrialBalanceReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	cacheKey := cache.Key(tenantID, "trial_balance", from.Format(time.DateOnly), to.Format(time.DateOnly))
	if payload, ok := s.reportCache.Get(ctx, cacheKey); ok {
		var cached domain.TrialBalanceReport
		if err := json.Unmarshal(payload, &cached); err == nil {
			return &cached, nil
		}
	}

	rows, err := s.reportingRepo.GetTrialBalanceRows(ctx, tenantID, from, to)
	if err != nil {
		logger.Error("Failed to compute trial balance", slog.String("error", err.Error()))
		return nil, err
	}

	totals := domain.TrialBalanceTotals{}
	for _, row := range rows {
		totals.Debit = totals.Debit.Add(row.Debit)
		totals.Credit = totals.Credit.Add(row.Credit)
	}
	totals.Balanced = totals.Debit.Sub(totals.Credit).Abs().LessThan(accounting.BalanceTolerance)

	if !totals.Balanced {
		logger.Error("Trial balance does not balance",
			slog.String("debit", totals.Debit.String()),
			slog.String("credit", totals.Credit.String()),
		)
	}

	report := &domain.TrialBalanceReport{
		Rows:   rows,
		Totals: totals,
		Start:  from,
		End:    to,
	}
	if payload, err := json.Marshal(report); err == nil {
		s.reportCache.Set(ctx, cacheKey, payload)
	}
	return report, nil
}

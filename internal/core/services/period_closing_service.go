package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finacct/backend/internal/apperrors"
	"github.com/finacct/backend/internal/core/domain"
	portsrepo "github.com/finacct/backend/internal/core/ports/repositories"
	portssvc "github.com/finacct/backend/internal/core/ports/services"
	"github.com/finacct/backend/internal/dto"
	"github.com/finacct/backend/internal/middleware"
	"github.com/finacct/backend/internal/platform/cache"
	"github.com/google/uuid"
)

type PeriodClosingService struct {
	periodRepo      portsrepo.PeriodRepositoryFacade
	accountSvc      portssvc.AccountReaderSvc
	auditSink       portssvc.AuditSink
	reportCache     *cache.ReportCache
	defaultCurrency string
}

func NewPeriodClosingService(
	periodRepo portsrepo.PeriodRepositoryFacade,
	accountSvc portssvc.AccountReaderSvc,
	auditSink portssvc.AuditSink,
	reportCache *cache.ReportCache,
	defaultCurrency string,
) *PeriodClosingService {
	return &PeriodClosingService{
		periodRepo:      periodRepo,
		accountSvc:      accountSvc,
		auditSink:       auditSink,
		reportCache:     reportCache,
		defaultCurrency: defaultCurrency,
	}
}

var _ portssvc.PeriodSvcFacade = (*PeriodClosingService)(nil)

// ClosePeriod closes the date range as one atomic unit. The system accounts
// are resolved up front; a tenant missing them only fails once the close
// actually needs a closing entry, which the repository decides after
// measuring net income under the period lock.
func (s *PeriodClosingService) ClosePeriod(ctx context.Context, tenantID string, req dto.ClosePeriodRequest, userID string) (*domain.PeriodCloseResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: endDate must not precede startDate", apperrors.ErrValidation)
	}

	accounts := portsrepo.ClosingAccounts{CurrencyCode: s.defaultCurrency}
	if re, err := s.resolveOptionalRole(ctx, tenantID, domain.RoleRetainedEarnings); err != nil {
		return nil, err
	} else if re != nil {
		accounts.RetainedEarningsID = re.AccountID
		accounts.CurrencyCode = re.CurrencyCode
	}
	if is, err := s.resolveOptionalRole(ctx, tenantID, domain.RoleIncomeSummary); err != nil {
		return nil, err
	} else if is != nil {
		accounts.IncomeSummaryID = is.AccountID
	}

	close := domain.PeriodClose{
		PeriodCloseID: uuid.NewString(),
		TenantID:      tenantID,
		Period:        req.Period,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Status:        domain.PeriodClosed,
		ClosedAt:      time.Now(),
	}

	netIncome, closingTxnID, err := s.periodRepo.ClosePeriod(ctx, close, accounts, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrAlreadyClosed) && !errors.Is(err, apperrors.ErrMissingSystemAccount) {
			logger.Error("Failed to close period", slog.String("error", err.Error()), slog.String("period", req.Period))
		}
		return nil, err
	}

	s.reportCache.InvalidateTenant(ctx, tenantID)

	details := map[string]string{
		"period":    req.Period,
		"netIncome": netIncome.String(),
	}
	if closingTxnID != nil {
		details["closingTransactionID"] = *closingTxnID
	}
	s.auditSink.Record(ctx, tenantID, userID, "PERIOD_CLOSE", details)

	logger.Info("Period closed", slog.String("period", req.Period), slog.String("net_income", netIncome.String()))
	return &domain.PeriodCloseResult{
		Status:    domain.PeriodClosed,
		Period:    req.Period,
		NetIncome: netIncome,
	}, nil
}

// resolveOptionalRole resolves a role to its account, treating an unmapped
// role as absent rather than an error.
func (s *PeriodClosingService) resolveOptionalRole(ctx context.Context, tenantID string, role domain.AccountRole) (*domain.Account, error) {
	account, err := s.accountSvc.ResolveRoleAccount(ctx, tenantID, role)
	if err != nil {
		if errors.Is(err, apperrors.ErrMissingSystemAccount) {
			return nil, nil
		}
		return nil, err
	}
	return account, nil
}

// ListClosedPeriods retrieves the tenant's period closures, newest first.
func (s *PeriodClosingService) ListClosedPeriods(ctx context.Context, tenantID string) ([]domain.PeriodClose, error) {
	closes, err := s.periodRepo.ListPeriodCloses(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if closes == nil {
		return []domain.PeriodClose{}, nil
	}
	return closes, nil
}

// IsDateLocked reports whether the date falls inside a closed period.
func (s *PeriodClosingService) IsDateLocked(ctx context.Context, tenantID string, date time.Time) (bool, error) {
	_, err := s.periodRepo.FindClosedPeriodCovering(ctx, tenantID, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

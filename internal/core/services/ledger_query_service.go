package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/finacct/backend/internal/apperrors"
	"github.com/finacct/backend/internal/core/domain"
	"github.com/finacct/backend/internal/dto"
	"github.com/finacct/backend/internal/middleware"
	"github.com/finacct/backend/internal/platform/cache"
)

// GetBalanceSheet reports per-account net positions as of a date, grouped
// into assets, liabilities and equity. Liability and equity accounts are
// credit-normal, so their sign flips for presentation.
func (s *ReportingService) GetBalanceSheet(ctx context.Context, tenantID string, asOf time.Time) (*domain.BalanceSheetReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	cacheKey := cache.Key(tenantID, "balance_sheet", asOf.Format(time.DateOnly))
	if payload, ok := s.reportCache.Get(ctx, cacheKey); ok {
		var cached domain.BalanceSheetReport
		if err := json.Unmarshal(payload, &cached); err == nil {
			return &cached, nil
		}
	}

	accounts, nets, err := s.reportingRepo.GetBalanceSheetRows(ctx, tenantID, asOf)
	if err != nil {
		logger.Error("Failed to compute balance sheet", slog.String("error", err.Error()))
		return nil, err
	}

	report := &domain.BalanceSheetReport{
		AsOf:        asOf,
		Assets:      []domain.BalanceGroupRow{},
		Liabilities: []domain.BalanceGroupRow{},
		Equity:      []domain.BalanceGroupRow{},
	}
	for _, acc := range accounts {
		net := nets[acc.AccountID]
		row := domain.BalanceGroupRow{
			AccountID: acc.AccountID,
			Code:      acc.Code,
			Name:      acc.Name,
			Total:     net,
		}
		switch acc.AccountType {
		case domain.Asset:
			report.Assets = append(report.Assets, row)
		case domain.Liability:
			row.Total = net.Neg()
			report.Liabilities = append(report.Liabilities, row)
		case domain.Equity:
			row.Total = net.Neg()
			report.Equity = append(report.Equity, row)
		}
	}

	if payload, err := json.Marshal(report); err == nil {
		s.reportCache.Set(ctx, cacheKey, payload)
	}
	return report, nil
}

// GetIncomeStatement reports revenue, expenses and net income over a range.
func (s *ReportingService) GetIncomeStatement(ctx context.Context, tenantID string, from time.Time, to time.Time) (*domain.IncomeStatementReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	cacheKey := cache.Key(tenantID, "income_statement", from.Format(time.DateOnly), to.Format(time.DateOnly))
	if payload, ok := s.reportCache.Get(ctx, cacheKey); ok {
		var cached domain.IncomeStatementReport
		if err := json.Unmarshal(payload, &cached); err == nil {
			return &cached, nil
		}
	}

	revenue, expense, err := s.reportingRepo.GetIncomeStatementTotals(ctx, tenantID, from, to)
	if err != nil {
		logger.Error("Failed to compute income statement", slog.String("error", err.Error()))
		return nil, err
	}

	report := &domain.IncomeStatementReport{
		Start:     from,
		End:       to,
		Revenue:   revenue,
		Expense:   expense,
		NetIncome: revenue.Sub(expense),
	}
	if payload, err := json.Marshal(report); err == nil {
		s.reportCache.Set(ctx, cacheKey, payload)
	}
	return report, nil
}

// GetCashFlow reports inflows and outflows over the tenant's cash accounts.
// Cash accounts are those mapped to the CASH role, or with the conventional
// cash code prefix when unmapped.
func (s *ReportingService) GetCashFlow(ctx context.Context, tenantID string, from time.Time, to time.Time) (*domain.CashFlowReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	cacheKey := cache.Key(tenantID, "cash_flow", from.Format(time.DateOnly), to.Format(time.DateOnly))
	if payload, ok := s.reportCache.Get(ctx, cacheKey); ok {
		var cached domain.CashFlowReport
		if err := json.Unmarshal(payload, &cached); err == nil {
			return &cached, nil
		}
	}

	accountIDs, err := s.cashAccountIDs(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	inflows, outflows, err := s.reportingRepo.GetCashFlowTotals(ctx, tenantID, accountIDs, from, to)
	if err != nil {
		logger.Error("Failed to compute cash flow", slog.String("error", err.Error()))
		return nil, err
	}

	report := &domain.CashFlowReport{
		Start:    from,
		End:      to,
		Inflows:  inflows,
		Outflows: outflows,
		Net:      inflows.Sub(outflows),
	}
	if payload, err := json.Marshal(report); err == nil {
		s.reportCache.Set(ctx, cacheKey, payload)
	}
	return report, nil
}

func (s *ReportingService) cashAccountIDs(ctx context.Context, tenantID string) ([]string, error) {
	account, err := s.accountSvc.ResolveRoleAccount(ctx, tenantID, domain.RoleCash)
	if err == nil {
		return []string{account.AccountID}, nil
	}
	if !errors.Is(err, apperrors.ErrMissingSystemAccount) {
		return nil, err
	}
	// Tenant has no cash account at all, the report is all zeros
	return nil, nil
}

// ListLedgerLines retrieves the account's entry legs, date ascending, after
// checking the account belongs to the tenant.
func (s *ReportingService) ListLedgerLines(ctx context.Context, tenantID string, accountID string, params dto.ListLedgerParams) ([]domain.LedgerLine, string, error) {
	if _, err := s.accountSvc.GetAccountByID(ctx, tenantID, accountID); err != nil {
		return nil, "", err
	}

	lines, nextToken, err := s.reportingRepo.ListLedgerLines(ctx, tenantID, accountID, params.Limit, params.NextToken)
	if err != nil {
		return nil, "", err
	}
	token := ""
	if nextToken != nil {
		token = *nextToken
	}
	return lines, token, nil
}

package services

import (
	"context"
	"time"

	"github.com/finacct/backend/internal/core/domain"
	"github.com/finacct/backend/internal/dto"
)

// PeriodSvcFacade defines operations for closing and inspecting accounting periods
type PeriodSvcFacade interface {
	// ClosePeriod closes the date range atomically: locks the period, sweeps
	// net income into Retained Earnings via the Income Summary account, and
	// records the closure. Re-closing an already closed period fails.
	ClosePeriod(ctx context.Context, tenantID string, req dto.ClosePeriodRequest, userID string) (*domain.PeriodCloseResult, error)

	// ListClosedPeriods retrieves the tenant's period closures, newest first.
	ListClosedPeriods(ctx context.Context, tenantID string) ([]domain.PeriodClose, error)

	// IsDateLocked reports whether the given date falls inside a closed period.
	IsDateLocked(ctx context.Context, tenantID string, date time.Time) (bool, error)
}

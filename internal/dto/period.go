package dto

import (
	"time"

	"github.com/finacct/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ClosePeriodRequest defines the data needed to close an accounting period.
type ClosePeriodRequest struct {
	Period    string    `json:"period" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required" time_format:"2006-01-02"`
	EndDate   time.Time `json:"endDate" binding:"required" time_format:"2006-01-02"`
}

// ClosePeriodResponse is the outcome of a period close.
type ClosePeriodResponse struct {
	Status    string          `json:"status"`
	Period    string          `json:"period"`
	NetIncome decimal.Decimal `json:"netIncome"`
}

// PeriodCloseResponse describes one closed period.
type PeriodCloseResponse struct {
	Period    string    `json:"period"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Status    string    `json:"status"`
	ClosedAt  time.Time `json:"closedAt"`
}

// ToPeriodCloseResponse converts a domain.PeriodClose to PeriodCloseResponse DTO.
func ToPeriodCloseResponse(p *domain.PeriodClose) PeriodCloseResponse {
	return PeriodCloseResponse{
		Period:    p.Period,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		Status:    string(p.Status),
		ClosedAt:  p.ClosedAt,
	}
}

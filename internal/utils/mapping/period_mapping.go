package mapping

import (
	"github.com/finacct/backend/internal/core/domain"
	"github.com/finacct/backend/internal/models"
)

// ToModelPeriodClose converts a domain PeriodClose to a model PeriodClose
func ToModelPeriodClose(d domain.PeriodClose) models.PeriodClose {
	return models.PeriodClose{
		PeriodCloseID: d.PeriodCloseID,
		TenantID:      d.TenantID,
		Period:        d.Period,
		StartDate:     d.StartDate,
		EndDate:       d.EndDate,
		Status:        string(d.Status),
		ClosedAt:      d.ClosedAt,
	}
}

// ToDomainPeriodClose converts a model PeriodClose to a domain PeriodClose
func ToDomainPeriodClose(m models.PeriodClose) domain.PeriodClose {
	return domain.PeriodClose{
		PeriodCloseID: m.PeriodCloseID,
		TenantID:      m.TenantID,
		Period:        m.Period,
		StartDate:     m.StartDate,
		EndDate:       m.EndDate,
		Status:        domain.PeriodStatus(m.Status),
		ClosedAt:      m.ClosedAt,
	}
}

package domain

import "time"

// PeriodStatus indicates the state of an accounting period.
type PeriodStatus string

const (
	PeriodClosed PeriodStatus = "closed"
)

// PeriodClose locks a date range against further postings for a tenant.
// At most one closed PeriodClose exists per (TenantID, Period); closing is
// terminal, there is no reopen operation.
type PeriodClose struct {
	PeriodCloseID string       `json:"periodCloseID"` // Primary key (UUID)
	TenantID      string       `json:"tenantID"`
	Period        string       `json:"period"` // Label, e.g. "2025-01"
	StartDate     time.Time    `json:"startDate"`
	EndDate       time.Time    `json:"endDate"`
	Status        PeriodStatus `json:"status"`
	ClosedAt      time.Time    `json:"closedAt"`
}

// Contains reports whether the given date falls inside the closed range,
// boundaries included.
func (p PeriodClose) Contains(date time.Time) bool {
	return !date.Before(p.StartDate) && !date.After(p.EndDate)
}

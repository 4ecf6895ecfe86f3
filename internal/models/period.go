package models

import "time"

// PeriodClose is the DB representation of a closed accounting period.
type PeriodClose struct {
	PeriodCloseID string    `db:"period_close_id"`
	TenantID      string    `db:"tenant_id"`
	Period        string    `db:"period"`
	StartDate     time.Time `db:"start_date"`
	EndDate       time.Time `db:"end_date"`
	Status        string    `db:"status"`
	ClosedAt      time.Time `db:"closed_at"`
}

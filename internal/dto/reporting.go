package dto

import (
	"github.com/finacct/backend/internal/core/domain"
)

// ReportRangeParams holds the date range query parameters shared by the
// range-based reports.
type ReportRangeParams struct {
	Start string `form:"start" binding:"required"`
	End   string `form:"end" binding:"required"`
}

// AsOfParams holds the as-of date query parameter for point-in-time reports.
type AsOfParams struct {
	AsOf string `form:"asOf" binding:"required"`
}

// ListLedgerParams holds pagination parameters for the per-account ledger listing.
type ListLedgerParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListLedgerResponse is a page of ledger lines plus the continuation token.
type ListLedgerResponse struct {
	Lines     []domain.LedgerLine `json:"lines"`
	NextToken *string             `json:"nextToken,omitempty"`
}

package domain_test

import (
	"testing"
	"time"

	"github.com/finacct/backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeAccountType(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  domain.AccountType
		ok    bool
	}{
		{name: "asset", input: "ASSET", want: domain.Asset, ok: true},
		{name: "liability", input: "LIABILITY", want: domain.Liability, ok: true},
		{name: "equity", input: "EQUITY", want: domain.Equity, ok: true},
		{name: "income", input: "INCOME", want: domain.Income, ok: true},
		{name: "expense", input: "EXPENSE", want: domain.Expense, ok: true},
		{name: "revenue alias maps to income", input: "REVENUE", want: domain.Income, ok: true},
		{name: "unknown", input: "CONTRA", ok: false},
		{name: "lowercase rejected", input: "asset", ok: false},
		{name: "empty", input: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := domain.NormalizeAccountType(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestPeriodCloseContains(t *testing.T) {
	period := domain.PeriodClose{
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, period.Contains(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)))
	// Boundaries are inside the closed range
	assert.True(t, period.Contains(period.StartDate))
	assert.True(t, period.Contains(period.EndDate))
	assert.False(t, period.Contains(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)))
	assert.False(t, period.Contains(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)))
}

func TestRefundIsActive(t *testing.T) {
	tests := []struct {
		status domain.RefundStatus
		want   bool
	}{
		{domain.RefundRequested, true},
		{domain.RefundApproved, true},
		{domain.RefundReleased, true},
		{domain.RefundFailed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			refund := domain.Refund{Status: tt.status}
			assert.Equal(t, tt.want, refund.IsActive())
		})
	}
}

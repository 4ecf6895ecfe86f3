package accounting

import (
	"fmt"

	"github.com/finacct/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceTolerance bounds the |debits - credits| drift a healthy ledger may
// show in aggregate reads. Posted transactions are held to a stricter bar:
// their rounded sums must match exactly.
var BalanceTolerance = decimal.NewFromFloat(0.01)

// SumDebits returns the total of all debit legs.
func SumDebits(entries []domain.Entry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Debit)
	}
	return total
}

// SumCredits returns the total of all credit legs.
func SumCredits(entries []domain.Entry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Credit)
	}
	return total
}

// ValidateEntriesBalance checks the double-entry invariant over a set of
// entry legs: at least one leg, no negative amounts, and debit and credit
// totals equal once rounded to two decimals. Sub-cent drift from per-line
// rounding disappears in the rounding; a full cent does not and is rejected.
func ValidateEntriesBalance(entries []domain.Entry) error {
	if len(entries) < 1 {
		return fmt.Errorf("transaction must have at least one entry")
	}

	for _, e := range entries {
		if e.Debit.IsNegative() || e.Credit.IsNegative() {
			return fmt.Errorf("entry amounts must not be negative for account %s", e.AccountID)
		}
	}

	debits := SumDebits(entries).Round(2)
	credits := SumCredits(entries).Round(2)
	if !debits.Equal(credits) {
		return fmt.Errorf("debits sum is %s and credits sum is %s", debits.String(), credits.String())
	}
	return nil
}

// NetValue computes the value a set of entries actually moved: the larger of
// total debits and total credits. Both sides agree for a balanced transaction,
// so this is the one-sided magnitude used to size reversal scaling. Summing
// credit minus debit would always be zero for balanced entries and never
// scale anything.
func NetValue(entries []domain.Entry) decimal.Decimal {
	debits := SumDebits(entries)
	credits := SumCredits(entries)
	if debits.GreaterThan(credits) {
		return debits
	}
	return credits
}

// ReversalFactor computes the proportional scale for a partial refund:
// min(|refundAmount / originalNet|, 1). A zero original net yields 1 so a
// degenerate original still reverses one-to-one.
func ReversalFactor(refundAmount, originalNet decimal.Decimal) decimal.Decimal {
	one := decimal.NewFromInt(1)
	if originalNet.IsZero() {
		return one
	}
	factor := refundAmount.Div(originalNet).Abs()
	if factor.GreaterThan(one) {
		return one
	}
	return factor
}

// ScaleEntries multiplies every leg by factor, rounding each amount to two
// decimals. The input is not mutated.
func ScaleEntries(entries []domain.Entry, factor decimal.Decimal) []domain.Entry {
	scaled := make([]domain.Entry, len(entries))
	for i, e := range entries {
		scaled[i] = e
		scaled[i].Debit = e.Debit.Mul(factor).Round(2)
		scaled[i].Credit = e.Credit.Mul(factor).Round(2)
	}
	return scaled
}

// SwapLegs builds the naive reversal of a set of entries by exchanging each
// leg's debit and credit.
func SwapLegs(entries []domain.Entry) []domain.Entry {
	swapped := make([]domain.Entry, len(entries))
	for i, e := range entries {
		swapped[i] = e
		swapped[i].Debit = e.Credit
		swapped[i].Credit = e.Debit
	}
	return swapped
}

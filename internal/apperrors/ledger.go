package apperrors

import "errors"

// Ledger-specific error kinds. All of these are recoverable by the caller and
// are surfaced with a message naming the tenant/period/account that triggered
// them; none leave partial state behind.

// ErrUnbalancedEntry indicates a journal entry whose debits and credits do not balance.
var ErrUnbalancedEntry = errors.New("debits and credits must balance")

// ErrPeriodLocked indicates an attempted post dated inside a closed accounting period.
var ErrPeriodLocked = errors.New("posting locked, period is closed")

// ErrAlreadyClosed indicates a duplicate close attempt for the same period.
var ErrAlreadyClosed = errors.New("period already closed")

// ErrMissingSystemAccount indicates a tenant is missing a required well-known account.
var ErrMissingSystemAccount = errors.New("required system account is missing")

// ErrAccountNotFound indicates a bad account id or a heuristic lookup with no match.
var ErrAccountNotFound = errors.New("account not found")

// ErrReversalFailed indicates a refund that cannot be reversed cleanly.
var ErrReversalFailed = errors.New("refund cannot be reversed")

package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether the account type is one of the five known types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Income, Expense:
		return true
	}
	return false
}

// NormalizeAccountType maps caller-supplied type spellings onto the canonical
// enum. Some callers say REVENUE where the ledger says INCOME.
func NormalizeAccountType(input string) (AccountType, bool) {
	switch AccountType(input) {
	case Asset, Liability, Equity, Income, Expense:
		return AccountType(input), true
	case "REVENUE":
		return Income, true
	}
	return "", false
}

// Account represents one chart-of-accounts entry, scoped to a tenant.
// The (TenantID, Code) pair is unique; accounts are referenced by entries
// across time and are never deleted.
type Account struct {
	AccountID    string      `json:"accountID"`    // Primary key (UUID)
	TenantID     string      `json:"tenantID"`     // FK -> tenants (NON-NULL)
	Code         string      `json:"code"`         // Unique per tenant
	Name         string      `json:"name"`         // User-defined name
	AccountType  AccountType `json:"accountType"`  // ASSET, LIABILITY, etc.
	CurrencyCode string      `json:"currencyCode"` // ISO currency code
	IsActive     bool        `json:"isActive"`     // Soft delete flag
	AuditFields
}

// AccountRole identifies a well-known system account for a tenant.
// Roles are mapped explicitly to account ids at tenant bootstrap instead of
// being resolved by name-substring heuristics.
type AccountRole string

const (
	RoleCash             AccountRole = "CASH"
	RoleAPControl        AccountRole = "AP_CONTROL"
	RoleRetainedEarnings AccountRole = "RETAINED_EARNINGS"
	RoleIncomeSummary    AccountRole = "INCOME_SUMMARY"
	RoleTaxLiability     AccountRole = "TAX_LIABILITY"
)

// Well-known account codes kept as a fallback for tenants bootstrapped before
// the role mapping table existed.
const (
	CodeRetainedEarnings = "3000"
	CodeIncomeSummary    = "3999"
	CashCodePrefix       = "2000"
)

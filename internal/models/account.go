package models

// AccountType mirrors domain.AccountType for DB storage.
type AccountType string

// Account is the DB representation of a chart-of-accounts row.
type Account struct {
	AccountID    string      `db:"account_id"`
	TenantID     string      `db:"tenant_id"`
	Code         string      `db:"code"`
	Name         string      `db:"name"`
	AccountType  AccountType `db:"account_type"`
	CurrencyCode string      `db:"currency_code"`
	IsActive     bool        `db:"is_active"`
	AuditFields
}

// AccountRole is the DB representation of a role-to-account mapping row.
type AccountRole struct {
	TenantID  string `db:"tenant_id"`
	Role      string `db:"role"`
	AccountID string `db:"account_id"`
}

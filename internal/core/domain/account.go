package domain

// Account represents a financial account within a company's chart of accounts.
type Account struct {
	AccountID  string `json:"accountID" db:"account_id"` // Primary Key (UUID)
	CompanyID  string `json:"companyID" db:"company_id"`
	Code       string `json:"code" db:"code"` // user-facing account code (e.g. "1.1.01")
	Name       string `json:"name" db:"name"`
	Deprecated bool   `json:"deprecated" db:"deprecated"`
	AuditFields
}

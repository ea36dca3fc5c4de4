package domain

import "time"

// Company represents a tenant: an isolated environment containing journals,
// accounts, ledger entries and transfer requests.
type Company struct {
	CompanyID   string `json:"companyID" db:"company_id"` // Primary Key (UUID)
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	// Treasury configuration. Both are nullable until an administrator sets
	// them; transfer requests can be drafted before that, but not validated.
	CentralJournalID *string `json:"centralJournalID" db:"central_journal_id"` // destination journal for transfer entries
	TransitAccountID *string `json:"transitAccountID" db:"transit_account_id"` // debit leg of transfer entries
	IsActive         bool    `json:"isActive" db:"is_active"`
	AuditFields
}

// UserCompanyRole defines the possible roles a user can have within a company.
type UserCompanyRole string

const (
	RoleAdmin    UserCompanyRole = "ADMIN"
	RoleMember   UserCompanyRole = "MEMBER"
	RoleReadOnly UserCompanyRole = "READONLY"
	RoleRemoved  UserCompanyRole = "REMOVED" // for users who have been removed from the company
)

// UserCompany represents the membership of a User in a Company.
type UserCompany struct {
	UserID    string          `json:"userID" db:"user_id"`
	UserName  string          `json:"userName" db:"user_name"`
	CompanyID string          `json:"companyID" db:"company_id"`
	Role      UserCompanyRole `json:"role" db:"role"`
	JoinedAt  time.Time       `json:"joinedAt" db:"joined_at"`
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a ledger entry.
type EntryStatus string

const (
	EntryDraft  EntryStatus = "DRAFT"
	EntryPosted EntryStatus = "POSTED"
)

// Entry is a ledger entry: a dated, journal-scoped set of debit/credit lines.
// Only POSTED entries contribute to account balances.
type Entry struct {
	EntryID   string      `json:"entryID" db:"entry_id"` // Primary Key (UUID)
	CompanyID string      `json:"companyID" db:"company_id"`
	JournalID string      `json:"journalID" db:"journal_id"`
	EntryDate time.Time   `json:"entryDate" db:"entry_date"`
	Reference string      `json:"reference" db:"reference"` // free-text reference identifying the origin
	Status    EntryStatus `json:"status" db:"status"`
	AuditFields
	Lines []EntryLine `json:"lines" db:"-"` // loaded separately by the repository
}

// EntryLine is a single movement on one account within an Entry.
type EntryLine struct {
	LineID    string          `json:"lineID" db:"line_id"` // Primary Key (UUID)
	EntryID   string          `json:"entryID" db:"entry_id"`
	CompanyID string          `json:"companyID" db:"company_id"`
	AccountID string          `json:"accountID" db:"account_id"`
	Label     string          `json:"label" db:"label"`
	Debit     decimal.Decimal `json:"debit" db:"debit"`
	Credit    decimal.Decimal `json:"credit" db:"credit"`
}

// Balance returns the line's contribution to its account balance in the
// ledger's debit-minus-credit convention.
func (l *EntryLine) Balance() decimal.Decimal {
	return l.Debit.Sub(l.Credit)
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferStatus indicates the state of a transfer request.
type TransferStatus string

const (
	TransferDraft     TransferStatus = "DRAFT"
	TransferValidated TransferStatus = "VALIDATED"
)

// TransferRequest records a cash transfer from a local cash/bank journal to
// the company's central treasury journal. The record starts as a draft with
// a system-computed amount; a human enters the amount they actually counted
// and, once validated, a two-line ledger entry is created and posted on the
// central journal.
type TransferRequest struct {
	TransferID string    `json:"transferID" db:"transfer_id"` // Primary Key (UUID)
	CompanyID  string    `json:"companyID" db:"company_id"`
	Date       time.Time `json:"date" db:"date"` // accounting date of the generated entry
	// SourceJournalID is assigned automatically at creation and never
	// user-editable afterwards.
	SourceJournalID string `json:"sourceJournalID" db:"source_journal_id"`
	// SystemAmount is the posted balance of the source journal's main account
	// at creation time. Read-only once set.
	SystemAmount decimal.Decimal `json:"systemAmount" db:"system_amount"`
	// InputAmount is the amount the user declares they are transferring.
	InputAmount decimal.Decimal `json:"inputAmount" db:"input_amount"`
	// Reason explains the variance; mandatory at validation time when the
	// rounded variance is non-zero.
	Reason string         `json:"reason" db:"reason"`
	Status TransferStatus `json:"status" db:"status"`
	// EntryID links to the posted ledger entry once validated.
	EntryID *string `json:"entryID" db:"entry_id"`
	AuditFields
}

// Variance is the difference between what the system says the journal holds
// and what the user declares they are transferring. Always recomputed, never
// stored, so it can't go stale when either operand changes.
func (t *TransferRequest) Variance() decimal.Decimal {
	return t.SystemAmount.Sub(t.InputAmount)
}

// HasVariance reports whether the variance, rounded to currency precision
// (2 decimal places), is non-zero. This is the comparison that decides
// whether a reason is mandatory.
func (t *TransferRequest) HasVariance() bool {
	return !t.Variance().Round(2).IsZero()
}

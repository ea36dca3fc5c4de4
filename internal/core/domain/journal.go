package domain

// JournalKind classifies a journal within the ledger.
type JournalKind string

const (
	JournalCash    JournalKind = "CASH"
	JournalBank    JournalKind = "BANK"
	JournalGeneral JournalKind = "GENERAL"
)

// Journal is a named ledger scope (a specific cash box, bank account or the
// general journal) with an associated main account.
type Journal struct {
	JournalID string      `json:"journalID" db:"journal_id"` // Primary Key (UUID)
	CompanyID string      `json:"companyID" db:"company_id"`
	Name      string      `json:"name" db:"name"` // display name, used in entry line labels
	Kind      JournalKind `json:"kind" db:"kind"`
	// OperatingUnitID scopes the journal to an organizational unit (branch,
	// point of sale). Nullable: not every deployment uses operating units.
	OperatingUnitID *string `json:"operatingUnitID" db:"operating_unit_id"`
	// Main-account candidates, in resolution priority order. All nullable:
	// older ledger configurations may expose none of them.
	DefaultAccountID       *string `json:"defaultAccountID" db:"default_account_id"`
	PaymentDebitAccountID  *string `json:"paymentDebitAccountID" db:"payment_debit_account_id"`
	PaymentCreditAccountID *string `json:"paymentCreditAccountID" db:"payment_credit_account_id"`
	IsActive               bool    `json:"isActive" db:"is_active"`
	AuditFields
}

// MainAccountID resolves the journal's main account: the designated default
// account wins, then the payment-debit account, then the payment-credit
// account. Returns nil when the journal exposes none of them; callers must
// handle that.
func (j *Journal) MainAccountID() *string {
	if j.DefaultAccountID != nil && *j.DefaultAccountID != "" {
		return j.DefaultAccountID
	}
	if j.PaymentDebitAccountID != nil && *j.PaymentDebitAccountID != "" {
		return j.PaymentDebitAccountID
	}
	if j.PaymentCreditAccountID != nil && *j.PaymentCreditAccountID != "" {
		return j.PaymentCreditAccountID
	}
	return nil
}

package repositories

import (
	"context"
	"time"

	"github.com/centraldesk/treasury_transfer_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryReader defines read operations for ledger entry data
type EntryReader interface {
	// FindEntryByID retrieves an entry and its lines.
	FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error)

	// SumPostedBalance sums debit minus credit over the lines of POSTED
	// entries on the given account, scoped to the company, with entry date
	// on or before asOf. Returns zero when no lines match.
	SumPostedBalance(ctx context.Context, accountID, companyID string, asOf time.Time) (decimal.Decimal, error)
}

// EntryWriter defines write operations for ledger entry data
type EntryWriter interface {
	// SaveEntry persists an entry and its lines atomically.
	SaveEntry(ctx context.Context, entry domain.Entry) error

	// MarkEntryPosted flips a DRAFT entry to POSTED. Fails with
	// apperrors.ErrValidation when the entry is not in DRAFT.
	MarkEntryPosted(ctx context.Context, entryID string, updatedBy string, updatedAt time.Time) error
}

// EntryRepositoryFacade combines all entry-related repository interfaces
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
}

package services

import (
	"context"
	"time"

	"github.com/centraldesk/treasury_transfer_app/internal/core/domain"
	portsrepo "github.com/centraldesk/treasury_transfer_app/internal/core/ports/repositories"
	"github.com/centraldesk/treasury_transfer_app/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerQuerySvc defines the read side of the ledger capability interface.
type LedgerQuerySvc interface {
	// QueryJournals retrieves journals matching the filter, ordered by
	// journal id ascending.
	QueryJournals(ctx context.Context, filter portsrepo.JournalFilter) ([]domain.Journal, error)

	// QueryPostedBalance sums posted line balances (debit minus credit) on an
	// account, company scoped, with entry dates on or before asOf.
	QueryPostedBalance(ctx context.Context, accountID, companyID string, asOf time.Time) (decimal.Decimal, error)
}

// LedgerEntrySvc defines the write side of the ledger capability interface.
type LedgerEntrySvc interface {
	// CreateEntry creates a draft ledger entry with its lines and returns its id.
	CreateEntry(ctx context.Context, entry domain.Entry, creatorUserID string) (string, error)

	// PostEntry commits a draft entry. A created-but-unposted entry is not a
	// valid terminal state for any caller in this application.
	PostEntry(ctx context.Context, entryID string, userID string) error
}

// LedgerAdminSvc defines the administrative surface for standing up a
// company's ledger: journals and accounts.
type LedgerAdminSvc interface {
	CreateJournal(ctx context.Context, companyID string, req dto.CreateJournalRequest, userID string) (*domain.Journal, error)
	ListJournals(ctx context.Context, companyID string, userID string) ([]domain.Journal, error)
	CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, companyID string, userID string) ([]domain.Account, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerQuerySvc
	LedgerEntrySvc
	LedgerAdminSvc
}

package repositories

import (
	"context"

	"github.com/centraldesk/treasury_transfer_app/internal/core/domain"
)

// JournalFilter narrows journal queries. Zero-value fields are ignored.
type JournalFilter struct {
	CompanyID        string
	Kinds            []domain.JournalKind
	OperatingUnitIDs []string // restrict to these units when non-empty
	JournalIDs       []string
}

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindJournalByID retrieves a specific journal by its unique identifier.
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// FindJournals retrieves the journals matching the filter, ordered by
	// journal id ascending so selection among equals is deterministic.
	FindJournals(ctx context.Context, filter JournalFilter) ([]domain.Journal, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// SaveJournal persists a new journal.
	SaveJournal(ctx context.Context, journal domain.Journal) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}

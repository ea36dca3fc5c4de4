package pgsql

import (
	portsrepo "github.com/centraldesk/treasury_transfer_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all pgx repositories over a shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CompanyRepo:  newPgxCompanyRepository(pool),
		UserRepo:     newPgxUserRepository(pool),
		JournalRepo:  newPgxJournalRepository(pool),
		AccountRepo:  newPgxAccountRepository(pool),
		EntryRepo:    newPgxEntryRepository(pool),
		TransferRepo: newPgxTransferRepository(pool),
	}
}

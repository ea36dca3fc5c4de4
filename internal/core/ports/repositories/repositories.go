package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	CompanyRepo  CompanyRepositoryFacade
	UserRepo     UserRepositoryFacade
	JournalRepo  JournalRepositoryFacade
	AccountRepo  AccountRepositoryFacade
	EntryRepo    EntryRepositoryFacade
	TransferRepo TransferRepositoryFacade
}

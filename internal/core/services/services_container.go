package services

import (
	portsrepo "github.com/centraldesk/treasury_transfer_app/internal/core/ports/repositories"
	portssvc "github.com/centraldesk/treasury_transfer_app/internal/core/ports/services"
	"github.com/centraldesk/treasury_transfer_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Company service first since the others depend on its authorizer.
	container.Company = NewCompanyService(repos.CompanyRepo, repos.JournalRepo, repos.AccountRepo)
	authorizer := container.Company.(portssvc.CompanyAuthorizerSvc)

	container.User = NewUserService(repos.UserRepo)
	container.Ledger = NewLedgerService(repos.JournalRepo, repos.AccountRepo, repos.EntryRepo, authorizer)
	container.Transfer = NewTransferService(repos.TransferRepo, repos.CompanyRepo, container.Ledger, container.User, authorizer)
	container.Token = NewTokenService(cfg)

	return container
}

package repositories

import (
	"context"
	"time"

	"github.com/centraldesk/treasury_transfer_app/internal/core/domain"
)

// CompanyReader defines read operations for company data
type CompanyReader interface {
	// FindCompanyByID retrieves a specific company by its unique identifier.
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)

	// ListCompaniesByUser retrieves the companies a user is a member of.
	ListCompaniesByUser(ctx context.Context, userID string) ([]domain.Company, error)

	// FindUserCompanyRole retrieves the membership of a user in a company.
	// Returns apperrors.ErrNotFound when the user is not a member.
	FindUserCompanyRole(ctx context.Context, userID, companyID string) (*domain.UserCompany, error)
}

// CompanyWriter defines write operations for company data
type CompanyWriter interface {
	// SaveCompany persists a new company.
	SaveCompany(ctx context.Context, company domain.Company) error

	// UpdateTreasuryConfig sets the central journal and transit account refs.
	UpdateTreasuryConfig(ctx context.Context, companyID string, centralJournalID, transitAccountID *string, updatedBy string, updatedAt time.Time) error

	// AddUserToCompany adds (or updates) a user's membership in a company.
	AddUserToCompany(ctx context.Context, membership domain.UserCompany) error
}

// CompanyRepositoryFacade combines all company-related repository interfaces
type CompanyRepositoryFacade interface {
	CompanyReader
	CompanyWriter
}

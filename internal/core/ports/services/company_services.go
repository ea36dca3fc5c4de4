package services

import (
	"context"

	"github.com/centraldesk/treasury_transfer_app/internal/core/domain"
	"github.com/centraldesk/treasury_transfer_app/internal/dto"
)

// CompanyReaderSvc defines read operations for company data
type CompanyReaderSvc interface {
	// GetCompanyByID retrieves a company the user is a member of.
	GetCompanyByID(ctx context.Context, companyID string, userID string) (*domain.Company, error)

	// ListUserCompanies retrieves the companies the user is a member of.
	ListUserCompanies(ctx context.Context, userID string) ([]domain.Company, error)
}

// CompanyWriterSvc defines write operations for company data
type CompanyWriterSvc interface {
	// CreateCompany creates a company and makes the creator its admin.
	CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error)

	// UpdateTreasuryConfig sets the central journal and/or transit account.
	// Requires the ADMIN role.
	UpdateTreasuryConfig(ctx context.Context, companyID string, req dto.UpdateTreasuryConfigRequest, userID string) (*domain.Company, error)

	// AddUserToCompany grants a user a membership role in the company.
	// Requires the ADMIN role.
	AddUserToCompany(ctx context.Context, companyID string, req dto.AddUserToCompanyRequest, actingUserID string) error
}

// CompanyAuthorizerSvc checks membership roles for company-scoped operations.
type CompanyAuthorizerSvc interface {
	// AuthorizeUserAction returns apperrors.ErrForbidden when the user does
	// not hold at least the required role in the company.
	AuthorizeUserAction(ctx context.Context, userID, companyID string, requiredRole domain.UserCompanyRole) error
}

// CompanySvcFacade combines all company-related service interfaces
type CompanySvcFacade interface {
	CompanyReaderSvc
	CompanyWriterSvc
	CompanyAuthorizerSvc
}

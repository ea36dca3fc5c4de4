package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/centraldesk/treasury_transfer_app/internal/apperrors"
	"github.com/centraldesk/treasury_transfer_app/internal/core/domain"
	portsrepo "github.com/centraldesk/treasury_transfer_app/internal/core/ports/repositories"
	portssvc "github.com/centraldesk/treasury_transfer_app/internal/core/ports/services"
	"github.com/centraldesk/treasury_transfer_app/internal/dto"
	"github.com/centraldesk/treasury_transfer_app/internal/middleware"
)

// companyService handles business logic related to companies, memberships
// and the treasury configuration surface.
type companyService struct {
	BaseService
	companyRepo portsrepo.CompanyRepositoryFacade
	journalRepo portsrepo.JournalReader
	accountRepo portsrepo.AccountReader
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(cr portsrepo.CompanyRepositoryFacade, jr portsrepo.JournalReader, ar portsrepo.AccountReader) portssvc.CompanySvcFacade {
	return &companyService{
		companyRepo: cr,
		journalRepo: jr,
		accountRepo: ar,
	}
}

// Ensure companyService implements the portssvc.CompanySvcFacade interface
var _ portssvc.CompanySvcFacade = (*companyService)(nil)

// roleRank orders membership roles for authorization checks.
func roleRank(role domain.UserCompanyRole) int {
	switch role {
	case domain.RoleAdmin:
		return 3
	case domain.RoleMember:
		return 2
	case domain.RoleReadOnly:
		return 1
	default:
		return 0
	}
}

// CreateCompany creates a new company and makes the creator the initial admin.
func (s *companyService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	company := domain.Company{
		CompanyID:   uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		logger.Error("Failed to save company in repository", slog.String("error", err.Error()), slog.String("company_name", req.Name))
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	membership := domain.UserCompany{
		UserID:    creatorUserID,
		CompanyID: company.CompanyID,
		Role:      domain.RoleAdmin,
		JoinedAt:  now,
	}
	if err := s.companyRepo.AddUserToCompany(ctx, membership); err != nil {
		logger.Error("Failed to add creator as admin to new company", slog.String("error", err.Error()), slog.String("company_id", company.CompanyID))
		return nil, fmt.Errorf("failed to add creator membership: %w", err)
	}

	logger.Info("Company created successfully", slog.String("company_id", company.CompanyID), slog.String("creator_user_id", creatorUserID))
	return &company, nil
}

// GetCompanyByID retrieves a company, requiring at least read-only membership.
func (s *companyService) GetCompanyByID(ctx context.Context, companyID string, userID string) (*domain.Company, error) {
	if err := s.AuthorizeUserAction(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return company, nil
}

// ListUserCompanies retrieves the companies the user is a member of.
func (s *companyService) ListUserCompanies(ctx context.Context, userID string) ([]domain.Company, error) {
	return s.companyRepo.ListCompaniesByUser(ctx, userID)
}

// UpdateTreasuryConfig sets the company's central journal and/or transit
// account. Admin only. Referenced journal and account must exist and belong
// to the company; the central journal must be of kind cash or bank.
func (s *companyService) UpdateTreasuryConfig(ctx context.Context, companyID string, req dto.UpdateTreasuryConfigRequest, userID string) (*domain.Company, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, userID, companyID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if req.CentralJournalID != nil {
		journal, err := s.journalRepo.FindJournalByID(ctx, *req.CentralJournalID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: central journal %s not found", apperrors.ErrValidation, *req.CentralJournalID)
			}
			return nil, fmt.Errorf("failed to check central journal: %w", err)
		}
		if journal.CompanyID != companyID {
			return nil, fmt.Errorf("%w: central journal belongs to another company", apperrors.ErrValidation)
		}
		if journal.Kind != domain.JournalCash && journal.Kind != domain.JournalBank {
			return nil, fmt.Errorf("%w: central journal must be a cash or bank journal", apperrors.ErrValidation)
		}
		company.CentralJournalID = req.CentralJournalID
	}

	if req.TransitAccountID != nil {
		account, err := s.accountRepo.FindAccountByID(ctx, *req.TransitAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: transit account %s not found", apperrors.ErrValidation, *req.TransitAccountID)
			}
			return nil, fmt.Errorf("failed to check transit account: %w", err)
		}
		if account.CompanyID != companyID {
			return nil, fmt.Errorf("%w: transit account belongs to another company", apperrors.ErrValidation)
		}
		if account.Deprecated {
			return nil, fmt.Errorf("%w: transit account is deprecated", apperrors.ErrValidation)
		}
		company.TransitAccountID = req.TransitAccountID
	}

	now := time.Now()
	if err := s.companyRepo.UpdateTreasuryConfig(ctx, companyID, company.CentralJournalID, company.TransitAccountID, userID, now); err != nil {
		logger.Error("Failed to update treasury config", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to update treasury config: %w", err)
	}
	company.LastUpdatedAt = now
	company.LastUpdatedBy = userID

	logger.Info("Treasury config updated", slog.String("company_id", companyID))
	return company, nil
}

// AddUserToCompany grants a membership role. Admin only.
func (s *companyService) AddUserToCompany(ctx context.Context, companyID string, req dto.AddUserToCompanyRequest, actingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, actingUserID, companyID, domain.RoleAdmin); err != nil {
		return err
	}

	if _, err := s.companyRepo.FindCompanyByID(ctx, companyID); err != nil {
		return err
	}

	membership := domain.UserCompany{
		UserID:    req.UserID,
		CompanyID: companyID,
		Role:      req.Role,
		JoinedAt:  time.Now(),
	}
	if err := s.companyRepo.AddUserToCompany(ctx, membership); err != nil {
		logger.Error("Failed to add user to company", slog.String("error", err.Error()), slog.String("company_id", companyID), slog.String("target_user_id", req.UserID))
		return err
	}

	logger.Info("User added to company", slog.String("company_id", companyID), slog.String("target_user_id", req.UserID), slog.String("role", string(req.Role)))
	return nil
}

// AuthorizeUserAction checks the user holds at least the required role.
func (s *companyService) AuthorizeUserAction(ctx context.Context, userID, companyID string, requiredRole domain.UserCompanyRole) error {
	membership, err := s.companyRepo.FindUserCompanyRole(ctx, userID, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: user is not a member of company %s", apperrors.ErrForbidden, companyID)
		}
		return fmt.Errorf("failed to check company membership: %w", err)
	}
	if membership.Role == domain.RoleRemoved || roleRank(membership.Role) < roleRank(requiredRole) {
		return fmt.Errorf("%w: requires %s role", apperrors.ErrForbidden, requiredRole)
	}
	return nil
}

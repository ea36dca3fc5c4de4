package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/centraldesk/treasury_transfer_app/internal/apperrors"
	"github.com/centraldesk/treasury_transfer_app/internal/core/domain"
	portsrepo "github.com/centraldesk/treasury_transfer_app/internal/core/ports/repositories"
	portssvc "github.com/centraldesk/treasury_transfer_app/internal/core/ports/services"
	"github.com/centraldesk/treasury_transfer_app/internal/core/services"
	"github.com/centraldesk/treasury_transfer_app/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CompanyRepository (full facade) ---

type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) ListCompaniesByUser(ctx context.Context, userID string) ([]domain.Company, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindUserCompanyRole(ctx context.Context, userID, companyID string) (*domain.UserCompany, error) {
	args := m.Called(ctx, userID, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserCompany), args.Error(1)
}

func (m *MockCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) UpdateTreasuryConfig(ctx context.Context, companyID string, centralJournalID, transitAccountID *string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, companyID, centralJournalID, transitAccountID, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockCompanyRepository) AddUserToCompany(ctx context.Context, membership domain.UserCompany) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

var _ portsrepo.CompanyRepositoryFacade = (*MockCompanyRepository)(nil)

// --- Test Suite Setup ---

type CompanyServiceTestSuite struct {
	suite.Suite
	mockCompanyRepo *MockCompanyRepository
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.CompanySvcFacade

	adminID string
}

func (suite *CompanyServiceTestSuite) SetupTest() {
	suite.mockCompanyRepo = new(MockCompanyRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewCompanyService(suite.mockCompanyRepo, suite.mockJournalRepo, suite.mockAccountRepo)

	suite.adminID = uuid.NewString()
}

// grantRole makes FindUserCompanyRole report the given role for the user.
func (suite *CompanyServiceTestSuite) grantRole(userID, companyID string, role domain.UserCompanyRole) {
	suite.mockCompanyRepo.On("FindUserCompanyRole", mock.Anything, userID, companyID).
		Return(&domain.UserCompany{UserID: userID, CompanyID: companyID, Role: role}, nil)
}

// --- CreateCompany ---

func (suite *CompanyServiceTestSuite) TestCreateCompany_CreatorBecomesAdmin() {
	ctx := context.Background()
	req := dto.CreateCompanyRequest{Name: "Acme Retail", Description: "Retail branches"}

	suite.mockCompanyRepo.On("SaveCompany", ctx, mock.AnythingOfType("domain.Company")).Return(nil).Once()
	suite.mockCompanyRepo.On("AddUserToCompany", ctx, mock.MatchedBy(func(uc domain.UserCompany) bool {
		return uc.UserID == suite.adminID && uc.Role == domain.RoleAdmin
	})).Return(nil).Once()

	company, err := suite.service.CreateCompany(ctx, req, suite.adminID)

	suite.Require().NoError(err)
	suite.NotEmpty(company.CompanyID)
	suite.Equal(req.Name, company.Name)
	suite.True(company.IsActive)
	suite.Nil(company.CentralJournalID)
	suite.Nil(company.TransitAccountID)
	suite.Equal(suite.adminID, company.CreatedBy)
	suite.mockCompanyRepo.AssertExpectations(suite.T())
}

// --- AuthorizeUserAction ---

func (suite *CompanyServiceTestSuite) TestAuthorizeUserAction_RoleRanking() {
	ctx := context.Background()
	companyID := uuid.NewString()

	memberID := uuid.NewString()
	suite.grantRole(memberID, companyID, domain.RoleMember)

	suite.NoError(suite.service.AuthorizeUserAction(ctx, memberID, companyID, domain.RoleReadOnly))
	suite.NoError(suite.service.AuthorizeUserAction(ctx, memberID, companyID, domain.RoleMember))
	suite.ErrorIs(suite.service.AuthorizeUserAction(ctx, memberID, companyID, domain.RoleAdmin), apperrors.ErrForbidden)
}

func (suite *CompanyServiceTestSuite) TestAuthorizeUserAction_RemovedMember() {
	ctx := context.Background()
	companyID := uuid.NewString()
	removedID := uuid.NewString()
	suite.grantRole(removedID, companyID, domain.RoleRemoved)

	err := suite.service.AuthorizeUserAction(ctx, removedID, companyID, domain.RoleReadOnly)

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *CompanyServiceTestSuite) TestAuthorizeUserAction_NonMember() {
	ctx := context.Background()
	companyID := uuid.NewString()
	strangerID := uuid.NewString()
	suite.mockCompanyRepo.On("FindUserCompanyRole", mock.Anything, strangerID, companyID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.AuthorizeUserAction(ctx, strangerID, companyID, domain.RoleReadOnly)

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- UpdateTreasuryConfig ---

func (suite *CompanyServiceTestSuite) TestUpdateTreasuryConfig_Success() {
	ctx := context.Background()
	companyID := uuid.NewString()
	journalID := uuid.NewString()
	accountID := uuid.NewString()
	suite.grantRole(suite.adminID, companyID, domain.RoleAdmin)

	company := &domain.Company{CompanyID: companyID, Name: "Acme", IsActive: true}
	journal := &domain.Journal{JournalID: journalID, CompanyID: companyID, Kind: domain.JournalBank}
	account := &domain.Account{AccountID: accountID, CompanyID: companyID, Code: "5700"}

	suite.mockCompanyRepo.On("FindCompanyByID", ctx, companyID).Return(company, nil).Once()
	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(journal, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	suite.mockCompanyRepo.On("UpdateTreasuryConfig", ctx, companyID, &journalID, &accountID, suite.adminID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := suite.service.UpdateTreasuryConfig(ctx, companyID, dto.UpdateTreasuryConfigRequest{
		CentralJournalID: &journalID,
		TransitAccountID: &accountID,
	}, suite.adminID)

	suite.Require().NoError(err)
	suite.Equal(journalID, *updated.CentralJournalID)
	suite.Equal(accountID, *updated.TransitAccountID)
	suite.mockCompanyRepo.AssertExpectations(suite.T())
}

func (suite *CompanyServiceTestSuite) TestUpdateTreasuryConfig_RejectsGeneralJournal() {
	ctx := context.Background()
	companyID := uuid.NewString()
	journalID := uuid.NewString()
	suite.grantRole(suite.adminID, companyID, domain.RoleAdmin)

	company := &domain.Company{CompanyID: companyID}
	general := &domain.Journal{JournalID: journalID, CompanyID: companyID, Kind: domain.JournalGeneral}

	suite.mockCompanyRepo.On("FindCompanyByID", ctx, companyID).Return(company, nil).Once()
	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(general, nil).Once()

	updated, err := suite.service.UpdateTreasuryConfig(ctx, companyID, dto.UpdateTreasuryConfigRequest{CentralJournalID: &journalID}, suite.adminID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCompanyRepo.AssertNotCalled(suite.T(), "UpdateTreasuryConfig", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CompanyServiceTestSuite) TestUpdateTreasuryConfig_RejectsDeprecatedAccount() {
	ctx := context.Background()
	companyID := uuid.NewString()
	accountID := uuid.NewString()
	suite.grantRole(suite.adminID, companyID, domain.RoleAdmin)

	company := &domain.Company{CompanyID: companyID}
	deprecated := &domain.Account{AccountID: accountID, CompanyID: companyID, Deprecated: true}

	suite.mockCompanyRepo.On("FindCompanyByID", ctx, companyID).Return(company, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(deprecated, nil).Once()

	updated, err := suite.service.UpdateTreasuryConfig(ctx, companyID, dto.UpdateTreasuryConfigRequest{TransitAccountID: &accountID}, suite.adminID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CompanyServiceTestSuite) TestUpdateTreasuryConfig_MemberForbidden() {
	ctx := context.Background()
	companyID := uuid.NewString()
	memberID := uuid.NewString()
	journalID := uuid.NewString()
	suite.grantRole(memberID, companyID, domain.RoleMember)

	updated, err := suite.service.UpdateTreasuryConfig(ctx, companyID, dto.UpdateTreasuryConfigRequest{CentralJournalID: &journalID}, memberID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- AddUserToCompany ---

func (suite *CompanyServiceTestSuite) TestAddUserToCompany_Success() {
	ctx := context.Background()
	companyID := uuid.NewString()
	newUserID := uuid.NewString()
	suite.grantRole(suite.adminID, companyID, domain.RoleAdmin)

	company := &domain.Company{CompanyID: companyID}
	suite.mockCompanyRepo.On("FindCompanyByID", ctx, companyID).Return(company, nil).Once()
	suite.mockCompanyRepo.On("AddUserToCompany", ctx, mock.MatchedBy(func(uc domain.UserCompany) bool {
		return uc.UserID == newUserID && uc.Role == domain.RoleReadOnly
	})).Return(nil).Once()

	err := suite.service.AddUserToCompany(ctx, companyID, dto.AddUserToCompanyRequest{UserID: newUserID, Role: domain.RoleReadOnly}, suite.adminID)

	suite.Require().NoError(err)
	suite.mockCompanyRepo.AssertExpectations(suite.T())
}

func TestCompanyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CompanyServiceTestSuite))
}

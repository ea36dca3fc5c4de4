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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock JournalRepository ---

type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindJournals(ctx context.Context, filter portsrepo.JournalFilter) ([]domain.Journal, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal) error {
	args := m.Called(ctx, journal)
	return args.Error(0)
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByCompany(ctx context.Context, companyID string) ([]domain.Account, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

// --- Mock EntryRepository ---

type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) SumPostedBalance(ctx context.Context, accountID, companyID string, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID, companyID, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockEntryRepository) SaveEntry(ctx context.Context, entry domain.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) MarkEntryPosted(ctx context.Context, entryID string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, entryID, updatedBy, updatedAt)
	return args.Error(0)
}

var _ portsrepo.EntryRepositoryFacade = (*MockEntryRepository)(nil)

// --- Test Suite Setup ---

type LedgerServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	mockEntryRepo   *MockEntryRepository
	mockAuthorizer  *MockAuthorizer
	service         portssvc.LedgerSvcFacade

	companyID string
	userID    string
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.mockAuthorizer = new(MockAuthorizer)
	suite.service = services.NewLedgerService(
		suite.mockJournalRepo,
		suite.mockAccountRepo,
		suite.mockEntryRepo,
		suite.mockAuthorizer,
	)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.companyID, mock.Anything).Return(nil).Maybe()
}

func (suite *LedgerServiceTestSuite) balancedEntry() domain.Entry {
	amount := decimal.NewFromInt(250)
	return domain.Entry{
		CompanyID: suite.companyID,
		JournalID: uuid.NewString(),
		EntryDate: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Reference: "test entry",
		Lines: []domain.EntryLine{
			{AccountID: uuid.NewString(), Debit: amount, Credit: decimal.Zero},
			{AccountID: uuid.NewString(), Debit: decimal.Zero, Credit: amount},
		},
	}
}

// --- QueryJournals / QueryPostedBalance ---

func (suite *LedgerServiceTestSuite) TestQueryJournals_RequiresCompany() {
	ctx := context.Background()

	journals, err := suite.service.QueryJournals(ctx, portsrepo.JournalFilter{})

	suite.Require().Error(err)
	suite.Nil(journals)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "FindJournals", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestQueryJournals_PassesFilter() {
	ctx := context.Background()
	filter := portsrepo.JournalFilter{
		CompanyID: suite.companyID,
		Kinds:     []domain.JournalKind{domain.JournalCash, domain.JournalBank},
	}
	suite.mockJournalRepo.On("FindJournals", ctx, filter).Return([]domain.Journal{}, nil).Once()

	_, err := suite.service.QueryJournals(ctx, filter)

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestQueryPostedBalance() {
	ctx := context.Background()
	accountID := uuid.NewString()
	asOf := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	want := decimal.RequireFromString("1234.56")
	suite.mockEntryRepo.On("SumPostedBalance", ctx, accountID, suite.companyID, asOf).Return(want, nil).Once()

	balance, err := suite.service.QueryPostedBalance(ctx, accountID, suite.companyID, asOf)

	suite.Require().NoError(err)
	suite.True(want.Equal(balance))
}

// --- CreateEntry / PostEntry ---

func (suite *LedgerServiceTestSuite) TestCreateEntry_Success() {
	ctx := context.Background()
	entry := suite.balancedEntry()
	journal := &domain.Journal{JournalID: entry.JournalID, CompanyID: suite.companyID, Kind: domain.JournalGeneral}

	suite.mockJournalRepo.On("FindJournalByID", ctx, entry.JournalID).Return(journal, nil).Once()
	suite.mockEntryRepo.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.Entry) bool {
		if e.EntryID == "" || e.Status != domain.EntryDraft {
			return false
		}
		for _, line := range e.Lines {
			if line.LineID == "" || line.EntryID != e.EntryID || line.CompanyID != e.CompanyID {
				return false
			}
		}
		return true
	})).Return(nil).Once()

	entryID, err := suite.service.CreateEntry(ctx, entry, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(entryID)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_Unbalanced() {
	ctx := context.Background()
	entry := suite.balancedEntry()
	entry.Lines[1].Credit = decimal.NewFromInt(300) // debits 250, credits 300

	entryID, err := suite.service.CreateEntry(ctx, entry, suite.userID)

	suite.Require().Error(err)
	suite.Empty(entryID)
	suite.ErrorIs(err, services.ErrEntryUnbalanced)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_SingleLine() {
	ctx := context.Background()
	entry := suite.balancedEntry()
	entry.Lines = entry.Lines[:1]

	_, err := suite.service.CreateEntry(ctx, entry, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryMinLines)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_NegativeLeg() {
	ctx := context.Background()
	entry := suite.balancedEntry()
	entry.Lines[0].Debit = decimal.NewFromInt(-250)
	entry.Lines[1].Credit = decimal.NewFromInt(-250)

	_, err := suite.service.CreateEntry(ctx, entry, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_JournalFromAnotherCompany() {
	ctx := context.Background()
	entry := suite.balancedEntry()
	foreign := &domain.Journal{JournalID: entry.JournalID, CompanyID: uuid.NewString()}

	suite.mockJournalRepo.On("FindJournalByID", ctx, entry.JournalID).Return(foreign, nil).Once()

	_, err := suite.service.CreateEntry(ctx, entry, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPostEntry() {
	ctx := context.Background()
	entryID := uuid.NewString()
	suite.mockEntryRepo.On("MarkEntryPosted", ctx, entryID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.PostEntry(ctx, entryID, suite.userID)

	suite.Require().NoError(err)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

// --- Admin surface ---

func (suite *LedgerServiceTestSuite) TestCreateJournal_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{AccountID: accountID, CompanyID: suite.companyID, Code: "5700", Name: "Cash"}
	req := dto.CreateJournalRequest{
		Name:             "Cash Register 1",
		Kind:             domain.JournalCash,
		DefaultAccountID: &accountID,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	suite.mockJournalRepo.On("SaveJournal", ctx, mock.AnythingOfType("domain.Journal")).Return(nil).Once()

	journal, err := suite.service.CreateJournal(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(journal.JournalID)
	suite.Equal(domain.JournalCash, journal.Kind)
	suite.True(journal.IsActive)
	suite.Equal(accountID, *journal.MainAccountID())
}

func (suite *LedgerServiceTestSuite) TestCreateJournal_ForeignAccount() {
	ctx := context.Background()
	accountID := uuid.NewString()
	foreign := &domain.Account{AccountID: accountID, CompanyID: uuid.NewString()}
	req := dto.CreateJournalRequest{Name: "Cash", Kind: domain.JournalCash, DefaultAccountID: &accountID}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(foreign, nil).Once()

	journal, err := suite.service.CreateJournal(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(journal)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCreateJournal_RequiresAdmin() {
	ctx := context.Background()
	otherUser := uuid.NewString()
	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, otherUser, suite.companyID, domain.RoleAdmin).Return(apperrors.ErrForbidden).Once()

	journal, err := suite.service.CreateJournal(ctx, suite.companyID, dto.CreateJournalRequest{Name: "Cash", Kind: domain.JournalCash}, otherUser)

	suite.Require().Error(err)
	suite.Nil(journal)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *LedgerServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "5700", Name: "Cash in transit"}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.AccountID != "" && a.CompanyID == suite.companyID && a.Code == "5700" && !a.Deprecated
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Cash in transit", account.Name)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

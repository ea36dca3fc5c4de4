package services_test

import (
	"context"
	"testing"

	"github.com/centraldesk/treasury_transfer_app/internal/apperrors"
	"github.com/centraldesk/treasury_transfer_app/internal/core/domain"
	portsrepo "github.com/centraldesk/treasury_transfer_app/internal/core/ports/repositories"
	portssvc "github.com/centraldesk/treasury_transfer_app/internal/core/ports/services"
	"github.com/centraldesk/treasury_transfer_app/internal/core/services"
	"github.com/centraldesk/treasury_transfer_app/internal/dto"
	"github.com/centraldesk/treasury_transfer_app/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) AssignOperatingUnits(ctx context.Context, userID string, operatingUnitIDs []string) error {
	args := m.Called(ctx, userID, operatingUnitIDs)
	return args.Error(0)
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

// --- Test Suite Setup ---

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *UserServiceTestSuite) TestRegisterUser_Success() {
	ctx := context.Background()
	req := dto.RegisterUserRequest{
		Name:     "Pat Cashier",
		Email:    "pat@example.com",
		Password: "s3cret-enough",
	}

	suite.mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		// Password is stored hashed, never in the clear.
		return u.UserID != "" && u.IsActive &&
			u.PasswordHash != req.Password &&
			utils.CheckPasswordHash(req.Password, u.PasswordHash)
	})).Return(nil).Once()

	user, err := suite.service.RegisterUser(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(req.Email, user.Email)
	suite.Equal(user.UserID, user.CreatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegisterUser_DuplicateEmail() {
	ctx := context.Background()
	req := dto.RegisterUserRequest{Name: "Pat", Email: "pat@example.com", Password: "s3cret-enough"}

	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Return(apperrors.NewConflictError("email pat@example.com is already registered")).Once()

	user, err := suite.service.RegisterUser(ctx, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	password := "s3cret-enough"
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)

	stored := &domain.User{
		UserID:       uuid.NewString(),
		Email:        "pat@example.com",
		PasswordHash: hash,
		IsActive:     true,
	}
	suite.mockRepo.On("FindUserByEmail", ctx, stored.Email).Return(stored, nil).Once()

	user, err := suite.service.AuthenticateUser(ctx, stored.Email, password)

	suite.Require().NoError(err)
	suite.Equal(stored.UserID, user.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("right-password")
	suite.Require().NoError(err)

	stored := &domain.User{UserID: uuid.NewString(), Email: "pat@example.com", PasswordHash: hash, IsActive: true}
	suite.mockRepo.On("FindUserByEmail", ctx, stored.Email).Return(stored, nil).Once()

	user, err := suite.service.AuthenticateUser(ctx, stored.Email, "wrong-password")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownEmailLooksLikeBadPassword() {
	ctx := context.Background()
	suite.mockRepo.On("FindUserByEmail", ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.AuthenticateUser(ctx, "nobody@example.com", "whatever")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_InactiveUser() {
	ctx := context.Background()
	password := "s3cret-enough"
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)

	stored := &domain.User{UserID: uuid.NewString(), Email: "ex@example.com", PasswordHash: hash, IsActive: false}
	suite.mockRepo.On("FindUserByEmail", ctx, stored.Email).Return(stored, nil).Once()

	user, err := suite.service.AuthenticateUser(ctx, stored.Email, password)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAssignOperatingUnits() {
	ctx := context.Background()
	userID := uuid.NewString()
	units := []string{"ou-east", "ou-west"}

	before := &domain.User{UserID: userID}
	after := &domain.User{UserID: userID, OperatingUnitIDs: units}
	suite.mockRepo.On("FindUserByID", ctx, userID).Return(before, nil).Once()
	suite.mockRepo.On("AssignOperatingUnits", ctx, userID, units).Return(nil).Once()
	suite.mockRepo.On("FindUserByID", ctx, userID).Return(after, nil).Once()

	user, err := suite.service.AssignOperatingUnits(ctx, userID, units)

	suite.Require().NoError(err)
	suite.Equal(units, user.OperatingUnitIDs)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

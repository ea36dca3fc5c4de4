package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/centraldesk/treasury_transfer_app/internal/apperrors"
	"github.com/centraldesk/treasury_transfer_app/internal/core/domain"
	portssvc "github.com/centraldesk/treasury_transfer_app/internal/core/ports/services"
	"github.com/centraldesk/treasury_transfer_app/internal/dto"
	"github.com/centraldesk/treasury_transfer_app/internal/handlers"
	"github.com/centraldesk/treasury_transfer_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransferService ---

type MockTransferService struct {
	mock.Mock
}

func (m *MockTransferService) InitializeTransfer(ctx context.Context, companyID string, userID string) (*domain.TransferRequest, error) {
	args := m.Called(ctx, companyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferRequest), args.Error(1)
}

func (m *MockTransferService) UpdateTransfer(ctx context.Context, companyID, transferID string, req dto.UpdateTransferRequest, userID string) (*domain.TransferRequest, error) {
	args := m.Called(ctx, companyID, transferID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferRequest), args.Error(1)
}

func (m *MockTransferService) ValidateTransfer(ctx context.Context, companyID, transferID string, userID string) (*domain.TransferRequest, error) {
	args := m.Called(ctx, companyID, transferID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferRequest), args.Error(1)
}

func (m *MockTransferService) GetTransferByID(ctx context.Context, companyID, transferID, userID string) (*domain.TransferRequest, error) {
	args := m.Called(ctx, companyID, transferID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferRequest), args.Error(1)
}

func (m *MockTransferService) ListTransfers(ctx context.Context, companyID string, limit, offset int, userID string) ([]domain.TransferRequest, error) {
	args := m.Called(ctx, companyID, limit, offset, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransferRequest), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.TransferSvcFacade = (*MockTransferService)(nil)

// --- Test Suite ---

type TransferHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockTransferService *MockTransferService
	jwtSecret           string
}

func (suite *TransferHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "tta-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tsignedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return tsignedString
}

func (suite *TransferHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockTransferService = new(MockTransferService)

	cfg := &config.Config{
		JWTSecret:              suite.jwtSecret,
		IsProduction:           true, // keeps swagger out of the test router
		AuthRateLimitPerMinute: 100,
	}
	container := &portssvc.ServiceContainer{
		Transfer: suite.mockTransferService,
	}
	handlers.RegisterRoutes(suite.router, cfg, container)
}

// --- Test Cases ---

func (suite *TransferHandlerTestSuite) TestListTransfers_Success() {
	companyID := uuid.NewString()
	userID := uuid.NewString()
	entryID := uuid.NewString()

	transfers := []domain.TransferRequest{
		{
			TransferID:      uuid.NewString(),
			CompanyID:       companyID,
			Date:            time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
			SourceJournalID: uuid.NewString(),
			SystemAmount:    decimal.NewFromInt(1000),
			InputAmount:     decimal.NewFromInt(900),
			Reason:          "float kept back",
			Status:          domain.TransferValidated,
			EntryID:         &entryID,
		},
		{
			TransferID:      uuid.NewString(),
			CompanyID:       companyID,
			Date:            time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			SourceJournalID: uuid.NewString(),
			SystemAmount:    decimal.NewFromInt(500),
			InputAmount:     decimal.Zero,
			Status:          domain.TransferDraft,
		},
	}

	suite.mockTransferService.On("ListTransfers", mock.Anything, companyID, 10, 0, userID).Return(transfers, nil).Once()

	url := fmt.Sprintf("/api/v1/companies/%s/transfers?limit=10", companyID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var got []dto.TransferResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Require().Len(got, 2)
	suite.Equal(transfers[0].TransferID, got[0].TransferID)
	// Variance is derived in the response.
	suite.True(decimal.NewFromInt(100).Equal(got[0].Variance))
	suite.Equal(string(domain.TransferValidated), got[0].Status)
	suite.mockTransferService.AssertExpectations(suite.T())
}

func (suite *TransferHandlerTestSuite) TestListTransfers_NoToken() {
	companyID := uuid.NewString()

	req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/companies/%s/transfers", companyID), nil)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockTransferService.AssertNotCalled(suite.T(), "ListTransfers", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransferHandlerTestSuite) TestInitializeTransfer_ConfigurationError() {
	companyID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockTransferService.On("InitializeTransfer", mock.Anything, companyID, userID).
		Return(nil, fmt.Errorf("%w: no eligible source journal", apperrors.ErrConfiguration)).Once()

	req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/transfers", companyID), nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Contains(resp.Error, "no eligible source journal")
}

func (suite *TransferHandlerTestSuite) TestGetTransfer_NotFound() {
	companyID := uuid.NewString()
	transferID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockTransferService.On("GetTransferByID", mock.Anything, companyID, transferID, userID).
		Return(nil, apperrors.ErrNotFound).Once()

	url := fmt.Sprintf("/api/v1/companies/%s/transfers/%s", companyID, transferID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TransferHandlerTestSuite) TestValidateTransfer_VarianceWithoutReason() {
	companyID := uuid.NewString()
	transferID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockTransferService.On("ValidateTransfer", mock.Anything, companyID, transferID, userID).
		Return(nil, fmt.Errorf("%w: variance exists, reason required", apperrors.ErrValidation)).Once()

	url := fmt.Sprintf("/api/v1/companies/%s/transfers/%s/validate", companyID, transferID)
	req, _ := http.NewRequest(http.MethodPost, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Contains(resp.Error, "reason required")
}

func (suite *TransferHandlerTestSuite) TestValidateTransfer_Success() {
	companyID := uuid.NewString()
	transferID := uuid.NewString()
	userID := uuid.NewString()
	entryID := uuid.NewString()

	validated := &domain.TransferRequest{
		TransferID:      transferID,
		CompanyID:       companyID,
		Date:            time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		SourceJournalID: uuid.NewString(),
		SystemAmount:    decimal.NewFromInt(1000),
		InputAmount:     decimal.NewFromInt(1000),
		Status:          domain.TransferValidated,
		EntryID:         &entryID,
	}
	suite.mockTransferService.On("ValidateTransfer", mock.Anything, companyID, transferID, userID).Return(validated, nil).Once()

	url := fmt.Sprintf("/api/v1/companies/%s/transfers/%s/validate", companyID, transferID)
	req, _ := http.NewRequest(http.MethodPost, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var got dto.TransferResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal(string(domain.TransferValidated), got.Status)
	suite.Require().NotNil(got.EntryID)
	suite.Equal(entryID, *got.EntryID)
}

func (suite *TransferHandlerTestSuite) TestUpdateTransfer_InvalidBody() {
	companyID := uuid.NewString()
	transferID := uuid.NewString()
	userID := uuid.NewString()

	url := fmt.Sprintf("/api/v1/companies/%s/transfers/%s", companyID, transferID)
	req, _ := http.NewRequest(http.MethodPut, url, nil) // no body at all
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTransferService.AssertNotCalled(suite.T(), "UpdateTransfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTransferHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TransferHandlerTestSuite))
}

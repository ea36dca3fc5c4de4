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
	"github.com/centraldesk/treasury_transfer_app/internal/utils"
)

// userService handles user registration, lookup and authentication.
type userService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new UserService.
func NewUserService(ur portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: ur}
}

// Ensure userService implements the portssvc.UserSvcFacade interface
var _ portssvc.UserSvcFacade = (*userService)(nil)

// RegisterUser creates a new user with a bcrypt-hashed password.
func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	user.CreatedBy = user.UserID
	user.LastUpdatedBy = user.UserID

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		logger.Error("Failed to save user in repository", slog.String("error", err.Error()), slog.String("email", req.Email))
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	logger.Info("User registered successfully", slog.String("user_id", user.UserID))
	return &user, nil
}

// GetUserByID retrieves a user, including operating unit assignments.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// AssignOperatingUnits replaces the user's operating unit assignments and
// returns the refreshed user.
func (s *userService) AssignOperatingUnits(ctx context.Context, userID string, operatingUnitIDs []string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return nil, err
	}

	if err := s.userRepo.AssignOperatingUnits(ctx, userID, operatingUnitIDs); err != nil {
		logger.Error("Failed to assign operating units", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to assign operating units: %w", err)
	}

	logger.Info("Operating units assigned", slog.String("user_id", userID), slog.Int("count", len(operatingUnitIDs)))
	return s.userRepo.FindUserByID(ctx, userID)
}

// AuthenticateUser verifies email/password credentials.
func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same error as a bad password so callers can't probe for accounts.
			return nil, apperrors.ErrUnauthorized
		}
		logger.Error("Failed to look up user for authentication", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	if !user.IsActive || !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Warn("Authentication failed", slog.String("user_id", user.UserID))
		return nil, apperrors.ErrUnauthorized
	}

	return user, nil
}

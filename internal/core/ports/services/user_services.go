package services

import (
	"context"
	"time"

	"github.com/centraldesk/treasury_transfer_app/internal/core/domain"
	"github.com/centraldesk/treasury_transfer_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by id, including operating unit assignments.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// RegisterUser creates a user with a bcrypt-hashed password.
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// AssignOperatingUnits replaces the user's operating unit assignments.
	AssignOperatingUnits(ctx context.Context, userID string, operatingUnitIDs []string) (*domain.User, error)
}

// UserAuthenticatorSvc verifies credentials.
type UserAuthenticatorSvc interface {
	// AuthenticateUser returns the user when email/password match, or
	// apperrors.ErrUnauthorized otherwise.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthenticatorSvc
}

// TokenSvcFacade issues access tokens for authenticated users.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed JWT for the user and returns it
	// with its expiry time.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}

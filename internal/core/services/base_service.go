package services

import (
	"context"
	"log/slog"

	"github.com/centraldesk/treasury_transfer_app/internal/core/domain"
	portssvc "github.com/centraldesk/treasury_transfer_app/internal/core/ports/services"
	"github.com/centraldesk/treasury_transfer_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	CompanyAuthorizer portssvc.CompanyAuthorizerSvc
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogWarn logs a warning message with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// AuthorizeUser checks if a user has the required role for a company
func (s *BaseService) AuthorizeUser(ctx context.Context, userID, companyID string, requiredRole domain.UserCompanyRole) error {
	if s.CompanyAuthorizer == nil {
		// No authorizer wired; deny nothing but make it visible.
		s.GetLogger(ctx).Debug("No company authorizer provided, access granted by default",
			slog.String("user_id", userID),
			slog.String("company_id", companyID),
			slog.String("required_role", string(requiredRole)))
		return nil
	}
	return s.CompanyAuthorizer.AuthorizeUserAction(ctx, userID, companyID, requiredRole)
}

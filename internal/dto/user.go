package dto

import (
	"time"

	"github.com/centraldesk/treasury_transfer_app/internal/core/domain"
)

// RegisterUserRequest defines the payload for registering a user.
type RegisterUserRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest defines the payload for logging in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	UserID      string    `json:"userID"`
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// AssignOperatingUnitsRequest replaces a user's operating unit assignments.
type AssignOperatingUnitsRequest struct {
	OperatingUnitIDs []string `json:"operatingUnitIDs" binding:"required"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID           string   `json:"userID"`
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	OperatingUnitIDs []string `json:"operatingUnitIDs"`
}

// ToUserResponse converts a domain.User to UserResponse DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:           u.UserID,
		Name:             u.Name,
		Email:            u.Email,
		OperatingUnitIDs: u.OperatingUnitIDs,
	}
}

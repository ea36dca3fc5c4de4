package dto

import (
	"github.com/centraldesk/treasury_transfer_app/internal/core/domain"
)

// CreateAccountRequest defines the payload for creating an account.
type CreateAccountRequest struct {
	Code string `json:"code" binding:"required,max=32"`
	Name string `json:"name" binding:"required,max=100"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID  string `json:"accountID"`
	CompanyID  string `json:"companyID"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	Deprecated bool   `json:"deprecated"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:  a.AccountID,
		CompanyID:  a.CompanyID,
		Code:       a.Code,
		Name:       a.Name,
		Deprecated: a.Deprecated,
	}
}

// ToAccountResponses converts a slice of domain.Account to []AccountResponse.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}

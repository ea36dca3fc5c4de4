package dto

import (
	"time"

	"github.com/centraldesk/treasury_transfer_app/internal/core/domain"
)

// CreateCompanyRequest defines the payload for creating a company.
type CreateCompanyRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// UpdateTreasuryConfigRequest sets the company's central journal and transit
// account. Either field may be omitted to leave it unchanged.
type UpdateTreasuryConfigRequest struct {
	CentralJournalID *string `json:"centralJournalID" binding:"omitempty,uuid"`
	TransitAccountID *string `json:"transitAccountID" binding:"omitempty,uuid"`
}

// AddUserToCompanyRequest defines the payload for adding a member to a company.
type AddUserToCompanyRequest struct {
	UserID string                 `json:"userID" binding:"required,uuid"`
	Role   domain.UserCompanyRole `json:"role" binding:"required,oneof=ADMIN MEMBER READONLY"`
}

// CompanyResponse defines the data returned for a company.
type CompanyResponse struct {
	CompanyID   string    `json:"companyID"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TreasuryConfigResponse defines the company's treasury configuration.
type TreasuryConfigResponse struct {
	CompanyID        string  `json:"companyID"`
	CentralJournalID *string `json:"centralJournalID"`
	TransitAccountID *string `json:"transitAccountID"`
}

// ToCompanyResponse converts a domain.Company to CompanyResponse DTO.
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID:   c.CompanyID,
		Name:        c.Name,
		Description: c.Description,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
	}
}

// ToCompanyResponses converts a slice of domain.Company to []CompanyResponse.
func ToCompanyResponses(companies []domain.Company) []CompanyResponse {
	responses := make([]CompanyResponse, len(companies))
	for i := range companies {
		responses[i] = ToCompanyResponse(&companies[i])
	}
	return responses
}

// ToTreasuryConfigResponse converts a domain.Company to its treasury config DTO.
func ToTreasuryConfigResponse(c *domain.Company) TreasuryConfigResponse {
	return TreasuryConfigResponse{
		CompanyID:        c.CompanyID,
		CentralJournalID: c.CentralJournalID,
		TransitAccountID: c.TransitAccountID,
	}
}

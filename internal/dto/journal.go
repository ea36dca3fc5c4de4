package dto

import (
	"github.com/centraldesk/treasury_transfer_app/internal/core/domain"
)

// CreateJournalRequest defines the payload for creating a journal.
type CreateJournalRequest struct {
	Name                   string             `json:"name" binding:"required,max=100"`
	Kind                   domain.JournalKind `json:"kind" binding:"required,oneof=CASH BANK GENERAL"`
	OperatingUnitID        *string            `json:"operatingUnitID"`
	DefaultAccountID       *string            `json:"defaultAccountID" binding:"omitempty,uuid"`
	PaymentDebitAccountID  *string            `json:"paymentDebitAccountID" binding:"omitempty,uuid"`
	PaymentCreditAccountID *string            `json:"paymentCreditAccountID" binding:"omitempty,uuid"`
}

// JournalResponse defines the data returned for a journal.
type JournalResponse struct {
	JournalID       string  `json:"journalID"`
	CompanyID       string  `json:"companyID"`
	Name            string  `json:"name"`
	Kind            string  `json:"kind"`
	OperatingUnitID *string `json:"operatingUnitID,omitempty"`
	MainAccountID   *string `json:"mainAccountID,omitempty"`
	IsActive        bool    `json:"isActive"`
}

// ToJournalResponse converts a domain.Journal to JournalResponse DTO.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	return JournalResponse{
		JournalID:       j.JournalID,
		CompanyID:       j.CompanyID,
		Name:            j.Name,
		Kind:            string(j.Kind),
		OperatingUnitID: j.OperatingUnitID,
		MainAccountID:   j.MainAccountID(),
		IsActive:        j.IsActive,
	}
}

// ToJournalResponses converts a slice of domain.Journal to []JournalResponse.
func ToJournalResponses(journals []domain.Journal) []JournalResponse {
	responses := make([]JournalResponse, len(journals))
	for i := range journals {
		responses[i] = ToJournalResponse(&journals[i])
	}
	return responses
}

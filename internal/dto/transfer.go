package dto

import (
	"time"

	"github.com/centraldesk/treasury_transfer_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpdateTransferRequest defines the mutable fields of a draft transfer.
// The source journal and system amount are assigned at creation and are not
// accepted here.
type UpdateTransferRequest struct {
	Date        *time.Time       `json:"date"`
	InputAmount *decimal.Decimal `json:"inputAmount"`
	Reason      *string          `json:"reason" binding:"omitempty,max=1000"`
}

// TransferResponse defines the data returned for a transfer request.
// Variance is derived on the way out; it is never stored.
type TransferResponse struct {
	TransferID      string          `json:"transferID"`
	CompanyID       string          `json:"companyID"`
	Date            time.Time       `json:"date"`
	SourceJournalID string          `json:"sourceJournalID"`
	SystemAmount    decimal.Decimal `json:"systemAmount"`
	InputAmount     decimal.Decimal `json:"inputAmount"`
	Variance        decimal.Decimal `json:"variance"`
	Reason          string          `json:"reason"`
	Status          string          `json:"status"`
	EntryID         *string         `json:"entryID,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	CreatedBy       string          `json:"createdBy"`
}

// ToTransferResponse converts a domain.TransferRequest to TransferResponse DTO.
func ToTransferResponse(t *domain.TransferRequest) TransferResponse {
	return TransferResponse{
		TransferID:      t.TransferID,
		CompanyID:       t.CompanyID,
		Date:            t.Date,
		SourceJournalID: t.SourceJournalID,
		SystemAmount:    t.SystemAmount,
		InputAmount:     t.InputAmount,
		Variance:        t.Variance(),
		Reason:          t.Reason,
		Status:          string(t.Status),
		EntryID:         t.EntryID,
		CreatedAt:       t.CreatedAt,
		CreatedBy:       t.CreatedBy,
	}
}

// ToTransferResponses converts a slice of domain.TransferRequest to []TransferResponse.
func ToTransferResponses(transfers []domain.TransferRequest) []TransferResponse {
	responses := make([]TransferResponse, len(transfers))
	for i := range transfers {
		responses[i] = ToTransferResponse(&transfers[i])
	}
	return responses
}

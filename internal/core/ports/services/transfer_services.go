package services

import (
	"context"

	"github.com/centraldesk/treasury_transfer_app/internal/core/domain"
	"github.com/centraldesk/treasury_transfer_app/internal/dto"
)

// TransferReaderSvc defines read operations for transfer requests
type TransferReaderSvc interface {
	// GetTransferByID retrieves a specific transfer request.
	GetTransferByID(ctx context.Context, companyID, transferID, userID string) (*domain.TransferRequest, error)

	// ListTransfers retrieves a company's transfer requests, newest first.
	ListTransfers(ctx context.Context, companyID string, limit, offset int, userID string) ([]domain.TransferRequest, error)
}

// TransferWriterSvc defines write operations for transfer requests
type TransferWriterSvc interface {
	// InitializeTransfer creates a draft transfer with its defaults computed
	// from current ledger state: source journal auto-selected for the acting
	// user's company and operating units, system amount set to the posted
	// balance of that journal's main account.
	InitializeTransfer(ctx context.Context, companyID string, userID string) (*domain.TransferRequest, error)

	// UpdateTransfer updates the mutable fields of a draft transfer.
	UpdateTransfer(ctx context.Context, companyID, transferID string, req dto.UpdateTransferRequest, userID string) (*domain.TransferRequest, error)

	// ValidateTransfer runs the precondition checks, creates and posts the
	// two-line entry on the central journal, and flips the transfer to
	// VALIDATED. Any failure leaves the transfer in DRAFT.
	ValidateTransfer(ctx context.Context, companyID, transferID string, userID string) (*domain.TransferRequest, error)
}

// TransferSvcFacade combines all transfer-related service interfaces
type TransferSvcFacade interface {
	TransferReaderSvc
	TransferWriterSvc
}

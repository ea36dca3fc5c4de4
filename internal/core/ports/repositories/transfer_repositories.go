package repositories

import (
	"context"

	"github.com/centraldesk/treasury_transfer_app/internal/core/domain"
)

// TransferReader defines read operations for transfer request data
type TransferReader interface {
	// FindTransferByID retrieves a specific transfer request.
	FindTransferByID(ctx context.Context, transferID string) (*domain.TransferRequest, error)

	// ListTransfersByCompany retrieves a company's transfer requests, newest
	// date first and id descending within a date.
	ListTransfersByCompany(ctx context.Context, companyID string, limit int, offset int) ([]domain.TransferRequest, error)
}

// TransferWriter defines write operations for transfer request data
type TransferWriter interface {
	// SaveTransfer persists a new transfer request.
	SaveTransfer(ctx context.Context, transfer domain.TransferRequest) error

	// UpdateTransfer updates a draft transfer's mutable fields and, on
	// validation, its status and entry link.
	UpdateTransfer(ctx context.Context, transfer domain.TransferRequest) error
}

// TransferRepositoryFacade combines all transfer-related repository interfaces
type TransferRepositoryFacade interface {
	TransferReader
	TransferWriter
}

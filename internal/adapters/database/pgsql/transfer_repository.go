package pgsql

import (
	"context"
	"errors"

	"github.com/centraldesk/treasury_transfer_app/internal/apperrors"
	"github.com/centraldesk/treasury_transfer_app/internal/core/domain"
	portsrepo "github.com/centraldesk/treasury_transfer_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransferRepository struct {
	BaseRepository
}

// newPgxTransferRepository creates a new repository for transfer request data.
func newPgxTransferRepository(pool *pgxpool.Pool) portsrepo.TransferRepositoryFacade {
	return &PgxTransferRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxTransferRepository implements portsrepo.TransferRepositoryFacade
var _ portsrepo.TransferRepositoryFacade = (*PgxTransferRepository)(nil)

// Variance is intentionally absent from the column list: it is derived and
// never persisted.
const fullTransferSelectQuery = `
SELECT
	t.transfer_id, t.company_id, t.date, t.source_journal_id,
	t.system_amount, t.input_amount, t.reason, t.status, t.entry_id,
	t.created_at, t.created_by, t.last_updated_at, t.last_updated_by
FROM transfer_requests t
`

func (r *PgxTransferRepository) getTransfers(ctx context.Context, filterQuery string, args ...any) ([]domain.TransferRequest, error) {
	query := fullTransferSelectQuery + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transfers", err)
	}
	defer rows.Close()
	transfers, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.TransferRequest])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.TransferRequest{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect transfer rows", err)
	}
	return transfers, nil
}

func (r *PgxTransferRepository) SaveTransfer(ctx context.Context, transfer domain.TransferRequest) error {
	query := `
		INSERT INTO transfer_requests (
			transfer_id, company_id, date, source_journal_id,
			system_amount, input_amount, reason, status, entry_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		transfer.TransferID,
		transfer.CompanyID,
		transfer.Date,
		transfer.SourceJournalID,
		transfer.SystemAmount,
		transfer.InputAmount,
		transfer.Reason,
		transfer.Status,
		transfer.EntryID,
		transfer.CreatedAt,
		transfer.CreatedBy,
		transfer.LastUpdatedAt,
		transfer.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.NewConflictError("transfer ID " + transfer.TransferID + " already exists")
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationFailedError("referenced company or journal does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to save transfer "+transfer.TransferID, err)
	}
	return nil
}

// UpdateTransfer writes the mutable fields plus status and entry link. The
// source journal and system amount are fixed at creation and never updated.
func (r *PgxTransferRepository) UpdateTransfer(ctx context.Context, transfer domain.TransferRequest) error {
	query := `
		UPDATE transfer_requests
		SET date = $2, input_amount = $3, reason = $4, status = $5, entry_id = $6,
			last_updated_at = $7, last_updated_by = $8
		WHERE transfer_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		transfer.TransferID,
		transfer.Date,
		transfer.InputAmount,
		transfer.Reason,
		transfer.Status,
		transfer.EntryID,
		transfer.LastUpdatedAt,
		transfer.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update transfer "+transfer.TransferID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTransferRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.TransferRequest, error) {
	transfers, err := r.getTransfers(ctx, `WHERE t.transfer_id = $1`, transferID)
	if err != nil {
		return nil, err
	}
	if len(transfers) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &transfers[0], nil
}

// ListTransfersByCompany orders newest date first, id descending within a
// date, matching how treasury reviews the day's transfers.
func (r *PgxTransferRepository) ListTransfersByCompany(ctx context.Context, companyID string, limit int, offset int) ([]domain.TransferRequest, error) {
	filter := `
		WHERE t.company_id = $1
		ORDER BY t.date DESC, t.transfer_id DESC
		LIMIT $2 OFFSET $3
	`
	return r.getTransfers(ctx, filter, companyID, limit, offset)
}

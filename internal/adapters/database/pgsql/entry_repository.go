package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/centraldesk/treasury_transfer_app/internal/apperrors"
	"github.com/centraldesk/treasury_transfer_app/internal/core/domain"
	portsrepo "github.com/centraldesk/treasury_transfer_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxEntryRepository struct {
	BaseRepository
}

// newPgxEntryRepository creates a new repository for ledger entry data.
func newPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryFacade {
	return &PgxEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxEntryRepository implements portsrepo.EntryRepositoryFacade
var _ portsrepo.EntryRepositoryFacade = (*PgxEntryRepository)(nil)

// SaveEntry inserts the entry and its lines within one DB transaction, so a
// partially written entry can never survive.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.Entry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // no-op once committed

	entryQuery := `
		INSERT INTO entries (
			entry_id, company_id, journal_id, entry_date, reference, status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, entryQuery,
		entry.EntryID,
		entry.CompanyID,
		entry.JournalID,
		entry.EntryDate,
		entry.Reference,
		entry.Status,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewConflictError("entry ID " + entry.EntryID + " already exists")
		}
		return apperrors.NewAppError(500, "failed to insert entry "+entry.EntryID, err)
	}

	lineQuery := `
		INSERT INTO entry_lines (line_id, entry_id, company_id, account_id, label, debit, credit)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, line := range entry.Lines {
		_, err = tx.Exec(ctx, lineQuery,
			line.LineID,
			line.EntryID,
			line.CompanyID,
			line.AccountID,
			line.Label,
			line.Debit,
			line.Credit,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationFailedError("entry line references an unknown account")
			}
			return apperrors.NewAppError(500, "failed to insert entry line "+line.LineID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// MarkEntryPosted flips a DRAFT entry to POSTED. The status guard in the
// WHERE clause keeps posting idempotent-safe under concurrent callers.
func (r *PgxEntryRepository) MarkEntryPosted(ctx context.Context, entryID string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE entries
		SET status = $2, last_updated_by = $3, last_updated_at = $4
		WHERE entry_id = $1 AND status = $5;
	`
	tag, err := r.Pool.Exec(ctx, query, entryID, domain.EntryPosted, updatedBy, updatedAt, domain.EntryDraft)
	if err != nil {
		return apperrors.NewAppError(500, "failed to post entry "+entryID, err)
	}
	if tag.RowsAffected() == 0 {
		// Either the entry doesn't exist or it isn't a draft anymore.
		var status string
		err := r.Pool.QueryRow(ctx, `SELECT status FROM entries WHERE entry_id = $1`, entryID).Scan(&status)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		if err != nil {
			return apperrors.NewAppError(500, "failed to check entry status", err)
		}
		return apperrors.NewValidationFailedError("entry " + entryID + " is not in draft")
	}
	return nil
}

func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	entryQuery := `
		SELECT
			e.entry_id, e.company_id, e.journal_id, e.entry_date, e.reference, e.status,
			e.created_at, e.created_by, e.last_updated_at, e.last_updated_by
		FROM entries e
		WHERE e.entry_id = $1
	`
	rows, err := r.Pool.Query(ctx, entryQuery, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entry", err)
	}
	entry, err := pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[domain.Entry])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to collect entry row", err)
	}

	lineQuery := `
		SELECT l.line_id, l.entry_id, l.company_id, l.account_id, l.label, l.debit, l.credit
		FROM entry_lines l
		WHERE l.entry_id = $1
		ORDER BY l.line_id
	`
	lineRows, err := r.Pool.Query(ctx, lineQuery, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entry lines", err)
	}
	defer lineRows.Close()
	lines, err := pgx.CollectRows(lineRows, pgx.RowToStructByName[domain.EntryLine])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect entry line rows", err)
	}
	entry.Lines = lines

	return &entry, nil
}

// SumPostedBalance aggregates debit minus credit over posted lines only.
// Draft entries are deliberately excluded so the figure reflects committed
// ledger state.
func (r *PgxEntryRepository) SumPostedBalance(ctx context.Context, accountID, companyID string, asOf time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(l.debit - l.credit), 0)
		FROM entry_lines l
		JOIN entries e ON e.entry_id = l.entry_id
		WHERE l.account_id = $1
		  AND l.company_id = $2
		  AND e.status = $3
		  AND e.entry_date <= $4;
	`
	var balance decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, accountID, companyID, domain.EntryPosted, asOf).Scan(&balance)
	if err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum posted balance for account "+accountID, err)
	}
	return balance, nil
}

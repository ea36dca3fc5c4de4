package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/centraldesk/treasury_transfer_app/internal/apperrors"
	"github.com/centraldesk/treasury_transfer_app/internal/core/domain"
	portsrepo "github.com/centraldesk/treasury_transfer_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const fullJournalSelectQuery = `
SELECT
	j.journal_id, j.company_id, j.name, j.kind, j.operating_unit_id,
	j.default_account_id, j.payment_debit_account_id, j.payment_credit_account_id, j.is_active,
	j.created_at, j.created_by, j.last_updated_at, j.last_updated_by
FROM journals j
`

func (r *PgxJournalRepository) getJournals(ctx context.Context, filterQuery string, args ...any) ([]domain.Journal, error) {
	query := fullJournalSelectQuery + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journals", err)
	}
	defer rows.Close()
	journals, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Journal])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Journal{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect journal rows", err)
	}
	return journals, nil
}

func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal) error {
	query := `
		INSERT INTO journals (
			journal_id, company_id, name, kind, operating_unit_id,
			default_account_id, payment_debit_account_id, payment_credit_account_id, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		journal.JournalID,
		journal.CompanyID,
		journal.Name,
		journal.Kind,
		journal.OperatingUnitID,
		journal.DefaultAccountID,
		journal.PaymentDebitAccountID,
		journal.PaymentCreditAccountID,
		journal.IsActive,
		journal.CreatedAt,
		journal.CreatedBy,
		journal.LastUpdatedAt,
		journal.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.NewConflictError("journal ID " + journal.JournalID + " already exists")
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationFailedError("referenced company or account does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to save journal "+journal.JournalID, err)
	}
	return nil
}

func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	journals, err := r.getJournals(ctx, `WHERE j.journal_id = $1`, journalID)
	if err != nil {
		return nil, err
	}
	if len(journals) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &journals[0], nil
}

// FindJournals applies the filter and orders by journal id ascending so that
// callers picking "the first" candidate get a stable result.
func (r *PgxJournalRepository) FindJournals(ctx context.Context, filter portsrepo.JournalFilter) ([]domain.Journal, error) {
	conditions := []string{"j.is_active"}
	args := []any{}

	if filter.CompanyID != "" {
		args = append(args, filter.CompanyID)
		conditions = append(conditions, fmt.Sprintf("j.company_id = $%d", len(args)))
	}
	if len(filter.Kinds) > 0 {
		kinds := make([]string, len(filter.Kinds))
		for i, kind := range filter.Kinds {
			kinds[i] = string(kind)
		}
		args = append(args, kinds)
		conditions = append(conditions, fmt.Sprintf("j.kind = ANY($%d)", len(args)))
	}
	if len(filter.OperatingUnitIDs) > 0 {
		args = append(args, filter.OperatingUnitIDs)
		conditions = append(conditions, fmt.Sprintf("j.operating_unit_id = ANY($%d)", len(args)))
	}
	if len(filter.JournalIDs) > 0 {
		args = append(args, filter.JournalIDs)
		conditions = append(conditions, fmt.Sprintf("j.journal_id = ANY($%d)", len(args)))
	}

	filterQuery := "WHERE " + strings.Join(conditions, " AND ") + " ORDER BY j.journal_id"
	return r.getJournals(ctx, filterQuery, args...)
}

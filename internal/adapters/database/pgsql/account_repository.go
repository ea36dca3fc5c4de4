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

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const fullAccountSelectQuery = `
SELECT
	a.account_id, a.company_id, a.code, a.name, a.deprecated,
	a.created_at, a.created_by, a.last_updated_at, a.last_updated_by
FROM accounts a
`

func (r *PgxAccountRepository) getAccounts(ctx context.Context, filterQuery string, args ...any) ([]domain.Account, error) {
	query := fullAccountSelectQuery + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts", err)
	}
	defer rows.Close()
	accounts, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Account])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Account{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect account rows", err)
	}
	return accounts, nil
}

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (
			account_id, company_id, code, name, deprecated,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.CompanyID,
		account.Code,
		account.Name,
		account.Deprecated,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation (id or company+code)
				return apperrors.NewConflictError("account code " + account.Code + " already exists in company")
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationFailedError("referenced company does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to save account "+account.AccountID, err)
	}
	return nil
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	accounts, err := r.getAccounts(ctx, `WHERE a.account_id = $1`, accountID)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &accounts[0], nil
}

func (r *PgxAccountRepository) ListAccountsByCompany(ctx context.Context, companyID string) ([]domain.Account, error) {
	return r.getAccounts(ctx, `WHERE a.company_id = $1 ORDER BY a.code`, companyID)
}

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
)

type PgxCompanyRepository struct {
	BaseRepository
}

// newPgxCompanyRepository creates a new repository for company data.
func newPgxCompanyRepository(pool *pgxpool.Pool) portsrepo.CompanyRepositoryFacade {
	return &PgxCompanyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxCompanyRepository implements portsrepo.CompanyRepositoryFacade
var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

const fullCompanySelectQuery = `
SELECT
	c.company_id, c.name, c.description, c.central_journal_id, c.transit_account_id, c.is_active,
	c.created_at, c.created_by, c.last_updated_at, c.last_updated_by
FROM companies c
`

func (r *PgxCompanyRepository) getCompanies(ctx context.Context, filterQuery string, args ...any) ([]domain.Company, error) {
	query := fullCompanySelectQuery + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query companies", err)
	}
	defer rows.Close()
	companies, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[domain.Company])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Company{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect company rows", err)
	}
	return companies, nil
}

func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	query := `
		INSERT INTO companies (
			company_id, name, description, central_journal_id, transit_account_id, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		company.CompanyID,
		company.Name,
		company.Description,
		company.CentralJournalID,
		company.TransitAccountID,
		company.IsActive,
		company.CreatedAt,
		company.CreatedBy,
		company.LastUpdatedAt,
		company.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewConflictError("company ID " + company.CompanyID + " already exists")
		}
		return apperrors.NewAppError(500, "failed to save company "+company.CompanyID, err)
	}
	return nil
}

func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	companies, err := r.getCompanies(ctx, `WHERE c.company_id = $1`, companyID)
	if err != nil {
		return nil, err
	}
	if len(companies) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &companies[0], nil
}

func (r *PgxCompanyRepository) ListCompaniesByUser(ctx context.Context, userID string) ([]domain.Company, error) {
	filter := `
		JOIN user_companies uc ON uc.company_id = c.company_id
		WHERE uc.user_id = $1 AND uc.role <> 'REMOVED'
		ORDER BY c.name
	`
	return r.getCompanies(ctx, filter, userID)
}

func (r *PgxCompanyRepository) FindUserCompanyRole(ctx context.Context, userID, companyID string) (*domain.UserCompany, error) {
	query := `
		SELECT uc.user_id, u.name AS user_name, uc.company_id, uc.role, uc.joined_at
		FROM user_companies uc
		JOIN users u ON u.user_id = uc.user_id
		WHERE uc.user_id = $1 AND uc.company_id = $2
	`
	rows, err := r.Pool.Query(ctx, query, userID, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query membership", err)
	}
	defer rows.Close()
	membership, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[domain.UserCompany])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to collect membership row", err)
	}
	return &membership, nil
}

func (r *PgxCompanyRepository) UpdateTreasuryConfig(ctx context.Context, companyID string, centralJournalID, transitAccountID *string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE companies
		SET central_journal_id = $2, transit_account_id = $3, last_updated_by = $4, last_updated_at = $5
		WHERE company_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, companyID, centralJournalID, transitAccountID, updatedBy, updatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update treasury config for company "+companyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCompanyRepository) AddUserToCompany(ctx context.Context, membership domain.UserCompany) error {
	query := `
		INSERT INTO user_companies (user_id, company_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, company_id) DO UPDATE SET role = EXCLUDED.role;
	`
	_, err := r.Pool.Exec(ctx, query,
		membership.UserID,
		membership.CompanyID,
		membership.Role,
		membership.JoinedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return apperrors.NewValidationFailedError("user or company does not exist")
		}
		return apperrors.NewAppError(500, "failed to add user to company", err)
	}
	return nil
}

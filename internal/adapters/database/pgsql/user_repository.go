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

type PgxUserRepository struct {
	BaseRepository
}

// newPgxUserRepository creates a new repository for user data.
func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const fullUserSelectQuery = `
SELECT
	u.user_id, u.name, u.email, u.password_hash, u.is_active,
	u.created_at, u.created_by, u.last_updated_at, u.last_updated_by
FROM users u
`

func (r *PgxUserRepository) getUser(ctx context.Context, filterQuery string, args ...any) (*domain.User, error) {
	query := fullUserSelectQuery + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query users", err)
	}
	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[domain.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to collect user row", err)
	}

	units, err := r.findOperatingUnits(ctx, user.UserID)
	if err != nil {
		return nil, err
	}
	user.OperatingUnitIDs = units

	return &user, nil
}

func (r *PgxUserRepository) findOperatingUnits(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT operating_unit_id FROM user_operating_units
		WHERE user_id = $1
		ORDER BY operating_unit_id
	`, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query operating units", err)
	}
	defer rows.Close()
	units, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect operating unit rows", err)
	}
	return units, nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	query := `
		INSERT INTO users (
			user_id, name, email, password_hash, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		user.UserID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.IsActive,
		user.CreatedAt,
		user.CreatedBy,
		user.LastUpdatedAt,
		user.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation (email)
			return apperrors.NewConflictError("email " + user.Email + " is already registered")
		}
		return apperrors.NewAppError(500, "failed to save user "+user.UserID, err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.getUser(ctx, `WHERE u.user_id = $1`, userID)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getUser(ctx, `WHERE u.email = $1`, email)
}

// AssignOperatingUnits replaces the user's assignments in one DB transaction.
func (r *PgxUserRepository) AssignOperatingUnits(ctx context.Context, userID string, operatingUnitIDs []string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM user_operating_units WHERE user_id = $1`, userID); err != nil {
		return apperrors.NewAppError(500, "failed to clear operating units", err)
	}
	for _, unitID := range operatingUnitIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO user_operating_units (user_id, operating_unit_id)
			VALUES ($1, $2)
		`, userID, unitID); err != nil {
			return apperrors.NewAppError(500, "failed to assign operating unit "+unitID, err)
		}
	}

	return r.Commit(ctx, tx)
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/asifrahman/go-identity-api/internal/logger"
	"github.com/asifrahman/go-identity-api/models"
)

// roleRepository is the PostgreSQL-backed implementation of [RoleRepository].
// Roles are reference data written only by migrations; the single write here
// is the user_roles join row created during registration.
type roleRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewRoleRepository constructs a [RoleRepository] backed by the provided
// database connection and logger.
func NewRoleRepository(db *DB, logger *logger.Logger) RoleRepository {
	logger.Debug().Msg("creating role repository")
	return &roleRepository{
		db:     db,
		logger: logger,
	}
}

func (r *roleRepository) FindByName(ctx context.Context, name string) (models.Role, error) {
	log := logger.FromContext(ctx)

	var role models.Role
	var description sql.NullString

	err := r.db.QueryRowContext(ctx, findRoleByName, name).
		Scan(&role.ID, &role.Name, &description, &role.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Role{}, ErrRoleNotFound
		}
		log.Err(err).Str("func", "*roleRepository.FindByName").Msg("error finding role by name")
		return models.Role{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	role.Description = description.String
	return role, nil
}

func (r *roleRepository) FindRolesByUserID(ctx context.Context, userID string) ([]models.Role, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, findRolesByUserID, userID)
	if err != nil {
		log.Err(err).Str("func", "*roleRepository.FindRolesByUserID").Msg("error querying roles by user id")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var roles []models.Role
	for rows.Next() {
		var role models.Role
		var description sql.NullString
		if err := rows.Scan(&role.ID, &role.Name, &description, &role.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		role.Description = description.String
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return roles, nil
}

// MapRoleToUserTx writes the user_roles join row inside the caller's
// transaction. Must share the transaction with the user INSERT: a user row
// without a role mapping is an invariant violation.
func (r *roleRepository) MapRoleToUserTx(ctx context.Context, tx *sql.Tx, roleID, userID string) error {
	log := logger.FromContext(ctx)

	if _, err := tx.ExecContext(ctx, mapRoleToUser, userID, roleID); err != nil {
		log.Err(err).Str("func", "*roleRepository.MapRoleToUserTx").Msg("error mapping role to user")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/asifrahman/go-identity-api/internal/logger"
	"github.com/asifrahman/go-identity-api/models"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

func (r *userRepository) FindByID(ctx context.Context, id string, includePassword bool) (models.User, error) {
	query, args, err := userByIDQuery(id, includePassword)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.findOne(ctx, query, args, includePassword)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string, includePassword bool) (models.User, error) {
	query, args, err := userByEmailQuery(email, includePassword)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.findOne(ctx, query, args, includePassword)
}

func (r *userRepository) FindByEmailOrUsername(ctx context.Context, emailOrUsername string, includePassword bool) (models.User, error) {
	query, args, err := userByEmailOrUsernameQuery(emailOrUsername, includePassword)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.findOne(ctx, query, args, includePassword)
}

// findOne runs a single-user query, scans the row, and attaches the user's
// roles. [ErrUserNotFound] when no row matched.
func (r *userRepository) findOne(ctx context.Context, query string, args []any, includePassword bool) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, query, args...)

	user, err := scanUser(row, includePassword)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", "*userRepository.findOne").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	roles, err := r.loadRoles(ctx, user.ID)
	if err != nil {
		return models.User{}, err
	}
	user.Roles = roles

	return user, nil
}

func (r *userRepository) CheckUsernameAvailability(ctx context.Context, username string) (bool, error) {
	log := logger.FromContext(ctx)

	var count int
	if err := r.db.QueryRowContext(ctx, countUsersByUsername, username).Scan(&count); err != nil {
		log.Err(err).Str("func", "*userRepository.CheckUsernameAvailability").Msg("error counting users by username")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count == 0, nil
}

// CreateTx inserts a user row inside the caller's transaction and returns
// the record populated with server-assigned fields (ID, CreatedAt).
//
// Error handling:
//   - PostgreSQL unique_violation (23505) on the email constraint →
//     [ErrEmailAlreadyExists]; on the username constraint →
//     [ErrUsernameAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateTx(ctx context.Context, tx *sql.Tx, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	row := tx.QueryRowContext(ctx, createUser,
		user.ID,
		nullIfEmpty(user.Email),
		nullIfEmpty(user.Username),
		nullIfEmpty(user.PasswordHash),
		nullIfEmpty(user.FirstName),
		nullIfEmpty(user.LastName),
		nullIfEmpty(user.DisplayName),
		nullIfEmpty(user.PhoneNumber),
		nullIfEmpty(user.ProfileImageURL),
		user.Provider,
		nullIfEmpty(user.ProviderID),
		nullIfEmpty(user.Timezone),
		nullIfEmpty(user.Locale),
		nullIfEmpty(user.Bio),
		user.DOB,
		nullIfEmpty(user.Gender),
		nullIfEmpty(user.Tagline),
		nullIfEmpty(user.Website),
		nullIfEmpty(user.CountryCodeISO3),
	)

	if err := row.Scan(&user.ID, &user.CreatedAt); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateTx").Msg("error creating user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			if strings.Contains(constraintName(err), "email") {
				return models.User{}, ErrEmailAlreadyExists
			}
			return models.User{}, ErrUsernameAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	user.IsActive = true
	return user, nil
}

func (r *userRepository) UpdatePasswordTx(ctx context.Context, tx *sql.Tx, id, passwordHash string) error {
	log := logger.FromContext(ctx)

	result, err := tx.ExecContext(ctx, updateUserPassword, id, passwordHash)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdatePasswordTx").Msg("error updating password")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// loadRoles fetches the user's role set via the user_roles join.
func (r *userRepository) loadRoles(ctx context.Context, userID string) ([]models.Role, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, findRolesByUserID, userID)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.loadRoles").Msg("error querying user roles")
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

// rowScanner abstracts *sql.Row for scanning helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser scans a row produced by buildUserSelectQuery. The destination
// list must mirror the builder's column order; password_hash is the final
// column and only present when includePassword was set.
func scanUser(row rowScanner, includePassword bool) (models.User, error) {
	var u models.User
	var (
		email, username, firstName, lastName, displayName        sql.NullString
		phoneNumber, profileImageURL, providerID                 sql.NullString
		timezone, locale, bio, gender, tagline, website, country sql.NullString
		dob, updatedAt                                           sql.NullTime
		passwordHash                                             sql.NullString
	)

	dest := []any{
		&u.ID,
		&email,
		&username,
		&firstName,
		&lastName,
		&displayName,
		&phoneNumber,
		&profileImageURL,
		&u.Provider,
		&providerID,
		&u.IsEmailVerified,
		&u.IsPhoneVerified,
		&u.IsActive,
		&timezone,
		&locale,
		&bio,
		&dob,
		&gender,
		&tagline,
		&website,
		&country,
		&u.CreatedAt,
		&updatedAt,
	}
	if includePassword {
		dest = append(dest, &passwordHash)
	}

	if err := row.Scan(dest...); err != nil {
		return models.User{}, err
	}

	u.Email = email.String
	u.Username = username.String
	u.FirstName = firstName.String
	u.LastName = lastName.String
	u.DisplayName = displayName.String
	u.PhoneNumber = phoneNumber.String
	u.ProfileImageURL = profileImageURL.String
	u.ProviderID = providerID.String
	u.Timezone = timezone.String
	u.Locale = locale.String
	u.Bio = bio.String
	u.Gender = gender.String
	u.Tagline = tagline.String
	u.Website = website.String
	u.CountryCodeISO3 = country.String
	u.PasswordHash = passwordHash.String
	if dob.Valid {
		u.DOB = &dob.Time
	}
	if updatedAt.Valid {
		u.UpdatedAt = &updatedAt.Time
	}

	return u, nil
}

// nullIfEmpty converts an empty string to a SQL NULL so that unique and FK
// columns are not polluted with empty-string values.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/asifrahman/go-identity-api/internal/config"
	"github.com/asifrahman/go-identity-api/internal/logger"
	"github.com/asifrahman/go-identity-api/models"
)

// UserRepository is the persistence port for user records. Lookup methods
// take includePassword as a privacy gate: the password hash is withheld from
// the returned record unless explicitly requested (only the login and
// password-change paths ask for it). Lookups return [ErrUserNotFound] when no
// row matches.
type UserRepository interface {
	FindByID(ctx context.Context, id string, includePassword bool) (models.User, error)
	FindByEmail(ctx context.Context, email string, includePassword bool) (models.User, error)
	FindByEmailOrUsername(ctx context.Context, emailOrUsername string, includePassword bool) (models.User, error)

	// CheckUsernameAvailability reports whether no user holds the username.
	CheckUsernameAvailability(ctx context.Context, username string) (bool, error)

	// CreateTx inserts a user inside an open transaction. It must share the
	// transaction with the role mapping write (see RoleRepository.MapRoleToUserTx).
	// Unique violations surface as ErrEmailAlreadyExists / ErrUsernameAlreadyExists.
	CreateTx(ctx context.Context, tx *sql.Tx, user models.User) (models.User, error)

	// UpdatePasswordTx overwrites the stored hash inside an open transaction
	// shared with the history append write.
	UpdatePasswordTx(ctx context.Context, tx *sql.Tx, id, passwordHash string) error
}

// RoleRepository is the persistence port for role reference data.
type RoleRepository interface {
	FindByName(ctx context.Context, name string) (models.Role, error)
	FindRolesByUserID(ctx context.Context, userID string) ([]models.Role, error)

	// MapRoleToUserTx writes the user_roles join row inside the transaction
	// opened for user creation.
	MapRoleToUserTx(ctx context.Context, tx *sql.Tx, roleID, userID string) error
}

// SessionRepository is the persistence port for server-side sessions.
type SessionRepository interface {
	// GetLiveSession returns the session for (userID, token) only when it is
	// active and unexpired; ErrSessionNotFound otherwise.
	GetLiveSession(ctx context.Context, userID, token string) (models.Session, error)

	Create(ctx context.Context, userID, token, ip, userAgent string, expiresAt time.Time) (models.Session, error)

	// Delete removes the session row; ErrSessionNotFound when none matched.
	Delete(ctx context.Context, userID, token string) error
}

// PasswordHistoryRepository is the persistence port for past password hashes.
type PasswordHistoryRepository interface {
	// RecentHashes returns up to limit hashes, most recent first. The cap is
	// a read-side window: older rows stay in storage.
	RecentHashes(ctx context.Context, userID string, limit int) ([]string, error)

	// AppendTx inserts a history row inside the transaction opened for the
	// password update.
	AppendTx(ctx context.Context, tx *sql.Tx, userID, passwordHash string) error
}

// UserTokenRepository is the persistence port for single-use tokens
// (email verification, password reset).
type UserTokenRepository interface {
	// GetValid returns the token row only when it matches (userID, token,
	// type), is unused, and is unexpired; ErrUserTokenNotFound otherwise.
	GetValid(ctx context.Context, userID, token string, tokenType models.UserTokenType) (models.UserToken, error)

	Create(ctx context.Context, userToken models.UserToken) (models.UserToken, error)

	// MarkUsed stamps is_used and used_at on an unused token;
	// ErrUserTokenNotFound when no unused row matched.
	MarkUsed(ctx context.Context, userID, token string, usedAt time.Time) (models.UserToken, error)
}

// CountryRepository is the read-only persistence port for country reference
// data.
type CountryRepository interface {
	FindAll(ctx context.Context) ([]models.Country, error)
	FindByCode(ctx context.Context, code string) (models.Country, error)
	FindByCodeISO3(ctx context.Context, codeISO3 string) (models.Country, error)
}

// Storages bundles all repositories plus the shared DB handle (needed by the
// service layer to scope the two multi-write transactions).
type Storages struct {
	DB              *DB
	Users           UserRepository
	Roles           RoleRepository
	Sessions        SessionRepository
	PasswordHistory PasswordHistoryRepository
	UserTokens      UserTokenRepository
	Countries       CountryRepository
}

// NewStorages connects to PostgreSQL, runs migrations, and constructs every
// repository over the shared connection.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("error running migrations: %w", err)
	}

	return &Storages{
		DB:              db,
		Users:           NewUserRepository(db, log),
		Roles:           NewRoleRepository(db, log),
		Sessions:        NewSessionRepository(db, log),
		PasswordHistory: NewPasswordHistoryRepository(db, log),
		UserTokens:      NewUserTokenRepository(db, log),
		Countries:       NewCountryRepository(db, log),
	}, nil
}

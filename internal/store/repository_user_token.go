package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/asifrahman/go-identity-api/internal/logger"
	"github.com/asifrahman/go-identity-api/models"
	"github.com/google/uuid"
)

// userTokenRepository is the PostgreSQL-backed implementation of
// [UserTokenRepository], holding single-use tokens for verification and
// reset flows.
type userTokenRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserTokenRepository constructs a [UserTokenRepository] backed by the
// provided database connection and logger.
func NewUserTokenRepository(db *DB, logger *logger.Logger) UserTokenRepository {
	logger.Debug().Msg("creating user token repository")
	return &userTokenRepository{
		db:     db,
		logger: logger,
	}
}

func (r *userTokenRepository) GetValid(ctx context.Context, userID, token string, tokenType models.UserTokenType) (models.UserToken, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, getValidUserToken, userID, token, string(tokenType))

	userToken, err := scanUserToken(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.UserToken{}, ErrUserTokenNotFound
		}
		log.Err(err).Str("func", "*userTokenRepository.GetValid").Msg("error scanning user token")
		return models.UserToken{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return userToken, nil
}

func (r *userTokenRepository) Create(ctx context.Context, userToken models.UserToken) (models.UserToken, error) {
	log := logger.FromContext(ctx)

	if userToken.ID == "" {
		userToken.ID = uuid.NewString()
	}

	row := r.db.QueryRowContext(ctx, createUserToken,
		userToken.ID,
		userToken.UserID,
		userToken.Token,
		string(userToken.Type),
		nullIfEmpty(userToken.IPAddress),
		nullIfEmpty(userToken.UserAgent),
		userToken.ExpiresAt,
	)

	created, err := scanUserToken(row)
	if err != nil {
		log.Err(err).Str("func", "*userTokenRepository.Create").Msg("error creating user token")
		return models.UserToken{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return created, nil
}

// MarkUsed consumes an unused token. A token already marked used never
// matches the WHERE clause again, so consumption is one-shot by construction.
func (r *userTokenRepository) MarkUsed(ctx context.Context, userID, token string, usedAt time.Time) (models.UserToken, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, markUserTokenUsed, userID, token, usedAt)

	updated, err := scanUserToken(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.UserToken{}, ErrUserTokenNotFound
		}
		log.Err(err).Str("func", "*userTokenRepository.MarkUsed").Msg("error marking user token used")
		return models.UserToken{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return updated, nil
}

func scanUserToken(row rowScanner) (models.UserToken, error) {
	var t models.UserToken
	var tokenType string
	var usedAt sql.NullTime
	var ip, userAgent sql.NullString

	err := row.Scan(&t.ID, &t.UserID, &t.Token, &tokenType, &t.IsUsed, &usedAt, &ip, &userAgent, &t.CreatedAt, &t.ExpiresAt)
	if err != nil {
		return models.UserToken{}, err
	}

	t.Type = models.UserTokenType(tokenType)
	t.IPAddress = ip.String
	t.UserAgent = userAgent.String
	if usedAt.Valid {
		t.UsedAt = &usedAt.Time
	}

	return t, nil
}

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

// sessionRepository is the PostgreSQL-backed implementation of
// [SessionRepository]. One row per issued token; deleting the row is the
// only revocation mechanism.
type sessionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSessionRepository constructs a [SessionRepository] backed by the
// provided database connection and logger.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

// GetLiveSession returns the (userID, token) session only when it is active
// and unexpired; the liveness filter lives in the query so a stale row can
// never pass the access guard.
func (r *sessionRepository) GetLiveSession(ctx context.Context, userID, token string) (models.Session, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, getLiveSession, userID, token)

	session, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrSessionNotFound
		}
		log.Err(err).Str("func", "*sessionRepository.GetLiveSession").Msg("error scanning session")
		return models.Session{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return session, nil
}

func (r *sessionRepository) Create(ctx context.Context, userID, token, ip, userAgent string, expiresAt time.Time) (models.Session, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createSession,
		uuid.NewString(), userID, token, nullIfEmpty(ip), nullIfEmpty(userAgent), expiresAt)

	session, err := scanSession(row)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.Create").Msg("error creating session")
		return models.Session{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return session, nil
}

// Delete removes the session row for (userID, token). Returns
// [ErrSessionNotFound] when no row matched; the caller decides whether that
// matters (logout treats it as already done).
func (r *sessionRepository) Delete(ctx context.Context, userID, token string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteSession, userID, token)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.Delete").Msg("error deleting session")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

func scanSession(row rowScanner) (models.Session, error) {
	var s models.Session
	var ip, userAgent sql.NullString
	var lastUsedAt sql.NullTime

	err := row.Scan(&s.ID, &s.UserID, &s.Token, &ip, &userAgent, &s.ExpiresAt, &s.IsActive, &s.CreatedAt, &lastUsedAt)
	if err != nil {
		return models.Session{}, err
	}

	s.IPAddress = ip.String
	s.UserAgent = userAgent.String
	if lastUsedAt.Valid {
		s.LastUsedAt = &lastUsedAt.Time
	}

	return s, nil
}

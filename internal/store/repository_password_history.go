package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/asifrahman/go-identity-api/internal/logger"
	"github.com/google/uuid"
)

// passwordHistoryRepository is the PostgreSQL-backed implementation of
// [PasswordHistoryRepository]. Rows are append-only; the retention window is
// applied by the read query (ORDER BY + LIMIT), not by deletion.
type passwordHistoryRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewPasswordHistoryRepository constructs a [PasswordHistoryRepository]
// backed by the provided database connection and logger.
func NewPasswordHistoryRepository(db *DB, logger *logger.Logger) PasswordHistoryRepository {
	logger.Debug().Msg("creating password history repository")
	return &passwordHistoryRepository{
		db:     db,
		logger: logger,
	}
}

func (r *passwordHistoryRepository) RecentHashes(ctx context.Context, userID string, limit int) ([]string, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, recentPasswordHashes, userID, limit)
	if err != nil {
		log.Err(err).Str("func", "*passwordHistoryRepository.RecentHashes").Msg("error querying password history")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var hashes []string
	for rows.Next() {
		var hash string
		if err := rows.Scan(&hash); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		hashes = append(hashes, hash)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return hashes, nil
}

func (r *passwordHistoryRepository) AppendTx(ctx context.Context, tx *sql.Tx, userID, passwordHash string) error {
	log := logger.FromContext(ctx)

	if _, err := tx.ExecContext(ctx, appendPasswordHistory, uuid.NewString(), userID, passwordHash); err != nil {
		log.Err(err).Str("func", "*passwordHistoryRepository.AppendTx").Msg("error appending password history")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

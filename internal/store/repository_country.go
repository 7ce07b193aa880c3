package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/asifrahman/go-identity-api/internal/logger"
	"github.com/asifrahman/go-identity-api/models"
)

// countryRepository is the read-only PostgreSQL-backed implementation of
// [CountryRepository]. Country rows are written only by the seed migration.
type countryRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewCountryRepository constructs a [CountryRepository] backed by the
// provided database connection and logger.
func NewCountryRepository(db *DB, logger *logger.Logger) CountryRepository {
	logger.Debug().Msg("creating country repository")
	return &countryRepository{
		db:     db,
		logger: logger,
	}
}

func (r *countryRepository) FindAll(ctx context.Context) ([]models.Country, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, findAllCountries)
	if err != nil {
		log.Err(err).Str("func", "*countryRepository.FindAll").Msg("error querying countries")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var countries []models.Country
	for rows.Next() {
		country, err := scanCountry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		countries = append(countries, country)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return countries, nil
}

func (r *countryRepository) FindByCode(ctx context.Context, code string) (models.Country, error) {
	return r.findOne(ctx, findCountryByCode, code)
}

func (r *countryRepository) FindByCodeISO3(ctx context.Context, codeISO3 string) (models.Country, error) {
	return r.findOne(ctx, findCountryByCodeISO3, codeISO3)
}

func (r *countryRepository) findOne(ctx context.Context, query, arg string) (models.Country, error) {
	log := logger.FromContext(ctx)

	country, err := scanCountry(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Country{}, ErrCountryNotFound
		}
		log.Err(err).Str("func", "*countryRepository.findOne").Msg("error scanning country")
		return models.Country{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return country, nil
}

func scanCountry(row rowScanner) (models.Country, error) {
	var c models.Country
	var updatedAt sql.NullTime

	if err := row.Scan(&c.Name, &c.Code, &c.CodeISO3, &c.CreatedAt, &updatedAt); err != nil {
		return models.Country{}, err
	}

	if updatedAt.Valid {
		c.UpdatedAt = &updatedAt.Time
	}

	return c, nil
}

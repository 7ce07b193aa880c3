package service

import (
	"context"
	"errors"
	"strings"

	"github.com/asifrahman/go-identity-api/internal/logger"
	"github.com/asifrahman/go-identity-api/internal/store"
	"github.com/asifrahman/go-identity-api/models"
)

// countryService serves country reference data. Codes are matched
// case-insensitively by normalising to upper case before the lookup.
type countryService struct {
	countryRepository store.CountryRepository
	logger            *logger.Logger
}

func NewCountryService(countryRepository store.CountryRepository, logger *logger.Logger) CountryService {
	return &countryService{
		countryRepository: countryRepository,
		logger:            logger,
	}
}

func (c *countryService) List(ctx context.Context) ([]models.Country, error) {
	countries, err := c.countryRepository.FindAll(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "List").Msg("country listing failed")
		return nil, internal(CodeInternalServerError, "country listing failed")
	}
	return countries, nil
}

func (c *countryService) FindByCode(ctx context.Context, code string) (models.Country, error) {
	country, err := c.countryRepository.FindByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, store.ErrCountryNotFound) {
			return models.Country{}, notFound(CodeCountryNotFound, "country not found")
		}
		logger.FromContext(ctx).Err(err).Str("func", "FindByCode").Str("code", code).Msg("country lookup failed")
		return models.Country{}, internal(CodeInternalServerError, "country lookup failed")
	}
	return country, nil
}

func (c *countryService) FindByCodeISO3(ctx context.Context, codeISO3 string) (models.Country, error) {
	country, err := c.countryRepository.FindByCodeISO3(ctx, strings.ToUpper(strings.TrimSpace(codeISO3)))
	if err != nil {
		if errors.Is(err, store.ErrCountryNotFound) {
			return models.Country{}, notFound(CodeCountryNotFound, "country not found")
		}
		logger.FromContext(ctx).Err(err).Str("func", "FindByCodeISO3").Str("code", codeISO3).Msg("country lookup failed")
		return models.Country{}, internal(CodeInternalServerError, "country lookup failed")
	}
	return country, nil
}

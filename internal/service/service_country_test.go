package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asifrahman/go-identity-api/internal/logger"
	"github.com/asifrahman/go-identity-api/internal/store"
	"github.com/asifrahman/go-identity-api/models"
)

func TestCountryService_FindByCode_NormalisesInput(t *testing.T) {
	countries := &mockCountryRepository{
		findByCodeFn: func(ctx context.Context, code string) (models.Country, error) {
			assert.Equal(t, "BD", code)
			return models.Country{Name: "Bangladesh", Code: "BD", CodeISO3: "BGD"}, nil
		},
	}
	svc := NewCountryService(countries, logger.Nop())

	country, err := svc.FindByCode(testContext(), " bd ")
	require.NoError(t, err)
	assert.Equal(t, "Bangladesh", country.Name)
}

func TestCountryService_FindByCodeISO3_NotFound(t *testing.T) {
	countries := &mockCountryRepository{
		findByCodeISO3Fn: func(ctx context.Context, codeISO3 string) (models.Country, error) {
			return models.Country{}, store.ErrCountryNotFound
		},
	}
	svc := NewCountryService(countries, logger.Nop())

	_, err := svc.FindByCodeISO3(testContext(), "XXX")
	requireServiceError(t, err, http.StatusNotFound, CodeCountryNotFound)
}

func TestCountryService_List(t *testing.T) {
	countries := &mockCountryRepository{
		findAllFn: func(ctx context.Context) ([]models.Country, error) {
			return []models.Country{
				{Name: "Australia", Code: "AU", CodeISO3: "AUS"},
				{Name: "Bangladesh", Code: "BD", CodeISO3: "BGD"},
			}, nil
		},
	}
	svc := NewCountryService(countries, logger.Nop())

	list, err := svc.List(testContext())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "AUS", list[0].CodeISO3)
}

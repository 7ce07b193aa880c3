package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/asifrahman/go-identity-api/internal/service"
)

func TestMapError_ServiceError(t *testing.T) {
	err := service.NewError(http.StatusConflict, service.CodeEmailAlreadyExists, "email already exists")

	status, resp := mapError(err)

	assert.Equal(t, http.StatusConflict, status)
	assert.False(t, resp.Success)
	assert.Equal(t, service.CodeEmailAlreadyExists, resp.ErrorCode)
	assert.Equal(t, "email already exists", resp.Message)
	assert.Empty(t, resp.Errors)
}

func TestMapError_WrappedServiceError(t *testing.T) {
	inner := service.NewError(http.StatusNotFound, service.CodeUserNotFound, "user not found")
	err := fmt.Errorf("handling request: %w", inner)

	status, resp := mapError(err)

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, service.CodeUserNotFound, resp.ErrorCode)
}

func TestMapError_FieldErrorsSorted(t *testing.T) {
	err := service.NewError(http.StatusBadRequest, service.CodeValidationError, "validation failed").
		WithFields(map[string]string{
			"firstName": "firstName is required",
			"email":     "email is required",
		})

	status, resp := mapError(err)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, []string{
		"email: email is required",
		"firstName: firstName is required",
	}, resp.Errors)
}

func TestMapError_UnknownError(t *testing.T) {
	status, resp := mapError(errors.New("pg: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, service.CodeInternalServerError, resp.ErrorCode)
	assert.Equal(t, "internal server error", resp.Message, "internal detail must not leak")
}

package config

import "errors"

var (
	// ErrInvalidStorageConfigs is returned when no database DSN was provided
	// by any configuration source.
	ErrInvalidStorageConfigs = errors.New("invalid storage configs: database DSN is required")

	// ErrInvalidAuthConfigs is returned when the token sign key, issuer, or
	// audience is missing.
	ErrInvalidAuthConfigs = errors.New("invalid auth configs: token sign key, issuer and audience are required")

	// ErrInvalidAppConfigs is returned when the static API client id is
	// missing.
	ErrInvalidAppConfigs = errors.New("invalid app configs: client id is required")
)

package config

import "time"

// Defaults applied by validate for values no source provided.
const (
	defaultHTTPAddress     = "0.0.0.0:8080"
	defaultTokenDuration   = 30 * 24 * time.Hour
	defaultSessionDuration = 30 * 24 * time.Hour
	defaultRequestTimeout  = 30 * time.Second
	defaultAppName         = "identity-api"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// startup invariants and fills in defaults for optional values.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Auth.TokenSignKey == "" || cfg.Auth.TokenIssuer == "" || cfg.Auth.TokenAudience == "" {
		return ErrInvalidAuthConfigs
	}

	if cfg.App.ClientID == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.App.Name == "" {
		cfg.App.Name = defaultAppName
	}
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Auth.TokenDuration == 0 {
		cfg.Auth.TokenDuration = defaultTokenDuration
	}
	if cfg.Auth.SessionDuration == 0 {
		cfg.Auth.SessionDuration = defaultSessionDuration
	}

	return nil
}

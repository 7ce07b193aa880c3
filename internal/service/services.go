package service

import (
	"github.com/asifrahman/go-identity-api/internal/config"
	"github.com/asifrahman/go-identity-api/internal/logger"
	"github.com/asifrahman/go-identity-api/internal/store"
	"github.com/asifrahman/go-identity-api/internal/token"
)

type Services struct {
	Auth      AuthService
	Users     UserService
	Countries CountryService
	Uploads   UploadService
}

func NewServices(storages *store.Storages, blobs BlobStore, tokens *token.Issuer, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	users := NewUserService(storages.DB, storages.Users, storages.Roles, storages.PasswordHistory, storages.UserTokens, logger)

	return &Services{
		Auth:      NewAuthService(storages.Users, storages.Sessions, users, tokens, cfg.Auth, logger),
		Users:     users,
		Countries: NewCountryService(storages.Countries, logger),
		Uploads:   NewUploadService(blobs, logger),
	}
}

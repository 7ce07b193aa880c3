package service

import (
	"context"
	"io"

	"github.com/asifrahman/go-identity-api/models"
)

type AuthService interface {
	Authenticate(ctx context.Context, req models.LoginRequest, ipAddress string, userAgent string) (models.LoginResponse, error)
	Register(ctx context.Context, req models.CreateUserRequest) (models.User, error)
	Logout(ctx context.Context, userID string, sessionToken string) error

	// Identity resolves a raw bearer token into its user and live session.
	Identity(ctx context.Context, rawToken string) (models.User, models.Session, error)
}

type UserService interface {
	Create(ctx context.Context, req models.CreateUserRequest, image *models.BlobUploadResult) (models.User, error)
	FindByID(ctx context.Context, userID string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)

	// FindRolesByUserID reads the user's current role grants from the store.
	FindRolesByUserID(ctx context.Context, userID string) ([]models.Role, error)

	UpdatePassword(ctx context.Context, userID string, req models.UpdatePasswordRequest) error

	IssueUserToken(ctx context.Context, userID string, tokenType models.UserTokenType) (models.UserToken, error)
	ConsumeUserToken(ctx context.Context, userID string, token string, tokenType models.UserTokenType) (models.UserToken, error)
}

type CountryService interface {
	List(ctx context.Context) ([]models.Country, error)
	FindByCode(ctx context.Context, code string) (models.Country, error)
	FindByCodeISO3(ctx context.Context, code string) (models.Country, error)
}

type UploadService interface {
	UploadProfileImage(ctx context.Context, file io.Reader, fileName string, contentType string, size int64) models.BlobUploadResult
}

// BlobStore abstracts the blob backend so upload behaviour can be tested
// without a real bucket.
type BlobStore interface {
	Upload(ctx context.Context, file io.Reader, originalName string, contentType string, size int64) models.BlobUploadResult
	Delete(ctx context.Context, fileName string) error
}

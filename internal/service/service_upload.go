package service

import (
	"context"
	"io"

	"github.com/asifrahman/go-identity-api/internal/logger"
	"github.com/asifrahman/go-identity-api/models"
)

// uploadService pushes profile images to the blob store. Upload failures are
// carried inside the result so the user-creation flow can complete with an
// error marker instead of aborting.
type uploadService struct {
	blobs  BlobStore
	logger *logger.Logger
}

func NewUploadService(blobs BlobStore, logger *logger.Logger) UploadService {
	return &uploadService{
		blobs:  blobs,
		logger: logger,
	}
}

func (u *uploadService) UploadProfileImage(ctx context.Context, file io.Reader, fileName string, contentType string, size int64) models.BlobUploadResult {
	result := u.blobs.Upload(ctx, file, fileName, contentType, size)
	if result.HasError {
		logger.FromContext(ctx).Error().Str("func", "UploadProfileImage").Str("file", fileName).Msg("profile image upload failed")
	}
	return result
}

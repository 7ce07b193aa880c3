// Package storage uploads user files to an S3-compatible blob store.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/asifrahman/go-identity-api/internal/config"
	"github.com/asifrahman/go-identity-api/internal/logger"
	"github.com/asifrahman/go-identity-api/models"
)

// s3API is the subset of the S3 client used by BlobStorage, extracted so tests
// can substitute a stub client.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// BlobStorage stores uploaded files in a single S3 bucket and serves them back
// through a public base URL.
type BlobStorage struct {
	client        s3API
	bucket        string
	endpoint      string
	publicBaseURL string
}

// NewBlobStorage builds an S3 client from static credentials. Endpoint, when
// set, overrides the AWS default so MinIO and other S3-compatible stores work.
func NewBlobStorage(ctx context.Context, cfg config.Blob) (*BlobStorage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("loading blob storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &BlobStorage{
		client:        client,
		bucket:        cfg.Bucket,
		endpoint:      cfg.Endpoint,
		publicBaseURL: cfg.PublicBaseURL,
	}, nil
}

// Upload writes the file under a sanitized, collision-free object key. Failures
// are reported inside the result rather than as an error so callers can finish
// the surrounding operation with an "upload failed" marker.
func (b *BlobStorage) Upload(ctx context.Context, file io.Reader, originalName string, contentType string, size int64) models.BlobUploadResult {
	log := logger.FromContext(ctx)

	result := models.BlobUploadResult{
		OriginalFileName: originalName,
		FileType:         contentType,
		FileSize:         size,
	}

	fileName, err := b.availableName(ctx, sanitizeFileName(originalName))
	if err != nil {
		log.Error().Err(err).Str("func", "Upload").Str("file", originalName).Msg("checking object key availability")
		result.Status = "error"
		result.HasError = true
		return result
	}

	_, err = b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(fileName),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		log.Error().Err(err).Str("func", "Upload").Str("file", fileName).Msg("uploading object")
		result.Status = "error"
		result.HasError = true
		return result
	}

	result.Status = "success"
	result.FileName = fileName
	result.URL = b.objectURL(fileName)
	return result
}

// Delete removes an object. Missing objects are not an error.
func (b *BlobStorage) Delete(ctx context.Context, fileName string) error {
	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(fileName),
	})
	if err != nil {
		return fmt.Errorf("deleting object %s: %w", fileName, err)
	}
	return nil
}

// availableName returns name unchanged when no object with that key exists,
// otherwise appends a millisecond timestamp before the extension.
func (b *BlobStorage) availableName(ctx context.Context, name string) (string, error) {
	_, err := b.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(name),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return name, nil
		}
		return "", err
	}

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	return fmt.Sprintf("%s_%d%s", base, time.Now().UnixMilli(), ext), nil
}

func (b *BlobStorage) objectURL(fileName string) string {
	if b.publicBaseURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimSuffix(b.publicBaseURL, "/"), fileName)
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(b.endpoint, "/"), b.bucket, fileName)
}

// sanitizeFileName lowercases the name and strips every character outside
// letters, digits and dots, then trims leading and trailing dots. An empty
// result falls back to "file".
func sanitizeFileName(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.':
			sb.WriteRune(r)
		}
	}
	clean := strings.Trim(sb.String(), ".")
	if clean == "" {
		return "file"
	}
	return clean
}

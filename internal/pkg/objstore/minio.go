package objstore

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/edupro/talentdesk/internal/pkg/apperrors"
)

// PresignTTL is how long a generated download link stays valid.
const PresignTTL = time.Hour

// Config holds object storage connection settings
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

// Store abstracts the object storage backend
type Store interface {
	Upload(ctx context.Context, prefix, fileName, contentType string, data io.Reader, size int64) (string, error)
	PresignedGet(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// MinioStore stores objects in a single MinIO/S3 bucket
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore connects to MinIO and ensures the bucket exists
func NewMinioStore(ctx context.Context, cfg Config) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MinioStore{client: client, bucket: cfg.Bucket}, nil
}

// Upload stores an object under a generated key and returns the key.
// The key embeds a uuid so uploads with the same file name never collide.
func (s *MinioStore) Upload(ctx context.Context, prefix, fileName, contentType string, data io.Reader, size int64) (string, error) {
	clean := sanitizeFileName(fileName)
	if clean == "" {
		return "", apperrors.ErrInvalidFileName
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := path.Join(prefix, uuid.New().String()+"_"+clean)
	_, err := s.client.PutObject(ctx, s.bucket, key, data, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrStorageFailure, err)
	}
	return key, nil
}

// PresignedGet returns a short-lived download URL for the object
func (s *MinioStore) PresignedGet(ctx context.Context, key string) (string, error) {
	params := make(url.Values)
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, PresignTTL, params)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrStorageFailure, err)
	}
	return u.String(), nil
}

// Delete removes an object
func (s *MinioStore) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStorageFailure, err)
	}
	return nil
}

// Exists reports whether an object is present
func (s *MinioStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func sanitizeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "._")
}

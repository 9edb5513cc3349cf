package services

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/edupro/talentdesk/internal/app/models/dto"
	"github.com/edupro/talentdesk/internal/pkg/apperrors"
	"github.com/edupro/talentdesk/internal/pkg/objstore"
)

// MaxUploadSize caps a single upload at 50 MiB
const MaxUploadSize = 50 << 20

// FileService fronts the object storage backend
type FileService struct {
	store  objstore.Store
	logger zerolog.Logger
}

// NewFileService creates a new file service instance
func NewFileService(store objstore.Store, logger zerolog.Logger) *FileService {
	return &FileService{store: store, logger: logger}
}

// Upload streams a file into object storage under the given prefix
func (s *FileService) Upload(ctx context.Context, prefix, fileName, contentType string, data io.Reader, size int64) (*dto.FileUploadResponse, error) {
	if size > MaxUploadSize {
		return nil, apperrors.ErrFileTooLarge
	}
	key, err := s.store.Upload(ctx, prefix, fileName, contentType, data, size)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("key", key).Int64("size", size).Msg("File uploaded")
	return &dto.FileUploadResponse{
		Key:         key,
		FileName:    fileName,
		Size:        size,
		ContentType: contentType,
	}, nil
}

// DownloadURL returns a presigned link for an existing object
func (s *FileService) DownloadURL(ctx context.Context, key string) (*dto.FileDownloadResponse, error) {
	exists, err := s.store.Exists(ctx, key)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrFileNotFound
	}
	url, err := s.store.PresignedGet(ctx, key)
	if err != nil {
		return nil, err
	}
	return &dto.FileDownloadResponse{
		URL:       url,
		ExpiresIn: int(objstore.PresignTTL.Seconds()),
	}, nil
}

// Delete removes an object
func (s *FileService) Delete(ctx context.Context, key string) error {
	exists, err := s.store.Exists(ctx, key)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrFileNotFound
	}
	return s.store.Delete(ctx, key)
}

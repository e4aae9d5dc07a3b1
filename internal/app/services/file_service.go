package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/eventvault/backend/internal/app/models"
	"github.com/eventvault/backend/internal/app/repositories"
	"github.com/eventvault/backend/internal/pkg/apperrors"
	"github.com/eventvault/backend/internal/pkg/filestorage"
	"github.com/eventvault/backend/internal/pkg/validation"
)

// UploadInput describes one media upload
type UploadInput struct {
	EventID uuid.UUID
	File    *multipart.FileHeader
	Folder  string
	Tags    []string
}

// FileService defines media file operations of an event
type FileService interface {
	UploadFile(ctx context.Context, in UploadInput) (*models.File, error)
	ListFiles(ctx context.Context, eventID uuid.UUID, fileType *models.FileType) ([]*models.File, error)
	DeleteFile(ctx context.Context, eventID, fileID uuid.UUID) error
	FileURL(file *models.File) string
}

type fileServiceImpl struct {
	files   FileStore
	events  EventStore
	storage filestorage.FileStorage
	logger  zerolog.Logger
}

// NewFileService creates a new file service
func NewFileService(files FileStore, events EventStore, storage filestorage.FileStorage, logger zerolog.Logger) FileService {
	return &fileServiceImpl{
		files:   files,
		events:  events,
		storage: storage,
		logger:  logger,
	}
}

// UploadFile stores the upload under <event>/<folder>/ and records it
func (s *fileServiceImpl) UploadFile(ctx context.Context, in UploadInput) (*models.File, error) {
	if in.File == nil {
		return nil, apperrors.NewValidationError("file is required")
	}

	folder := strings.TrimSpace(in.Folder)
	if folder == "" {
		folder = models.DefaultFolder
	}
	if !validation.IsFolderName(folder) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid folder name: %s", folder))
	}

	if _, err := s.events.GetByID(ctx, in.EventID); err != nil {
		return nil, storeError("get event", err, eventNotFound(in.EventID))
	}

	stored, err := s.storage.SaveFileWithPath(in.File, path.Join(in.EventID.String(), folder))
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	var mimeType *string
	if stored.MimeType != "" {
		mimeType = &stored.MimeType
	}

	file, err := s.files.Create(ctx, &models.File{
		EventID:         in.EventID,
		UploaderID:      OrganizerFromContext(ctx),
		FileName:        stored.FileName,
		FileSize:        stored.FileSize,
		FileType:        models.FileTypeFromMime(stored.MimeType),
		FolderName:      folder,
		MimeType:        mimeType,
		StoragePath:     stored.StoragePath,
		Tags:            in.Tags,
		UploadCompleted: true,
	})
	if err != nil {
		if delErr := s.storage.DeleteFile(stored.StoragePath); delErr != nil {
			s.logger.Warn().Err(delErr).Str("storagePath", stored.StoragePath).Msg("Failed to remove orphaned upload")
		}
		return nil, storeError("create file", err, eventNotFound(in.EventID))
	}

	s.logger.Info().
		Str("eventId", in.EventID.String()).
		Str("fileId", file.ID.String()).
		Str("folder", folder).
		Int64("size", file.FileSize).
		Msg("File uploaded")
	return file, nil
}

// ListFiles returns the completed uploads of an event, newest first
func (s *fileServiceImpl) ListFiles(ctx context.Context, eventID uuid.UUID, fileType *models.FileType) ([]*models.File, error) {
	if fileType != nil && !fileType.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid file type: %s", *fileType))
	}

	files, err := s.files.ListByEvent(ctx, eventID, fileType)
	if err != nil {
		return nil, apperrors.NewPersistenceError("list files", err)
	}
	return files, nil
}

// DeleteFile removes the stored object first, then the row
func (s *fileServiceImpl) DeleteFile(ctx context.Context, eventID, fileID uuid.UUID) error {
	notFound := apperrors.NewCustomError(apperrors.ErrResourceNotFound, apperrors.ErrFileNotFound.Error())

	file, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		return storeError("get file", err, notFound)
	}
	if file.EventID != eventID {
		return notFound
	}

	if err := s.storage.DeleteFile(file.StoragePath); err != nil {
		return fmt.Errorf("failed to delete stored file: %w", err)
	}

	if err := s.files.Delete(ctx, fileID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return apperrors.NewPersistenceError("delete file", err)
	}

	s.logger.Info().Str("eventId", eventID.String()).Str("fileId", fileID.String()).Msg("File deleted")
	return nil
}

// FileURL returns the public URL of a file
func (s *fileServiceImpl) FileURL(file *models.File) string {
	return s.storage.URL(file.StoragePath)
}

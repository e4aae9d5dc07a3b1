package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // The root directory where files will be stored
	baseURL  string // Public URL the root directory is served under
	logger   zerolog.Logger
}

var _ FileStorage = (*LocalStorage)(nil)

// NewLocalStorage creates a new LocalStorage instance.
func NewLocalStorage(basePath, baseURL string, logger zerolog.Logger) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
		logger:   logger,
	}, nil
}

// SaveFileWithPath saves a file to a subdirectory of the storage root under a
// generated unique name that keeps the original extension.
func (ls *LocalStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (*StoredFile, error) {
	if fileHeader == nil {
		return nil, fmt.Errorf("no file provided")
	}

	rel, err := cleanRelative(subPath)
	if err != nil {
		return nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		ls.logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	fullDirPath := filepath.Join(ls.basePath, filepath.FromSlash(rel))
	if err := os.MkdirAll(fullDirPath, os.ModePerm); err != nil {
		ls.logger.Error().Err(err).Str("path", fullDirPath).Msg("Failed to create subdirectory")
		return nil, fmt.Errorf("failed to create subdirectory: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	uniqueFilename := uuid.New().String() + ext
	dstPath := filepath.Join(fullDirPath, uniqueFilename)

	dst, err := os.Create(dstPath)
	if err != nil {
		ls.logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, file)
	if err != nil {
		ls.logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return nil, fmt.Errorf("failed to save file content: %w", err)
	}

	stored := &StoredFile{
		StoragePath: path.Join(rel, uniqueFilename),
		FileName:    fileHeader.Filename,
		FileSize:    written,
		MimeType:    fileHeader.Header.Get("Content-Type"),
	}

	ls.logger.Info().Str("filename", fileHeader.Filename).Str("storagePath", stored.StoragePath).Msg("File saved successfully")
	return stored, nil
}

// DeleteFile removes a file from the storage filesystem.
// Returns nil if deletion is successful or if the file doesn't exist.
func (ls *LocalStorage) DeleteFile(storagePath string) error {
	rel, err := cleanRelative(storagePath)
	if err != nil || rel == "" {
		return fmt.Errorf("%w: %s", ErrInvalidPath, storagePath)
	}

	physicalPath := filepath.Join(ls.basePath, filepath.FromSlash(rel))
	if err := os.Remove(physicalPath); err != nil {
		if os.IsNotExist(err) {
			ls.logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
			return nil
		}
		ls.logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	ls.logger.Info().Str("path", physicalPath).Msg("File deleted successfully")
	return nil
}

// URL returns the public URL of a stored file
func (ls *LocalStorage) URL(storagePath string) string {
	return ls.baseURL + "/" + strings.TrimLeft(storagePath, "/")
}

// cleanRelative normalizes a slash separated path and rejects anything that
// would leave the storage root.
func cleanRelative(p string) (string, error) {
	if p == "" {
		return "", nil
	}
	if strings.Contains(p, "\\") || path.IsAbs(p) {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, p)
	}
	cleaned := path.Clean(p)
	if cleaned == "." {
		return "", nil
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, p)
	}
	return cleaned, nil
}

package filestorage

import (
	"errors"
	"mime/multipart"
)

// ErrInvalidPath is returned for storage paths that escape the storage root
var ErrInvalidPath = errors.New("invalid storage path")

// StoredFile describes a file written to storage
type StoredFile struct {
	// StoragePath is relative to the storage root, e.g. "<event>/<folder>/<uuid>.jpg"
	StoragePath string
	FileName    string
	FileSize    int64
	MimeType    string
}

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveFileWithPath stores the upload under subPath with a generated name
	SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (*StoredFile, error)

	// DeleteFile removes a stored file. Missing files are not an error.
	DeleteFile(storagePath string) error

	// URL returns the public URL of a stored file
	URL(storagePath string) string
}

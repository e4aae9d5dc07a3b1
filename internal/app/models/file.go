package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileType represents the type of file
type FileType string

const (
	FileTypeImage    FileType = "image"
	FileTypeVideo    FileType = "video"
	FileTypeDocument FileType = "document"
)

// FileTypeFromMime classifies a MIME type
func FileTypeFromMime(mimeType string) FileType {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return FileTypeImage
	case strings.HasPrefix(mimeType, "video/"):
		return FileTypeVideo
	default:
		return FileTypeDocument
	}
}

// Valid reports whether t is a known file type
func (t FileType) Valid() bool {
	return t == FileTypeImage || t == FileTypeVideo || t == FileTypeDocument
}

// DefaultFolder is used when an upload names no folder
const DefaultFolder = "general"

// File represents an uploaded media file of an event
type File struct {
	ID              uuid.UUID `json:"id" db:"id"`
	EventID         uuid.UUID `json:"event_id" db:"event_id"`
	UploaderID      uuid.UUID `json:"uploader_id" db:"uploader_id"`
	FileName        string    `json:"file_name" db:"file_name"`
	FileSize        int64     `json:"file_size" db:"file_size"`
	FileType        FileType  `json:"file_type" db:"file_type"`
	FolderName      string    `json:"folder_name" db:"folder_name"`
	MimeType        *string   `json:"mime_type" db:"mime_type"`
	StoragePath     string    `json:"storage_path" db:"storage_path"`
	ThumbnailPath   *string   `json:"thumbnail_path" db:"thumbnail_path"`
	Tags            []string  `json:"tags" db:"tags"`
	UploadCompleted bool      `json:"upload_completed" db:"upload_completed"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

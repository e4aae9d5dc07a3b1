package dto

import (
	"time"

	"github.com/eventvault/backend/internal/app/models"
)

// FileResponse represents the response for a file
type FileResponse struct {
	ID          string    `json:"id" example:"0b8c5a9e-8d5b-4b8f-9a55-1f0f9b7f4e21"`
	EventID     string    `json:"event_id"`
	FileName    string    `json:"file_name" example:"keynote.jpg"`
	FileURL     string    `json:"file_url" example:"http://localhost:8080/uploads/<event>/speakers/<uuid>.jpg"`
	FileSize    int64     `json:"file_size" example:"1048576"`
	FileType    string    `json:"file_type" example:"image"`
	FolderName  string    `json:"folder_name" example:"speakers"`
	MimeType    *string   `json:"mime_type" example:"image/jpeg"`
	StoragePath string    `json:"storage_path"`
	CreatedAt   time.Time `json:"created_at"`
}

// FilesResponse represents a collection of files
type FilesResponse struct {
	Files []FileResponse `json:"files"`
}

// NewFileResponse maps a file row; url is the public URL of its storage path
func NewFileResponse(f *models.File, url string) FileResponse {
	return FileResponse{
		ID:          f.ID.String(),
		EventID:     f.EventID.String(),
		FileName:    f.FileName,
		FileURL:     url,
		FileSize:    f.FileSize,
		FileType:    string(f.FileType),
		FolderName:  f.FolderName,
		MimeType:    f.MimeType,
		StoragePath: f.StoragePath,
		CreatedAt:   f.CreatedAt,
	}
}

package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventvault/backend/internal/app/models"
	"github.com/eventvault/backend/internal/pkg/dberrors"
	"github.com/eventvault/backend/internal/pkg/logger"
)

var fileColumns = []string{
	"id", "event_id", "uploader_id", "file_name", "file_size", "file_type::text", "folder_name",
	"mime_type", "storage_path", "thumbnail_path", "tags", "upload_completed", "created_at", "updated_at",
}

// FileRepository handles database operations for files
type FileRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFileRepository creates a new FileRepository
func NewFileRepository(db *pgxpool.Pool) *FileRepository {
	return &FileRepository{db: db, sb: psql}
}

func scanFile(row pgx.Row) (*models.File, error) {
	f := &models.File{}
	var fileType string
	err := row.Scan(
		&f.ID, &f.EventID, &f.UploaderID, &f.FileName, &f.FileSize, &fileType, &f.FolderName,
		&f.MimeType, &f.StoragePath, &f.ThumbnailPath, &f.Tags, &f.UploadCompleted, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	f.FileType = models.FileType(fileType)
	return f, nil
}

// Create inserts a completed upload
func (r *FileRepository) Create(ctx context.Context, file *models.File) (*models.File, error) {
	sql, args, err := r.sb.Insert("files").
		Columns("event_id", "uploader_id", "file_name", "file_size", "file_type", "folder_name",
			"mime_type", "storage_path", "tags", "upload_completed").
		Values(file.EventID, file.UploaderID, file.FileName, file.FileSize,
			squirrel.Expr("?::file_type", string(file.FileType)), file.FolderName,
			file.MimeType, file.StoragePath, file.Tags, file.UploadCompleted).
		Suffix("RETURNING " + strings.Join(fileColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build create file query: %w", err)
	}

	created, err := scanFile(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsForeignKeyError(err) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Str("storagePath", file.StoragePath).Msg("Error creating file record")
		return nil, fmt.Errorf("error executing create file query: %w", err)
	}
	return created, nil
}

// GetByID retrieves a file by ID
func (r *FileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.File, error) {
	sql, args, err := r.sb.Select(fileColumns...).
		From("files").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get file query: %w", err)
	}

	file, err := scanFile(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error getting file: %w", err)
	}
	return file, nil
}

// ListByEvent returns completed uploads of an event, newest first, optionally
// restricted to one file type
func (r *FileRepository) ListByEvent(ctx context.Context, eventID uuid.UUID, fileType *models.FileType) ([]*models.File, error) {
	q := r.sb.Select(fileColumns...).
		From("files").
		Where(squirrel.Eq{"event_id": eventID, "upload_completed": true}).
		OrderBy("created_at DESC")
	if fileType != nil {
		q = q.Where(squirrel.Expr("file_type = ?::file_type", string(*fileType)))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list files query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("eventID", eventID.String()).Msg("Error listing files")
		return nil, fmt.Errorf("error executing list files query: %w", err)
	}
	defer rows.Close()

	files := []*models.File{}
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning file row: %w", err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating file rows: %w", err)
	}
	return files, nil
}

// Delete deletes a file record
func (r *FileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.sb.Delete("files").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete file query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting file: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

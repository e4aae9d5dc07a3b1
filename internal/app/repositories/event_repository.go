package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventvault/backend/internal/app/models"
	"github.com/eventvault/backend/internal/pkg/dberrors"
	"github.com/eventvault/backend/internal/pkg/logger"
)

var eventColumns = []string{
	"id", "name", "description", "event_date", "location", "access_code",
	"luma_event_id", "luma_event_url", "cover_image_url", "luma_imported",
	"sync_enabled", "last_sync", "organizer_id", "created_at", "updated_at",
}

// EventRepository handles event database operations
type EventRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{
		db: db,
		sb: psql,
	}
}

func scanEvent(row pgx.Row) (*models.Event, error) {
	e := &models.Event{}
	err := row.Scan(
		&e.ID, &e.Name, &e.Description, &e.EventDate, &e.Location, &e.AccessCode,
		&e.LumaEventID, &e.LumaEventURL, &e.CoverImageURL, &e.LumaImported,
		&e.SyncEnabled, &e.LastSync, &e.OrganizerID, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// queryOne runs a single-row statement and maps pgx errors to repository errors
func (r *EventRepository) queryOne(ctx context.Context, op string, builder squirrel.Sqlizer) (*models.Event, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error building event SQL")
		return nil, fmt.Errorf("failed to build %s query: %w", op, err)
	}

	event, err := scanEvent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		switch {
		case dberrors.IsNoRows(err):
			return nil, ErrNotFound
		case dberrors.IsDuplicateConstraintError(err, dberrors.EventsLumaEventIDKey):
			return nil, ErrDuplicate
		}
		logger.Error().Err(err).Str("op", op).Msg("Error executing event query")
		return nil, fmt.Errorf("error executing %s query: %w", op, err)
	}
	return event, nil
}

// GetByID retrieves an event by ID
func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	return r.queryOne(ctx, "get event", r.sb.Select(eventColumns...).
		From("events").
		Where(squirrel.Eq{"id": id}).
		Limit(1))
}

// FindByLumaEventID retrieves the event linked to a Luma event id
func (r *EventRepository) FindByLumaEventID(ctx context.Context, lumaEventID string) (*models.Event, error) {
	return r.queryOne(ctx, "find event by luma id", r.sb.Select(eventColumns...).
		From("events").
		Where(squirrel.Eq{"luma_event_id": lumaEventID}).
		Limit(1))
}

// Create inserts a user-created event
func (r *EventRepository) Create(ctx context.Context, event *models.Event) (*models.Event, error) {
	return r.queryOne(ctx, "create event", r.sb.Insert("events").
		Columns("name", "description", "event_date", "location", "access_code", "sync_enabled", "organizer_id").
		Values(event.Name, event.Description, event.EventDate, event.Location, event.AccessCode, event.SyncEnabled, event.OrganizerID).
		Suffix("RETURNING "+strings.Join(eventColumns, ", ")))
}

// InsertFromSync inserts a new event populated from Luma with luma_imported set.
// ErrDuplicate means another sync linked the Luma event first.
func (r *EventRepository) InsertFromSync(ctx context.Context, fields models.EventSyncFields, organizerID uuid.UUID) (*models.Event, error) {
	return r.queryOne(ctx, "insert synced event", r.sb.Insert("events").
		Columns("name", "description", "event_date", "location", "luma_event_id", "luma_event_url",
			"cover_image_url", "luma_imported", "last_sync", "organizer_id").
		Values(fields.Name, fields.Description, fields.EventDate, fields.Location, fields.LumaEventID, fields.LumaEventURL,
			fields.CoverImageURL, true, fields.SyncedAt, organizerID).
		Suffix("RETURNING "+strings.Join(eventColumns, ", ")))
}

// ApplySync overwrites the sync-owned columns of the event with the given id,
// linking it to the Luma event if it was not linked yet.
func (r *EventRepository) ApplySync(ctx context.Context, id uuid.UUID, fields models.EventSyncFields) (*models.Event, error) {
	return r.queryOne(ctx, "apply sync", r.sb.Update("events").
		SetMap(map[string]interface{}{
			"name":            fields.Name,
			"description":     fields.Description,
			"event_date":      fields.EventDate,
			"location":        fields.Location,
			"luma_event_id":   fields.LumaEventID,
			"luma_event_url":  fields.LumaEventURL,
			"cover_image_url": fields.CoverImageURL,
			"luma_imported":   true,
			"last_sync":       fields.SyncedAt,
			"updated_at":      fields.SyncedAt,
		}).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING "+strings.Join(eventColumns, ", ")))
}

// Update saves the user-editable columns of an event
func (r *EventRepository) Update(ctx context.Context, event *models.Event) (*models.Event, error) {
	return r.queryOne(ctx, "update event", r.sb.Update("events").
		SetMap(map[string]interface{}{
			"name":         event.Name,
			"description":  event.Description,
			"event_date":   event.EventDate,
			"location":     event.Location,
			"access_code":  event.AccessCode,
			"sync_enabled": event.SyncEnabled,
			"updated_at":   time.Now().UTC(),
		}).
		Where(squirrel.Eq{"id": event.ID}).
		Suffix("RETURNING "+strings.Join(eventColumns, ", ")))
}

// Delete removes an event; participants and files cascade
func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.sb.Delete("events").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete event query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("eventID", id.String()).Msg("Error deleting event")
		return fmt.Errorf("error executing delete event query: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns a page of events, newest first, optionally filtered by organizer
func (r *EventRepository) List(ctx context.Context, organizerID *uuid.UUID, offset uint64, limit int) ([]*models.Event, int64, error) {
	where := squirrel.And{}
	if organizerID != nil {
		where = append(where, squirrel.Eq{"organizer_id": *organizerID})
	}

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("events").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count events query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting events")
		return nil, 0, fmt.Errorf("error executing count events query: %w", err)
	}

	sql, args, err := r.sb.Select(eventColumns...).
		From("events").
		Where(where).
		OrderBy("created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list events query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list events query")
		return nil, 0, fmt.Errorf("error executing list events query: %w", err)
	}
	defer rows.Close()

	events := []*models.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning event row: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating event rows: %w", err)
	}

	return events, total, nil
}

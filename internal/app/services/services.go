package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/eventvault/backend/internal/app/models"
	"github.com/eventvault/backend/internal/app/repositories"
	"github.com/eventvault/backend/internal/pkg/apperrors"
	"github.com/eventvault/backend/internal/pkg/luma"
)

// Services defined in this package:
// - SyncService: reconciles Luma events and guests into local storage
// - EventService: event CRUD and participant roles
// - FileService: media uploads per event
// - GenerationService: Texel image/video generation

// EventStore is the event persistence used by the services.
// *repositories.EventRepository implements it.
type EventStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	FindByLumaEventID(ctx context.Context, lumaEventID string) (*models.Event, error)
	Create(ctx context.Context, event *models.Event) (*models.Event, error)
	InsertFromSync(ctx context.Context, fields models.EventSyncFields, organizerID uuid.UUID) (*models.Event, error)
	ApplySync(ctx context.Context, id uuid.UUID, fields models.EventSyncFields) (*models.Event, error)
	Update(ctx context.Context, event *models.Event) (*models.Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, organizerID *uuid.UUID, offset uint64, limit int) ([]*models.Event, int64, error)
}

// ParticipantStore is the event_users persistence used by the services
type ParticipantStore interface {
	UpsertGuest(ctx context.Context, guest models.GuestUpsert) error
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*models.Participant, error)
	UpdateRole(ctx context.Context, eventID, participantID uuid.UUID, role models.Role, upload, download []string) (*models.Participant, error)
}

// FileStore is the files persistence used by FileService
type FileStore interface {
	Create(ctx context.Context, file *models.File) (*models.File, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.File, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID, fileType *models.FileType) ([]*models.File, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// EventProvider reads events and guest lists from the external platform.
// *luma.Client implements it.
type EventProvider interface {
	FetchEvent(ctx context.Context, externalID string) (*luma.RemoteEvent, error)
	FetchGuests(ctx context.Context, externalID string) ([]luma.RemoteGuest, error)
}

// Notifier publishes a notice to the subscribers of one event
type Notifier interface {
	Notify(eventID uuid.UUID, kind string, payload interface{})
}

var (
	_ EventStore       = (*repositories.EventRepository)(nil)
	_ ParticipantStore = (*repositories.ParticipantRepository)(nil)
	_ FileStore        = (*repositories.FileRepository)(nil)
	_ EventProvider    = (*luma.Client)(nil)
)

// storeError translates a repository error into an application error kind
func storeError(op string, err error, notFound error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return notFound
	}
	return apperrors.NewPersistenceError(op, err)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/eventvault/backend/internal/app/models"
	"github.com/eventvault/backend/internal/app/models/dto"
	"github.com/eventvault/backend/internal/app/repositories"
	"github.com/eventvault/backend/internal/pkg/apperrors"
	"github.com/eventvault/backend/internal/pkg/luma"
	"github.com/eventvault/backend/internal/pkg/metrics"
	"github.com/eventvault/backend/internal/pkg/validation"
)

// SyncOutcome tells which branch of SyncEvent stored the event
type SyncOutcome string

const (
	SyncOutcomeCreated SyncOutcome = "created"
	SyncOutcomeUpdated SyncOutcome = "updated"
	SyncOutcomeLinked  SyncOutcome = "linked"
)

// Notice kinds published after a successful sync
const (
	NoticeEventSynced  = "event_synced"
	NoticeGuestsSynced = "guests_synced"
)

const msgSyncEventFirst = "Event not found. Please sync event details first."

// SyncEventResult is returned by SyncEvent
type SyncEventResult struct {
	EventID uuid.UUID
	Outcome SyncOutcome
	Message string
	Event   *models.Event
}

// SyncError wraps a provider failure of a sync action. The provider error is
// kept unchanged so its status and body reach the caller.
type SyncError struct {
	Action string
	Err    error
}

func (e *SyncError) Error() string {
	return e.Err.Error()
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

// StatusCode returns the upstream HTTP status, 0 when the request never completed
func (e *SyncError) StatusCode() int {
	var pe *luma.ProviderError
	if errors.As(e.Err, &pe) {
		return pe.StatusCode
	}
	return 0
}

// SyncService reconciles one external event and its guest list into local storage
type SyncService interface {
	SyncEvent(ctx context.Context, eventHandle, externalID string) (*SyncEventResult, error)
	SyncGuests(ctx context.Context, eventHandle, externalID string) (int, error)
}

type syncServiceImpl struct {
	events       EventStore
	participants ParticipantStore
	provider     EventProvider
	notifier     Notifier
	organizerID  func(ctx context.Context) uuid.UUID
	now          func() time.Time
	logger       zerolog.Logger
}

// SyncOption customizes a SyncService
type SyncOption func(*syncServiceImpl)

// WithNotifier publishes sync notices to n
func WithNotifier(n Notifier) SyncOption {
	return func(s *syncServiceImpl) { s.notifier = n }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) SyncOption {
	return func(s *syncServiceImpl) { s.now = now }
}

// NewSyncService creates a new sync service
func NewSyncService(events EventStore, participants ParticipantStore, provider EventProvider, logger zerolog.Logger, opts ...SyncOption) SyncService {
	s := &syncServiceImpl{
		events:       events,
		participants: participants,
		provider:     provider,
		organizerID:  OrganizerFromContext,
		now:          func() time.Time { return time.Now().UTC() },
		logger:       logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func validateExternalID(externalID string) error {
	if externalID == "" {
		return apperrors.NewValidationError("lumaEventId is required")
	}
	if !validation.IsLumaEventID(externalID) {
		return apperrors.NewValidationError(fmt.Sprintf("Invalid Luma event ID format: %s", externalID))
	}
	return nil
}

func validateHandle(eventHandle string) error {
	if strings.TrimSpace(eventHandle) == "" {
		return apperrors.NewValidationError("eventId is required")
	}
	return nil
}

// SyncEvent fetches the remote event and upserts it, keyed first by external
// id and then by the internal id in eventHandle.
func (s *syncServiceImpl) SyncEvent(ctx context.Context, eventHandle, externalID string) (result *SyncEventResult, err error) {
	defer func() { s.record(dto.SyncActionEvent, err) }()

	if err := validateExternalID(externalID); err != nil {
		return nil, err
	}
	if err := validateHandle(eventHandle); err != nil {
		return nil, err
	}

	remote, err := s.provider.FetchEvent(ctx, externalID)
	if err != nil {
		s.logger.Error().Err(err).Str("lumaEventId", externalID).Msg("Failed to fetch event from Luma")
		return nil, &SyncError{Action: dto.SyncActionEvent, Err: err}
	}

	fields := s.syncFields(remote, externalID)

	existing, err := s.events.FindByLumaEventID(ctx, externalID)
	switch {
	case err == nil:
		return s.update(ctx, existing.ID, fields)
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, apperrors.NewPersistenceError("find event by luma id", err)
	}

	if validation.IsCreateSentinel(eventHandle) {
		return s.create(ctx, fields)
	}
	return s.link(ctx, eventHandle, fields)
}

func (s *syncServiceImpl) create(ctx context.Context, fields models.EventSyncFields) (*SyncEventResult, error) {
	event, err := s.events.InsertFromSync(ctx, fields, s.organizerID(ctx))
	if errors.Is(err, repositories.ErrDuplicate) {
		// A concurrent sync linked the id first; apply ours on top of it.
		existing, findErr := s.events.FindByLumaEventID(ctx, fields.LumaEventID)
		if findErr != nil {
			return nil, apperrors.NewPersistenceError("find event by luma id", findErr)
		}
		return s.update(ctx, existing.ID, fields)
	}
	if err != nil {
		return nil, apperrors.NewPersistenceError("create event", err)
	}

	s.logger.Info().Str("eventId", event.ID.String()).Str("lumaEventId", fields.LumaEventID).Msg("Created event from Luma")
	return s.done(event, SyncOutcomeCreated, "Event created from Luma"), nil
}

func (s *syncServiceImpl) update(ctx context.Context, id uuid.UUID, fields models.EventSyncFields) (*SyncEventResult, error) {
	event, err := s.events.ApplySync(ctx, id, fields)
	if err != nil {
		return nil, storeError("update event", err, apperrors.NewResourceNotFoundError(apperrors.ErrEventNotFound.Error()))
	}

	s.logger.Info().Str("eventId", event.ID.String()).Str("lumaEventId", fields.LumaEventID).Msg("Updated event from Luma")
	return s.done(event, SyncOutcomeUpdated, "Event updated from Luma"), nil
}

// link tags an existing local event with the external id for the first time
func (s *syncServiceImpl) link(ctx context.Context, eventHandle string, fields models.EventSyncFields) (*SyncEventResult, error) {
	notFound := apperrors.NewResourceNotFoundError(fmt.Sprintf("Event %s not found", eventHandle))

	id, err := uuid.Parse(eventHandle)
	if err != nil {
		return nil, notFound
	}

	event, err := s.events.ApplySync(ctx, id, fields)
	switch {
	case errors.Is(err, repositories.ErrDuplicate):
		return nil, apperrors.NewCustomError(apperrors.ErrConflict, apperrors.ErrLumaEventLinked.Error())
	case err != nil:
		return nil, storeError("link event", err, notFound)
	}

	s.logger.Info().Str("eventId", event.ID.String()).Str("lumaEventId", fields.LumaEventID).Msg("Linked event to Luma")
	return s.done(event, SyncOutcomeLinked, "Event linked to Luma"), nil
}

func (s *syncServiceImpl) done(event *models.Event, outcome SyncOutcome, message string) *SyncEventResult {
	s.notify(event.ID, NoticeEventSynced, dto.NewSyncedEventData(event))
	return &SyncEventResult{
		EventID: event.ID,
		Outcome: outcome,
		Message: message,
		Event:   event,
	}
}

// SyncGuests upserts the remote guest list into the participants of the
// resolved event and returns how many guests were stored. Guests that fail
// are logged and skipped.
func (s *syncServiceImpl) SyncGuests(ctx context.Context, eventHandle, externalID string) (count int, err error) {
	defer func() { s.record(dto.SyncActionGuests, err) }()

	if err := validateExternalID(externalID); err != nil {
		return 0, err
	}
	if err := validateHandle(eventHandle); err != nil {
		return 0, err
	}

	eventID, err := s.resolveEvent(ctx, eventHandle, externalID)
	if err != nil {
		return 0, err
	}

	guests, err := s.provider.FetchGuests(ctx, externalID)
	if err != nil {
		s.logger.Error().Err(err).Str("lumaEventId", externalID).Msg("Failed to fetch guests from Luma")
		return 0, &SyncError{Action: dto.SyncActionGuests, Err: err}
	}

	syncedAt := s.now()
	failed := 0
	for _, guest := range guests {
		email := validation.NormalizeEmail(guest.Email)
		if email == "" {
			failed++
			s.logger.Warn().Str("eventId", eventID.String()).Str("guestId", guest.APIID).Msg("Skipping guest without a valid email")
			continue
		}

		err := s.participants.UpsertGuest(ctx, models.GuestUpsert{
			EventID:     eventID,
			Email:       email,
			DisplayName: guest.Name,
			LumaGuestID: guest.APIID,
			SyncedAt:    syncedAt,
		})
		if err != nil {
			failed++
			s.logger.Error().Err(err).Str("eventId", eventID.String()).Str("email", email).Msg("Failed to upsert guest")
			continue
		}
		count++
	}

	metrics.RecordGuests(count, failed)
	s.logger.Info().
		Str("eventId", eventID.String()).
		Int("total", len(guests)).
		Int("synced", count).
		Int("failed", failed).
		Msg("Synced guests from Luma")

	s.notify(eventID, NoticeGuestsSynced, map[string]int{"count": count, "failed": failed})
	return count, nil
}

// resolveEvent maps an event handle to a stored event id. Sentinel handles
// are resolved through the external id.
func (s *syncServiceImpl) resolveEvent(ctx context.Context, eventHandle, externalID string) (uuid.UUID, error) {
	if validation.IsCreateSentinel(eventHandle) {
		event, err := s.events.FindByLumaEventID(ctx, externalID)
		if err != nil {
			return uuid.Nil, storeError("find event by luma id", err, apperrors.NewResourceNotFoundError(msgSyncEventFirst))
		}
		return event.ID, nil
	}

	notFound := apperrors.NewResourceNotFoundError(fmt.Sprintf("Event %s not found", eventHandle))
	id, err := uuid.Parse(eventHandle)
	if err != nil {
		return uuid.Nil, notFound
	}
	if _, err := s.events.GetByID(ctx, id); err != nil {
		return uuid.Nil, storeError("get event", err, notFound)
	}
	return id, nil
}

func (s *syncServiceImpl) syncFields(remote *luma.RemoteEvent, externalID string) models.EventSyncFields {
	name := remote.Name
	if name == "" {
		name = externalID
	}
	return models.EventSyncFields{
		Name:          name,
		Description:   remote.Description,
		EventDate:     remote.StartAt,
		Location:      remote.Location,
		LumaEventID:   externalID,
		LumaEventURL:  remote.URL,
		CoverImageURL: remote.CoverURL,
		SyncedAt:      s.now(),
	}
}

func (s *syncServiceImpl) notify(eventID uuid.UUID, kind string, payload interface{}) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(eventID, kind, payload)
}

func (s *syncServiceImpl) record(action string, err error) {
	if err != nil {
		metrics.RecordSync(action, metrics.OutcomeFailure)
		return
	}
	metrics.RecordSync(action, metrics.OutcomeSuccess)
}

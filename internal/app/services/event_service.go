package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/eventvault/backend/internal/app/models"
	"github.com/eventvault/backend/internal/app/models/dto"
	"github.com/eventvault/backend/internal/app/repositories"
	"github.com/eventvault/backend/internal/pkg/apperrors"
	"github.com/eventvault/backend/internal/pkg/auth"
	"github.com/eventvault/backend/internal/pkg/validation"
)

// OrganizerFromContext returns the authenticated user, or the system user
// when the request carries none.
func OrganizerFromContext(ctx context.Context) uuid.UUID {
	if id, ok := auth.UserIDFromContext(ctx); ok {
		return id
	}
	return models.SystemUserID
}

// EventService defines event and participant operations
type EventService interface {
	CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*models.Event, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	ListEvents(ctx context.Context, organizerID *uuid.UUID, offset uint64, limit int) ([]*models.Event, int64, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, req *dto.UpdateEventRequest) (*models.Event, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error
	ListParticipants(ctx context.Context, eventID uuid.UUID) ([]*models.Participant, error)
	UpdateParticipant(ctx context.Context, eventID, participantID uuid.UUID, req *dto.UpdateParticipantRequest) (*models.Participant, error)
}

type eventServiceImpl struct {
	events       EventStore
	participants ParticipantStore
	logger       zerolog.Logger
}

// NewEventService creates a new event service
func NewEventService(events EventStore, participants ParticipantStore, logger zerolog.Logger) EventService {
	return &eventServiceImpl{
		events:       events,
		participants: participants,
		logger:       logger,
	}
}

func eventNotFound(id uuid.UUID) error {
	return apperrors.NewCustomError(apperrors.ErrResourceNotFound, apperrors.ErrEventNotFound.Error()).
		WithDetails(map[string]interface{}{"eventId": id.String()})
}

func invalidName() error {
	return apperrors.NewValidationError(fmt.Sprintf("name must be between %d and %d characters", validation.NameMinLength, validation.NameMaxLength))
}

// CreateEvent creates an event owned by the caller
func (s *eventServiceImpl) CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*models.Event, error) {
	name := strings.TrimSpace(req.Name)
	if !validation.IsEventName(name) {
		return nil, invalidName()
	}

	event, err := s.events.Create(ctx, &models.Event{
		Name:        name,
		Description: req.Description,
		EventDate:   req.EventDate,
		Location:    req.Location,
		AccessCode:  req.AccessCode,
		SyncEnabled: req.SyncEnabled,
		OrganizerID: OrganizerFromContext(ctx),
	})
	if err != nil {
		return nil, apperrors.NewPersistenceError("create event", err)
	}

	s.logger.Info().Str("eventId", event.ID.String()).Msg("Event created")
	return event, nil
}

// GetEventByID retrieves an event by ID
func (s *eventServiceImpl) GetEventByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("get event", err, eventNotFound(id))
	}
	return event, nil
}

// ListEvents returns a page of events, newest first
func (s *eventServiceImpl) ListEvents(ctx context.Context, organizerID *uuid.UUID, offset uint64, limit int) ([]*models.Event, int64, error) {
	events, total, err := s.events.List(ctx, organizerID, offset, limit)
	if err != nil {
		return nil, 0, apperrors.NewPersistenceError("list events", err)
	}
	return events, total, nil
}

// UpdateEvent applies the fields present in req
func (s *eventServiceImpl) UpdateEvent(ctx context.Context, id uuid.UUID, req *dto.UpdateEventRequest) (*models.Event, error) {
	event, err := s.GetEventByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if !validation.IsEventName(name) {
			return nil, invalidName()
		}
		event.Name = name
	}
	if req.Description != nil {
		event.Description = req.Description
	}
	if req.EventDate != nil {
		event.EventDate = req.EventDate
	}
	if req.Location != nil {
		event.Location = req.Location
	}
	if req.AccessCode != nil {
		event.AccessCode = req.AccessCode
	}
	if req.SyncEnabled != nil {
		event.SyncEnabled = *req.SyncEnabled
	}

	updated, err := s.events.Update(ctx, event)
	if err != nil {
		return nil, storeError("update event", err, eventNotFound(id))
	}
	return updated, nil
}

// DeleteEvent deletes an event with its participants and file rows
func (s *eventServiceImpl) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	if err := s.events.Delete(ctx, id); err != nil {
		return storeError("delete event", err, eventNotFound(id))
	}
	s.logger.Info().Str("eventId", id.String()).Msg("Event deleted")
	return nil
}

// ListParticipants returns the participants of an event
func (s *eventServiceImpl) ListParticipants(ctx context.Context, eventID uuid.UUID) ([]*models.Participant, error) {
	if _, err := s.GetEventByID(ctx, eventID); err != nil {
		return nil, err
	}

	participants, err := s.participants.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, apperrors.NewPersistenceError("list participants", err)
	}
	return participants, nil
}

// UpdateParticipant sets a participant's role and permissions by hand
func (s *eventServiceImpl) UpdateParticipant(ctx context.Context, eventID, participantID uuid.UUID, req *dto.UpdateParticipantRequest) (*models.Participant, error) {
	if !req.Role.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid role: %s", req.Role))
	}

	p, err := s.participants.UpdateRole(ctx, eventID, participantID, req.Role, req.UploadPermissions, req.DownloadPermissions)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrResourceNotFound, apperrors.ErrParticipantNotFound.Error())
		}
		return nil, apperrors.NewPersistenceError("update participant", err)
	}

	s.logger.Info().
		Str("eventId", eventID.String()).
		Str("participantId", participantID.String()).
		Str("role", string(p.Role)).
		Msg("Participant role updated")
	return p, nil
}

package dto

import (
	"time"

	"github.com/eventvault/backend/internal/app/models"
)

// CreateEventRequest represents the request body for creating an event
type CreateEventRequest struct {
	Name        string     `json:"name" binding:"required,min=1,max=200" example:"Tech Conf"`
	Description *string    `json:"description" example:"Annual gathering"`
	EventDate   *time.Time `json:"event_date" example:"2024-07-15T09:00:00Z"`
	Location    *string    `json:"location" example:"1 Market St, San Francisco"`
	AccessCode  *string    `json:"access_code" binding:"omitempty,min=4,max=32" example:"TECH24"`
	SyncEnabled bool       `json:"sync_enabled"`
}

// UpdateEventRequest represents the request body for updating an event.
// Absent fields are left unchanged.
type UpdateEventRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string    `json:"description"`
	EventDate   *time.Time `json:"event_date"`
	Location    *string    `json:"location"`
	AccessCode  *string    `json:"access_code" binding:"omitempty,min=4,max=32"`
	SyncEnabled *bool      `json:"sync_enabled"`
}

// EventListResponse is a page of events
type EventListResponse struct {
	Events     []*models.Event `json:"events"`
	Pagination PaginationInfo  `json:"pagination"`
}

// UpdateParticipantRequest changes a participant's role and permissions
type UpdateParticipantRequest struct {
	Role                models.Role `json:"role" binding:"required,oneof=organizer speaker sponsor volunteer attendee" example:"speaker"`
	UploadPermissions   []string    `json:"upload_permissions" example:"speakers"`
	DownloadPermissions []string    `json:"download_permissions" example:"atmosphere"`
}

// ParticipantListResponse lists the participants of an event
type ParticipantListResponse struct {
	Participants []*models.Participant `json:"participants"`
	Total        int                   `json:"total"`
}

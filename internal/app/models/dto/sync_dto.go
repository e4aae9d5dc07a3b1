package dto

import (
	"time"

	"github.com/eventvault/backend/internal/app/models"
)

// Sync actions
const (
	SyncActionEvent  = "sync_event"
	SyncActionGuests = "sync_guests"
)

// SyncRequest is the body of POST /luma/sync
type SyncRequest struct {
	Action      string `json:"action" example:"sync_event"`
	EventID     string `json:"eventId" example:"new"`
	LumaEventID string `json:"lumaEventId" example:"evt-abc123"`
}

// SyncResponse is the flat sync contract: success plus either the result
// fields of the action or an error message.
type SyncResponse struct {
	Success bool             `json:"success" example:"true"`
	EventID string           `json:"eventId,omitempty" example:"6f1c8c38-5b7e-4c47-9d0b-7f3fe0c1e8a1"`
	Message string           `json:"message,omitempty" example:"Event created from Luma"`
	Data    *SyncedEventData `json:"data,omitempty"`
	Count   *int             `json:"count,omitempty" example:"42"`
	Error   string           `json:"error,omitempty" example:"Luma API error: 404 - not found"`
}

// SyncedEventData is the copy of the stored event returned by sync_event
type SyncedEventData struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Description   *string    `json:"description"`
	EventDate     *time.Time `json:"event_date"`
	Location      *string    `json:"location"`
	CoverImageURL *string    `json:"cover_image_url"`
	LumaEventID   *string    `json:"luma_event_id"`
	LumaEventURL  *string    `json:"luma_event_url"`
	LumaImported  bool       `json:"luma_imported"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// NewSyncedEventData copies the synced columns of an event
func NewSyncedEventData(e *models.Event) *SyncedEventData {
	if e == nil {
		return nil
	}
	return &SyncedEventData{
		ID:            e.ID.String(),
		Name:          e.Name,
		Description:   e.Description,
		EventDate:     e.EventDate,
		Location:      e.Location,
		CoverImageURL: e.CoverImageURL,
		LumaEventID:   e.LumaEventID,
		LumaEventURL:  e.LumaEventURL,
		LumaImported:  e.LumaImported,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

// NewSyncErrorResponse builds the failure body
func NewSyncErrorResponse(message string) SyncResponse {
	return SyncResponse{Success: false, Error: message}
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Event represents an event row
type Event struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	Name          string     `json:"name" db:"name"`
	Description   *string    `json:"description" db:"description"`
	EventDate     *time.Time `json:"event_date" db:"event_date"`
	Location      *string    `json:"location" db:"location"`
	AccessCode    *string    `json:"access_code,omitempty" db:"access_code"`
	LumaEventID   *string    `json:"luma_event_id" db:"luma_event_id"`
	LumaEventURL  *string    `json:"luma_event_url" db:"luma_event_url"`
	CoverImageURL *string    `json:"cover_image_url" db:"cover_image_url"`
	LumaImported  bool       `json:"luma_imported" db:"luma_imported"`
	SyncEnabled   bool       `json:"sync_enabled" db:"sync_enabled"`
	LastSync      *time.Time `json:"last_sync" db:"last_sync"`
	OrganizerID   uuid.UUID  `json:"organizer_id" db:"organizer_id"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// EventSyncFields are the columns owned by Luma sync
type EventSyncFields struct {
	Name          string
	Description   *string
	EventDate     *time.Time
	Location      *string
	LumaEventID   string
	LumaEventURL  *string
	CoverImageURL *string
	SyncedAt      time.Time
}

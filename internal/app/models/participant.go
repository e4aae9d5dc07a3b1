package models

import (
	"time"

	"github.com/google/uuid"
)

// Participant is one person's relationship to one event (table event_users)
type Participant struct {
	ID                  uuid.UUID   `json:"id" db:"id"`
	EventID             uuid.UUID   `json:"event_id" db:"event_id"`
	UserID              *uuid.UUID  `json:"user_id" db:"user_id"`
	Email               *string     `json:"email" db:"email"`
	DisplayName         *string     `json:"display_name" db:"display_name"`
	Role                Role        `json:"role" db:"role"`
	RoleSource          *RoleSource `json:"role_source" db:"role_source"`
	LumaGuestID         *string     `json:"luma_guest_id" db:"luma_guest_id"`
	UploadPermissions   []string    `json:"upload_permissions" db:"upload_permissions"`
	DownloadPermissions []string    `json:"download_permissions" db:"download_permissions"`
	LastLumaSync        *time.Time  `json:"last_luma_sync" db:"last_luma_sync"`
	CreatedAt           time.Time   `json:"created_at" db:"created_at"`
}

// GuestUpsert carries the sync-owned participant fields for one guest
type GuestUpsert struct {
	EventID     uuid.UUID
	Email       string
	DisplayName string
	LumaGuestID string
	SyncedAt    time.Time
}

package models

import "github.com/google/uuid"

// Role is a participant's role in an event (Postgres enum user_role)
type Role string

const (
	RoleOrganizer Role = "organizer"
	RoleSpeaker   Role = "speaker"
	RoleSponsor   Role = "sponsor"
	RoleVolunteer Role = "volunteer"
	RoleAttendee  Role = "attendee"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	switch r {
	case RoleOrganizer, RoleSpeaker, RoleSponsor, RoleVolunteer, RoleAttendee:
		return true
	}
	return false
}

// RoleSource records who assigned a participant's role (Postgres enum role_source)
type RoleSource string

const (
	// RoleSourceManual is set on participants added by hand
	RoleSourceManual RoleSource = "manual"
	// RoleSourceLumaAuto is set by guest sync; sync may overwrite it
	RoleSourceLumaAuto RoleSource = "luma_auto"
	// RoleSourceLumaManual marks a synced participant whose role was edited by hand
	RoleSourceLumaManual RoleSource = "luma_manual"
)

// SystemUserID stands in for the organizer when requests are not authenticated
var SystemUserID = uuid.Nil

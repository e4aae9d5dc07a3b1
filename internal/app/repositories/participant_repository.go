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

var participantColumns = []string{
	"id", "event_id", "user_id", "email", "display_name", "role::text", "role_source::text",
	"luma_guest_id", "upload_permissions", "download_permissions", "last_luma_sync", "created_at",
}

// guestConflictClause keeps hand-assigned roles: role and role_source are
// only replaced while the row is still owned by sync.
// Rows with a NULL role_source keep their role as well.
const guestConflictClause = `ON CONFLICT ON CONSTRAINT ` + dberrors.EventUsersEventEmailKey + ` DO UPDATE SET
	display_name   = EXCLUDED.display_name,
	luma_guest_id  = EXCLUDED.luma_guest_id,
	last_luma_sync = EXCLUDED.last_luma_sync,
	role        = CASE WHEN event_users.role_source = 'luma_auto' THEN EXCLUDED.role ELSE event_users.role END,
	role_source = CASE WHEN event_users.role_source = 'luma_auto' THEN EXCLUDED.role_source ELSE event_users.role_source END`

// ParticipantRepository handles event_users database operations
type ParticipantRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewParticipantRepository creates a new ParticipantRepository
func NewParticipantRepository(db *pgxpool.Pool) *ParticipantRepository {
	return &ParticipantRepository{
		db: db,
		sb: psql,
	}
}

func scanParticipant(row pgx.Row) (*models.Participant, error) {
	p := &models.Participant{}
	var role string
	var roleSource *string
	err := row.Scan(
		&p.ID, &p.EventID, &p.UserID, &p.Email, &p.DisplayName, &role, &roleSource,
		&p.LumaGuestID, &p.UploadPermissions, &p.DownloadPermissions, &p.LastLumaSync, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Role = models.Role(role)
	if roleSource != nil {
		rs := models.RoleSource(*roleSource)
		p.RoleSource = &rs
	}
	return p, nil
}

// UpsertGuest creates or refreshes the participant row of one Luma guest,
// keyed by (event_id, email).
func (r *ParticipantRepository) UpsertGuest(ctx context.Context, guest models.GuestUpsert) error {
	sql, args, err := r.sb.Insert("event_users").
		Columns("event_id", "email", "display_name", "luma_guest_id", "role", "role_source", "last_luma_sync").
		Values(guest.EventID, guest.Email, nullIfEmpty(guest.DisplayName), nullIfEmpty(guest.LumaGuestID),
			squirrel.Expr("?::user_role", string(models.RoleAttendee)),
			squirrel.Expr("?::role_source", string(models.RoleSourceLumaAuto)),
			guest.SyncedAt).
		Suffix(guestConflictClause).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert guest query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error executing upsert guest query: %w", err)
	}
	return nil
}

// ListByEvent returns the participants of an event ordered by creation
func (r *ParticipantRepository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*models.Participant, error) {
	sql, args, err := r.sb.Select(participantColumns...).
		From("event_users").
		Where(squirrel.Eq{"event_id": eventID}).
		OrderBy("created_at ASC", "email ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list participants query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("eventID", eventID.String()).Msg("Error listing participants")
		return nil, fmt.Errorf("error executing list participants query: %w", err)
	}
	defer rows.Close()

	participants := []*models.Participant{}
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning participant row: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participant rows: %w", err)
	}
	return participants, nil
}

// UpdateRole assigns a role and permissions by hand. Synced rows become
// luma_manual so later syncs keep the role; others become manual.
func (r *ParticipantRepository) UpdateRole(ctx context.Context, eventID, participantID uuid.UUID, role models.Role, upload, download []string) (*models.Participant, error) {
	sql, args, err := r.sb.Update("event_users").
		Set("role", squirrel.Expr("?::user_role", string(role))).
		Set("role_source", squirrel.Expr(
			"CASE WHEN role_source IN ('luma_auto', 'luma_manual') THEN 'luma_manual'::role_source ELSE 'manual'::role_source END")).
		Set("upload_permissions", upload).
		Set("download_permissions", download).
		Where(squirrel.Eq{"id": participantID, "event_id": eventID}).
		Suffix("RETURNING " + strings.Join(participantColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update participant query: %w", err)
	}

	p, err := scanParticipant(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Str("participantID", participantID.String()).Msg("Error updating participant role")
		return nil, fmt.Errorf("error executing update participant query: %w", err)
	}
	return p, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

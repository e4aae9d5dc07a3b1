package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eventvault/backend/internal/app/models"
	"github.com/eventvault/backend/internal/app/repositories"
	"github.com/eventvault/backend/internal/pkg/luma"
)

type fakeEventStore struct {
	mu     sync.Mutex
	events map[uuid.UUID]*models.Event

	// beforeInsert runs once at the start of the next InsertFromSync
	beforeInsert func()
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{events: map[uuid.UUID]*models.Event{}}
}

func copyEvent(e *models.Event) *models.Event {
	c := *e
	return &c
}

func (f *fakeEventStore) add(e *models.Event) *models.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	f.events[e.ID] = copyEvent(e)
	return e
}

func (f *fakeEventStore) lumaOwner(lumaID string) *models.Event {
	for _, e := range f.events {
		if e.LumaEventID != nil && *e.LumaEventID == lumaID {
			return e
		}
	}
	return nil
}

func (f *fakeEventStore) GetByID(_ context.Context, id uuid.UUID) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return copyEvent(e), nil
}

func (f *fakeEventStore) FindByLumaEventID(_ context.Context, lumaID string) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e := f.lumaOwner(lumaID); e != nil {
		return copyEvent(e), nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeEventStore) Create(_ context.Context, event *models.Event) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e := copyEvent(event)
	e.ID = uuid.New()
	e.CreatedAt = time.Now().UTC()
	e.UpdatedAt = e.CreatedAt
	f.events[e.ID] = e
	return copyEvent(e), nil
}

func (f *fakeEventStore) InsertFromSync(_ context.Context, fields models.EventSyncFields, organizerID uuid.UUID) (*models.Event, error) {
	if hook := f.beforeInsert; hook != nil {
		f.beforeInsert = nil
		hook()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lumaOwner(fields.LumaEventID) != nil {
		return nil, repositories.ErrDuplicate
	}
	e := &models.Event{ID: uuid.New(), OrganizerID: organizerID, CreatedAt: fields.SyncedAt}
	applyFields(e, fields)
	f.events[e.ID] = e
	return copyEvent(e), nil
}

func (f *fakeEventStore) ApplySync(_ context.Context, id uuid.UUID, fields models.EventSyncFields) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if owner := f.lumaOwner(fields.LumaEventID); owner != nil && owner.ID != id {
		return nil, repositories.ErrDuplicate
	}
	applyFields(e, fields)
	return copyEvent(e), nil
}

func applyFields(e *models.Event, fields models.EventSyncFields) {
	lumaID := fields.LumaEventID
	syncedAt := fields.SyncedAt
	e.Name = fields.Name
	e.Description = fields.Description
	e.EventDate = fields.EventDate
	e.Location = fields.Location
	e.LumaEventID = &lumaID
	e.LumaEventURL = fields.LumaEventURL
	e.CoverImageURL = fields.CoverImageURL
	e.LumaImported = true
	e.LastSync = &syncedAt
	e.UpdatedAt = syncedAt
}

func (f *fakeEventStore) Update(_ context.Context, event *models.Event) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[event.ID]; !ok {
		return nil, repositories.ErrNotFound
	}
	f.events[event.ID] = copyEvent(event)
	return copyEvent(event), nil
}

func (f *fakeEventStore) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.events, id)
	return nil
}

func (f *fakeEventStore) List(_ context.Context, organizerID *uuid.UUID, offset uint64, limit int) ([]*models.Event, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := []*models.Event{}
	for _, e := range f.events {
		if organizerID == nil || e.OrganizerID == *organizerID {
			all = append(all, copyEvent(e))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := int64(len(all))
	if offset >= uint64(len(all)) {
		return []*models.Event{}, total, nil
	}
	end := int(offset) + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

type participantKey struct {
	eventID uuid.UUID
	email   string
}

type fakeParticipantStore struct {
	mu   sync.Mutex
	rows map[participantKey]*models.Participant
	// failEmails makes UpsertGuest fail for these addresses
	failEmails map[string]bool
}

func newFakeParticipantStore() *fakeParticipantStore {
	return &fakeParticipantStore{
		rows:       map[participantKey]*models.Participant{},
		failEmails: map[string]bool{},
	}
}

func (f *fakeParticipantStore) UpsertGuest(_ context.Context, g models.GuestUpsert) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failEmails[g.Email] {
		return errors.New("constraint violation")
	}

	syncedAt := g.SyncedAt
	name := g.DisplayName
	guestID := g.LumaGuestID
	key := participantKey{g.EventID, g.Email}
	if p, ok := f.rows[key]; ok {
		p.DisplayName = &name
		p.LumaGuestID = &guestID
		p.LastLumaSync = &syncedAt
		if p.RoleSource != nil && *p.RoleSource == models.RoleSourceLumaAuto {
			p.Role = models.RoleAttendee
		}
		return nil
	}

	email := g.Email
	source := models.RoleSourceLumaAuto
	f.rows[key] = &models.Participant{
		ID:           uuid.New(),
		EventID:      g.EventID,
		Email:        &email,
		DisplayName:  &name,
		Role:         models.RoleAttendee,
		RoleSource:   &source,
		LumaGuestID:  &guestID,
		LastLumaSync: &syncedAt,
		CreatedAt:    syncedAt,
	}
	return nil
}

func (f *fakeParticipantStore) ListByEvent(_ context.Context, eventID uuid.UUID) ([]*models.Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.Participant{}
	for k, p := range f.rows {
		if k.eventID == eventID {
			c := *p
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return *out[i].Email < *out[j].Email })
	return out, nil
}

func (f *fakeParticipantStore) UpdateRole(_ context.Context, eventID, participantID uuid.UUID, role models.Role, upload, download []string) (*models.Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k, p := range f.rows {
		if k.eventID != eventID || p.ID != participantID {
			continue
		}
		source := models.RoleSourceManual
		if p.RoleSource != nil && (*p.RoleSource == models.RoleSourceLumaAuto || *p.RoleSource == models.RoleSourceLumaManual) {
			source = models.RoleSourceLumaManual
		}
		p.Role = role
		p.RoleSource = &source
		p.UploadPermissions = upload
		p.DownloadPermissions = download
		c := *p
		return &c, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeParticipantStore) count(eventID uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for k := range f.rows {
		if k.eventID == eventID {
			n++
		}
	}
	return n
}

type fakeProvider struct {
	event     *luma.RemoteEvent
	guests    []luma.RemoteGuest
	eventErr  error
	guestsErr error
	calls     int
}

func (f *fakeProvider) FetchEvent(_ context.Context, externalID string) (*luma.RemoteEvent, error) {
	f.calls++
	if f.eventErr != nil {
		return nil, f.eventErr
	}
	e := *f.event
	return &e, nil
}

func (f *fakeProvider) FetchGuests(_ context.Context, externalID string) ([]luma.RemoteGuest, error) {
	f.calls++
	if f.guestsErr != nil {
		return nil, f.guestsErr
	}
	return append([]luma.RemoteGuest(nil), f.guests...), nil
}

type notice struct {
	eventID uuid.UUID
	kind    string
}

type fakeNotifier struct {
	notices []notice
}

func (f *fakeNotifier) Notify(eventID uuid.UUID, kind string, _ interface{}) {
	f.notices = append(f.notices, notice{eventID, kind})
}

func (f *fakeParticipantStore) has(eventID uuid.UUID, email string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.rows[participantKey{eventID, email}]
	return ok
}

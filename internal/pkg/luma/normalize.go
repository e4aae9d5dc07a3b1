package luma

import (
	"errors"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// RemoteEvent is the fixed internal shape of a Luma event.
type RemoteEvent struct {
	APIID       string
	Name        string
	Description *string
	StartAt     *time.Time
	EndAt       *time.Time
	Location    *string
	URL         *string
	CoverURL    *string
}

// RemoteGuest is the fixed internal shape of a Luma guest entry.
type RemoteGuest struct {
	APIID string
	Email string
	Name  string
}

var (
	errInvalidPayload = errors.New("invalid JSON payload")
	errNoEvent        = errors.New("event payload is missing")
)

// Alternate keys, first match wins.
var (
	eventNameKeys        = []string{"name", "title"}
	eventDescriptionKeys = []string{"description", "description_md"}
	eventStartKeys       = []string{"start_at", "start_time", "startAt"}
	eventEndKeys         = []string{"end_at", "end_time", "endAt"}
	eventLocationKeys    = []string{"geo_address_json.address", "geo_address_json.full_address", "location"}
	eventURLKeys         = []string{"url", "event_url"}
	eventCoverKeys       = []string{"cover_url", "cover_image_url"}

	guestListKeys  = []string{"entries", "guests"}
	guestEmailKeys = []string{"email", "user_email"}
	guestNameKeys  = []string{"name", "user_name"}
	guestIDKeys    = []string{"api_id", "id"}
)

// NormalizeEvent maps a raw event payload to a RemoteEvent. The event may be
// at the top level or nested under "event".
func NormalizeEvent(raw []byte) (*RemoteEvent, error) {
	if !gjson.ValidBytes(raw) {
		return nil, errInvalidPayload
	}

	root := gjson.ParseBytes(raw)
	if nested := root.Get("event"); nested.IsObject() {
		root = nested
	}
	if !root.IsObject() {
		return nil, errNoEvent
	}

	event := &RemoteEvent{
		APIID:       firstString(root, "api_id", "id"),
		Name:        firstString(root, eventNameKeys...),
		Description: optional(firstString(root, eventDescriptionKeys...)),
		StartAt:     parseTime(firstString(root, eventStartKeys...)),
		EndAt:       parseTime(firstString(root, eventEndKeys...)),
		Location:    optional(firstString(root, eventLocationKeys...)),
		URL:         optional(firstString(root, eventURLKeys...)),
		CoverURL:    optional(firstString(root, eventCoverKeys...)),
	}

	return event, nil
}

// NormalizeGuests maps a raw guest list payload to RemoteGuests. The list may
// be under "entries" or "guests"; each entry may nest its fields under "guest".
// A payload without either list yields an empty slice.
func NormalizeGuests(raw []byte) ([]RemoteGuest, error) {
	if !gjson.ValidBytes(raw) {
		return nil, errInvalidPayload
	}

	root := gjson.ParseBytes(raw)
	var list gjson.Result
	for _, key := range guestListKeys {
		if r := root.Get(key); r.IsArray() {
			list = r
			break
		}
	}

	guests := []RemoteGuest{}
	list.ForEach(func(_, entry gjson.Result) bool {
		if nested := entry.Get("guest"); nested.IsObject() {
			entry = nested
		}
		guests = append(guests, RemoteGuest{
			APIID: firstString(entry, guestIDKeys...),
			Email: firstString(entry, guestEmailKeys...),
			Name:  guestName(entry),
		})
		return true
	})

	return guests, nil
}

func guestName(entry gjson.Result) string {
	if name := firstString(entry, guestNameKeys...); name != "" {
		return name
	}
	first := strings.TrimSpace(entry.Get("first_name").String())
	last := strings.TrimSpace(entry.Get("last_name").String())
	return strings.TrimSpace(first + " " + last)
}

func firstString(r gjson.Result, paths ...string) string {
	for _, p := range paths {
		v := r.Get(p)
		if v.Exists() && v.Type != gjson.Null {
			if s := strings.TrimSpace(v.String()); s != "" {
				return s
			}
		}
	}
	return ""
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// parseTime accepts RFC 3339 timestamps; anything else is dropped.
func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}

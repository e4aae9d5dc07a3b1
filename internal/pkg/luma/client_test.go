package luma

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventvault/backend/internal/pkg/apperrors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL + "/", APIKey: "secret", Timeout: 2 * time.Second}, zerolog.Nop())
}

func TestFetchEventSendsKeyAndID(t *testing.T) {
	var gotPath, gotQuery, gotKey string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("api_id")
		gotKey = r.Header.Get("x-luma-api-key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"event":{"api_id":"evt-abc123","name":"Tech Conf","start_at":"2024-07-15T09:00:00Z"}}`))
	})

	event, err := client.FetchEvent(context.Background(), "evt-abc123")
	if err != nil {
		t.Fatalf("FetchEvent() error = %v", err)
	}

	if gotPath != "/event/get" {
		t.Errorf("path = %q", gotPath)
	}
	if gotQuery != "evt-abc123" {
		t.Errorf("api_id = %q", gotQuery)
	}
	if gotKey != "secret" {
		t.Errorf("x-luma-api-key = %q", gotKey)
	}
	if event.Name != "Tech Conf" {
		t.Errorf("Name = %q", event.Name)
	}
}

func TestFetchGuests(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/event/get-guests" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"entries":[{"guest":{"api_id":"g1","email":"a@b.co","name":"A"}}]}`))
	})

	guests, err := client.FetchGuests(context.Background(), "evt-abc123")
	if err != nil {
		t.Fatalf("FetchGuests() error = %v", err)
	}
	if len(guests) != 1 || guests[0].Email != "a@b.co" {
		t.Errorf("guests = %+v", guests)
	}
}

func TestFetchEventProviderError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Event not found"}`))
	})

	_, err := client.FetchEvent(context.Background(), "evt-missing")
	if err == nil {
		t.Fatal("FetchEvent() expected an error")
	}

	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("error %T is not a *ProviderError", err)
	}
	if perr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d", perr.StatusCode)
	}
	if !strings.Contains(err.Error(), "Luma API error: 404 - ") {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, apperrors.ErrExternalService) {
		t.Error("ProviderError should match ErrExternalService")
	}
}

func TestFetchWithoutKey(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { calls++ }))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL}, zerolog.Nop())
	if _, err := client.FetchEvent(context.Background(), "evt-abc123"); err == nil {
		t.Fatal("FetchEvent() expected an error without an API key")
	}
	if calls != 0 {
		t.Errorf("server called %d times, want 0", calls)
	}
}

func TestFetchRespectsContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.FetchGuests(ctx, "evt-abc123")
	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ProviderError", err)
	}
	if perr.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0 for transport failures", perr.StatusCode)
	}
}

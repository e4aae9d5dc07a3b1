package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func fastPolicy(attempts int) Policy {
	return Policy{MaxAttempts: attempts, InitialInterval: time.Millisecond, MaxInterval: 5 * time.Millisecond}
}

func TestDoSucceedsAfterFailures(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), fastPolicy(3), zerolog.Nop(), func(context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("temporary")
		}
		return "ok", nil
	})

	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if got != "ok" || calls != 3 {
		t.Errorf("got %q after %d calls", got, calls)
	}
}

func TestDoStopsAtMaxAttempts(t *testing.T) {
	calls := 0
	boom := errors.New("boom")
	_, err := Do(context.Background(), fastPolicy(3), zerolog.Nop(), func(context.Context) (int, error) {
		calls++
		return 0, boom
	})

	if !errors.Is(err, boom) {
		t.Fatalf("Do() error = %v, want %v", err, boom)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestDoPermanentError(t *testing.T) {
	calls := 0
	bad := errors.New("bad request")
	_, err := Do(context.Background(), fastPolicy(5), zerolog.Nop(), func(context.Context) (int, error) {
		calls++
		return 0, Permanent(bad)
	})

	if !errors.Is(err, bad) {
		t.Fatalf("Do() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, permanent errors must not be retried", calls)
	}
}

func TestDoCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := Do(ctx, Policy{MaxAttempts: 5, InitialInterval: time.Second, MaxInterval: time.Second}, zerolog.Nop(), func(context.Context) (int, error) {
		calls++
		return 0, errors.New("temporary")
	})

	if err == nil {
		t.Fatal("Do() expected an error")
	}
	if calls > 1 {
		t.Errorf("calls = %d, a canceled context should stop retries", calls)
	}
}

package retry

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	kiterrors "github.com/kbukum/oauthkit/errors"
)

func fastConfig() Config {
	cfg := DefaultConfig()
	cfg.InitialBackoff = time.Millisecond
	cfg.MaxBackoff = 5 * time.Millisecond
	return cfg
}

func TestDoSucceedsFirstAttempt(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), fastConfig(), func() (string, error) {
		calls++
		return "token", nil
	})
	if err != nil || got != "token" {
		t.Fatalf("got %q, %v", got, err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestDoRetriesTransportErrors(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), fastConfig(), func() (string, error) {
		calls++
		if calls < 3 {
			return "", kiterrors.Transport(&net.OpError{Op: "dial", Err: errors.New("refused")})
		}
		return "token", nil
	})
	if err != nil || got != "token" {
		t.Fatalf("got %q, %v", got, err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestDoStopsOnNonRetryableError(t *testing.T) {
	calls := 0
	denial := kiterrors.OAuth("invalid_client", "unknown client", 401)
	_, err := Do(context.Background(), fastConfig(), func() (string, error) {
		calls++
		return "", denial
	})
	if !errors.Is(err, denial) {
		t.Fatalf("err = %v, want the OAuth denial", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry on denial)", calls)
	}
}

func TestDoExhaustsAttempts(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), fastConfig(), func() (string, error) {
		calls++
		return "", kiterrors.Transport(errors.New("down"))
	})
	if !kiterrors.IsTransport(err) {
		t.Fatalf("err = %v, want last transport error", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestDoRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := Do(ctx, fastConfig(), func() (string, error) {
		calls++
		return "", kiterrors.Transport(errors.New("down"))
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if calls != 0 {
		t.Errorf("calls = %d, want 0", calls)
	}
}

func TestDoCancelledDuringBackoff(t *testing.T) {
	cfg := fastConfig()
	cfg.InitialBackoff = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	done := make(chan error, 1)
	go func() {
		_, err := Do(ctx, cfg, func() (string, error) {
			calls++
			return "", kiterrors.Transport(errors.New("down"))
		})
		done <- err
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("err = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Do did not return after cancellation")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestOnRetryObservesAttempts(t *testing.T) {
	cfg := fastConfig()
	var attempts []int
	cfg.OnRetry = func(attempt int, err error, backoff time.Duration) {
		attempts = append(attempts, attempt)
	}

	calls := 0
	_, _ = Do(context.Background(), cfg, func() (string, error) {
		calls++
		return "", kiterrors.Timeout(errors.New("deadline"))
	})
	if len(attempts) != 2 || attempts[0] != 1 || attempts[1] != 2 {
		t.Errorf("attempts = %v, want [1 2]", attempts)
	}
}

func TestDoFunc(t *testing.T) {
	calls := 0
	err := DoFunc(context.Background(), fastConfig(), func() error {
		calls++
		if calls < 2 {
			return kiterrors.Timeout(errors.New("slow"))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("DoFunc: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestBackoffGrowthAndCap(t *testing.T) {
	cfg := Config{
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     300 * time.Millisecond,
		BackoffFactor:  2.0,
	}
	if got := calculateBackoff(1, cfg); got != 100*time.Millisecond {
		t.Errorf("attempt 1 backoff = %v", got)
	}
	if got := calculateBackoff(2, cfg); got != 200*time.Millisecond {
		t.Errorf("attempt 2 backoff = %v", got)
	}
	if got := calculateBackoff(5, cfg); got != 300*time.Millisecond {
		t.Errorf("attempt 5 backoff = %v, want cap", got)
	}
}

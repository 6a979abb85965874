package misc

import (
	"context"
	"errors"
	"testing"
	"time"
)

var (
	errRetriable = errors.New("retriable")
	errPermanent = errors.New("permanent")
)

func isRetriable(err error) bool {
	return errors.Is(err, errRetriable)
}

func TestRetry(t *testing.T) {
	t.Parallel()

	short := []time.Duration{time.Millisecond, time.Millisecond}

	tests := []struct {
		wantErr      error
		name         string
		steps        []error
		wantAttempts int
	}{
		{name: "first try ok", steps: []error{nil}, wantAttempts: 1},
		{name: "recovers after retries", steps: []error{errRetriable, errRetriable, nil}, wantAttempts: 3},
		{name: "permanent stops early", steps: []error{errPermanent}, wantErr: errPermanent, wantAttempts: 1},
		{name: "schedule exhausted", steps: []error{errRetriable, errRetriable, errRetriable}, wantErr: errRetriable, wantAttempts: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			attempts := 0
			op := func() error {
				idx := attempts
				if idx >= len(tt.steps) {
					idx = len(tt.steps) - 1
				}
				attempts++
				return tt.steps[idx]
			}
			err := Retry(context.Background(), short, isRetriable, op)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Retry err = %v, want %v", err, tt.wantErr)
			}
			if attempts != tt.wantAttempts {
				t.Fatalf("attempts = %d, want %d", attempts, tt.wantAttempts)
			}
		})
	}
}

func TestRetryContextCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Retry(ctx, DefaultBackoff, isRetriable, func() error { return errRetriable })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Retry err = %v, want context.Canceled", err)
	}
}

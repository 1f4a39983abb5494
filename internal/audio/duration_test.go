package audio

import (
	"context"
	"errors"
	"testing"
)

func withStubProbe(t *testing.T, fn func(context.Context, string) (float64, error)) {
	t.Helper()
	orig := runProbe
	runProbe = fn
	t.Cleanup(func() { runProbe = orig })
}

func TestCheckDurationWithinLimit(t *testing.T) {
	withStubProbe(t, func(ctx context.Context, path string) (float64, error) {
		return 120, nil
	})

	if !CheckDuration(context.Background(), []byte("audio"), 300) {
		t.Fatal("120s should pass a 300s limit")
	}
}

func TestCheckDurationOverLimit(t *testing.T) {
	withStubProbe(t, func(ctx context.Context, path string) (float64, error) {
		return 301.2, nil
	})

	if CheckDuration(context.Background(), []byte("audio"), 300) {
		t.Fatal("301.2s should fail a 300s limit")
	}
}

func TestCheckDurationExactLimit(t *testing.T) {
	withStubProbe(t, func(ctx context.Context, path string) (float64, error) {
		return 300, nil
	})

	if !CheckDuration(context.Background(), []byte("audio"), 300) {
		t.Fatal("exactly 300s should pass a 300s limit")
	}
}

func TestCheckDurationFailsClosedOnProbeError(t *testing.T) {
	withStubProbe(t, func(ctx context.Context, path string) (float64, error) {
		return 0, errors.New("undecodable")
	})

	if CheckDuration(context.Background(), []byte("not audio"), 300) {
		t.Fatal("undecodable files must be rejected")
	}
}

func TestCheckDurationFailsClosedOnEmptyPayload(t *testing.T) {
	withStubProbe(t, func(ctx context.Context, path string) (float64, error) {
		t.Fatal("probe should not run for empty payloads")
		return 0, nil
	})

	if CheckDuration(context.Background(), nil, 300) {
		t.Fatal("empty payload must be rejected")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{61, "1:01"},
		{125.4, "2:05"},
		{359.6, "6:00"},
		{-5, "0:00"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.seconds); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

package utils

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestSleepWaitsAtLeastDuration(t *testing.T) {
	d := 50 * time.Millisecond
	start := time.Now()
	if err := Sleep(context.Background(), d); err != nil {
		t.Fatalf("Sleep: %v", err)
	}
	if gap := time.Since(start); gap < d {
		t.Errorf("Sleep returned after %v < minimum %v", gap, d)
	}
}

func TestSleepZeroReturnsImmediately(t *testing.T) {
	start := time.Now()
	if err := Sleep(context.Background(), 0); err != nil {
		t.Fatalf("Sleep(0): %v", err)
	}
	if gap := time.Since(start); gap > 50*time.Millisecond {
		t.Errorf("Sleep(0) took %v", gap)
	}
}

func TestSleepCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := Sleep(ctx, time.Minute)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Sleep on cancelled ctx: got %v, want context.Canceled", err)
	}
	if time.Since(start) > time.Second {
		t.Error("Sleep should return promptly once ctx is done")
	}

	if err := Sleep(ctx, 0); !errors.Is(err, context.Canceled) {
		t.Errorf("Sleep(0) on cancelled ctx: got %v, want context.Canceled", err)
	}
}

func TestLoggerWithPrefix(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := NewLoggerTo(&out, &errOut).With("rent591")

	logger.Info("Found %d houses", 3)
	logger.Error("boom")

	if !strings.Contains(out.String(), "[rent591] Found 3 houses") {
		t.Errorf("info output missing prefix/message: %q", out.String())
	}
	if !strings.Contains(errOut.String(), "[rent591] boom") {
		t.Errorf("error output missing prefix/message: %q", errOut.String())
	}
	if strings.Contains(out.String(), "boom") {
		t.Error("errors should not be written to the info stream")
	}
}

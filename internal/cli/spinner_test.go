package cli

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/hclayout/pkg/observability"
)

func TestSpinnerBasic(t *testing.T) {
	s := newSpinner("Testing...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinnerWithContext(ctx, "Testing with context...")
	s.Start()

	// Cancel the context
	cancel()

	// Give goroutine time to notice cancellation
	time.Sleep(100 * time.Millisecond)

	// Spinner should be cancelled
	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
}

func TestSpinnerWithTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := newSpinnerWithContext(ctx, "Testing with timeout...")
	s.Start()

	// Wait for timeout
	time.Sleep(100 * time.Millisecond)

	// Spinner should be cancelled due to timeout
	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context timeout")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner("Testing idempotent stop...")
	s.Start()

	// Stop multiple times should not panic
	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithSuccess(t *testing.T) {
	s := newSpinner("Testing success...")
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithSuccess("Done!")
}

func TestSpinnerStopWithError(t *testing.T) {
	s := newSpinner("Testing error...")
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithError("Failed!")
}

func TestNewSpinnerWithContextNilParent(t *testing.T) {
	s := newSpinnerWithContext(context.Background(), "Test")
	s.Start()
	s.Stop()
}

func TestSpinnerUpdate(t *testing.T) {
	s := newSpinner("first")
	s.Start()
	s.Update("second")
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	if s.message != "second" {
		t.Errorf("message = %q, want %q", s.message, "second")
	}
}

func TestFollowLevels(t *testing.T) {
	defer observability.Reset()
	s := newSpinner("layout")
	restore := followLevels(s)

	observability.Layout().OnLevel(context.Background(), 1, 40, 6, time.Millisecond)
	if !strings.Contains(s.message, "Level 1: 40 nodes in 6 communities") {
		t.Errorf("message = %q", s.message)
	}

	restore()
	if _, ok := observability.Layout().(levelHooks); ok {
		t.Error("restore did not reinstall the previous hooks")
	}
}

package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinnerDrawsMessage(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinnerTo(context.Background(), &buf, "Building learning path...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	out := buf.String()
	if !strings.Contains(out, "Building learning path...") {
		t.Errorf("spinner output %q should contain the message", out)
	}
	// The last write clears the line.
	if !strings.HasSuffix(out, "\r") {
		t.Errorf("spinner output should end by clearing the line, got %q", out)
	}
}

func TestSpinnerCancelledByContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinnerTo(ctx, &bytes.Buffer{}, "Waiting...")
	s.Start()
	if s.Cancelled() {
		t.Fatal("spinner should not start cancelled")
	}

	cancel()
	time.Sleep(50 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("spinner should be cancelled after context cancellation")
	}
	s.Stop()
}

func TestSpinnerTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := newSpinnerTo(ctx, &bytes.Buffer{}, "Waiting...")
	s.Start()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("spinner should be cancelled after context timeout")
	}
}

func TestSpinnerStop(t *testing.T) {
	tests := []struct {
		name string
		stop func(*Spinner)
	}{
		{"repeated", func(s *Spinner) { s.Stop(); s.Stop(); s.Stop() }},
		{"success", func(s *Spinner) { s.StopWithSuccess("Done") }},
		{"error", func(s *Spinner) { s.StopWithError("Failed") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSpinnerTo(context.Background(), &bytes.Buffer{}, "Working...")
			s.Start()
			tt.stop(s)
			if !s.Cancelled() {
				t.Error("stopped spinner should report Cancelled")
			}
		})
	}
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	s := newSpinner("Never started")
	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop without Start should return immediately")
	}
}

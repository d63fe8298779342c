package commands

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerLifecycle_StopWithSuccess(t *testing.T) {
	var out syncBuffer
	s := newSpinner(&out, "Connecting", true)
	s.start()
	// Let it spin briefly
	time.Sleep(200 * time.Millisecond)
	s.stopWithSuccess("done")

	got := out.String()
	if !strings.Contains(got, "Connecting") {
		t.Errorf("expected a rendered frame, got %q", got)
	}
	if !strings.Contains(got, "✓") || !strings.Contains(got, "done") {
		t.Errorf("expected success line, got %q", got)
	}
}

func TestSpinnerLifecycle_StopWithError(t *testing.T) {
	var out syncBuffer
	s := newSpinner(&out, "Connecting", true)
	s.start()
	time.Sleep(30 * time.Millisecond)
	// Should stop cleanly on error (no panic)
	s.stopWithError()
	s.stopWithError()

	if strings.Contains(out.String(), "✓") {
		t.Errorf("error stop should not print success, got %q", out.String())
	}
}

func TestSpinner_Quiet(t *testing.T) {
	var out syncBuffer
	s := newSpinner(&out, "Sending", false)
	s.start()
	s.stopWithSuccess("Sent")

	if out.String() != "" {
		t.Errorf("quiet spinner wrote %q", out.String())
	}
}

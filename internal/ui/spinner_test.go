package ui

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

// lockedBuffer guards the buffer the spinner goroutine writes to.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerDisabledIsNoop(t *testing.T) {
	var out lockedBuffer
	s := newSpinner(&out, "indexing", false)

	s.Start()
	s.Stop()
	s.Stop()

	if got := out.String(); got != "" {
		t.Fatalf("expected no output, got %q", got)
	}
}

func TestSpinnerClearsLineOnStop(t *testing.T) {
	var out lockedBuffer
	s := newSpinner(&out, "indexing", true)

	s.Start()
	time.Sleep(4 * spinnerInterval)
	s.Stop()
	s.Stop()

	got := out.String()
	if !strings.Contains(got, "indexing") {
		t.Fatalf("expected message in output, got %q", got)
	}
	if !strings.HasSuffix(got, "\r\033[K") {
		t.Fatalf("expected line clear at end, got %q", got)
	}
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	var out lockedBuffer
	s := newSpinner(&out, "indexing", true)
	s.Stop()

	if got := out.String(); got != "" {
		t.Fatalf("expected no output, got %q", got)
	}
}

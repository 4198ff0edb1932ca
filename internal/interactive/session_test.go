package interactive

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer lets the test poll output concurrently with the Host's
// background "go" goroutine without racing on bytes.Buffer directly.
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

func (b *syncBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

func TestLevelThenGoReportsSolved(t *testing.T) {
	out := &syncBuffer{}
	h := NewHost(out)
	in := strings.NewReader("level #####\\n#@$.#\\n#####\ngo\n")
	h.Run(in)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && !strings.Contains(out.String(), "solved") {
		time.Sleep(10 * time.Millisecond)
	}
	got := out.String()
	if !strings.Contains(got, "levelok") {
		t.Errorf("expected levelok in output, got %q", got)
	}
	if !strings.Contains(got, "solved") {
		t.Errorf("expected a solved reply, got %q", got)
	}
}

func TestGoWithoutLevelReportsError(t *testing.T) {
	out := &syncBuffer{}
	h := NewHost(out)
	h.Run(strings.NewReader("go\n"))
	if !strings.Contains(out.String(), "error no level loaded") {
		t.Errorf("expected an error reply, got %q", out.String())
	}
}

func TestBoardRendersCoordinateHeader(t *testing.T) {
	out := &syncBuffer{}
	h := NewHost(out)
	h.Run(strings.NewReader("level #####\\n#@$.#\\n#####\n"))
	out.Reset()
	h.Run(strings.NewReader("board\n"))
	got := out.String()
	if !strings.Contains(got, "@") || !strings.Contains(got, "$") {
		t.Errorf("expected rendered board with player and box glyphs, got %q", got)
	}
	if !strings.HasPrefix(got, "   01234\n") {
		t.Errorf("expected a column header row, got %q", got)
	}
}

func TestDeadlockReportsTrueForDeadBox(t *testing.T) {
	out := &syncBuffer{}
	h := NewHost(out)
	h.Run(strings.NewReader("level ####\\n#$.#\\n#@ #\\n####\n"))
	if !strings.Contains(out.String(), "levelok") {
		t.Fatalf("level failed to load: %q", out.String())
	}
	out.Reset()
	h.Run(strings.NewReader("deadlock\n"))
	if !strings.Contains(out.String(), "deadlock true") {
		t.Errorf("expected deadlock true, got %q", out.String())
	}
}

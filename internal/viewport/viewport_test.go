package viewport

import (
	"sync"
	"testing"
	"time"
)

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		width int
		want  Breakpoint
	}{
		{0, Mobile},
		{320, Mobile},
		{767, Mobile},
		{768, Tablet},
		{1023, Tablet},
		{1024, Desktop},
		{2560, Desktop},
	}
	for _, tt := range tests {
		if got := Classify(tt.width); got != tt.want {
			t.Errorf("Classify(%d) = %q, want %q", tt.width, got, tt.want)
		}
	}
}

// recorder collects published tier changes for assertions.
type recorder struct {
	mu      sync.Mutex
	changes [][2]Breakpoint
}

func (r *recorder) observe(prev, next Breakpoint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, [2]Breakpoint{prev, next})
}

func (r *recorder) snapshot() [][2]Breakpoint {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][2]Breakpoint, len(r.changes))
	copy(out, r.changes)
	return out
}

const testWindow = 20 * time.Millisecond

// settle waits long enough for a pending classification to fire.
func settle() { time.Sleep(4 * testWindow) }

func TestClassifierPublishesDebouncedChange(t *testing.T) {
	c := NewClassifier(1280, testWindow)
	defer c.Close()

	rec := &recorder{}
	c.OnChange(rec.observe)

	c.Report(500)
	settle()

	if got := c.Current(); got != Mobile {
		t.Errorf("Current = %q, want mobile", got)
	}
	changes := rec.snapshot()
	if len(changes) != 1 {
		t.Fatalf("changes = %v, want exactly one", changes)
	}
	if changes[0] != [2]Breakpoint{Desktop, Mobile} {
		t.Errorf("change = %v, want desktop -> mobile", changes[0])
	}
}

func TestClassifierCoalescesBursts(t *testing.T) {
	c := NewClassifier(1280, testWindow)
	defer c.Close()

	rec := &recorder{}
	c.OnChange(rec.observe)

	// A burst of reports within one window: only the last width counts.
	for _, w := range []int{500, 600, 700, 800, 900} {
		c.Report(w)
	}
	settle()

	if got := c.Current(); got != Tablet {
		t.Errorf("Current = %q, want tablet (last width 900)", got)
	}
	if changes := rec.snapshot(); len(changes) != 1 {
		t.Errorf("changes = %v, want exactly one update for the burst", changes)
	}
}

func TestClassifierSuppressesRedundantUpdates(t *testing.T) {
	c := NewClassifier(900, testWindow)
	defer c.Close()

	rec := &recorder{}
	c.OnChange(rec.observe)

	// Resizes within the tablet band never cross a threshold.
	c.Report(800)
	settle()
	c.Report(1000)
	settle()

	if changes := rec.snapshot(); len(changes) != 0 {
		t.Errorf("changes = %v, want none for same-tier resizes", changes)
	}
	if got := c.Current(); got != Tablet {
		t.Errorf("Current = %q, want tablet", got)
	}
}

func TestClassifierCloseCancelsPending(t *testing.T) {
	c := NewClassifier(1280, testWindow)

	rec := &recorder{}
	c.OnChange(rec.observe)

	c.Report(500)
	c.Close()
	settle()

	if changes := rec.snapshot(); len(changes) != 0 {
		t.Errorf("changes = %v, want none after Close", changes)
	}
}

func TestClassifierSequentialQuietPeriods(t *testing.T) {
	c := NewClassifier(500, testWindow)
	defer c.Close()

	rec := &recorder{}
	c.OnChange(rec.observe)

	c.Report(800)
	settle()
	c.Report(1100)
	settle()

	changes := rec.snapshot()
	if len(changes) != 2 {
		t.Fatalf("changes = %v, want two", changes)
	}
	if changes[0] != [2]Breakpoint{Mobile, Tablet} || changes[1] != [2]Breakpoint{Tablet, Desktop} {
		t.Errorf("changes = %v, want mobile->tablet then tablet->desktop", changes)
	}
}

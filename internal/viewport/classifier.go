package viewport

import (
	"sync"
	"time"

	"github.com/calegray/siteshell/internal/debounce"
)

// ChangeFunc observes a published tier change.
type ChangeFunc func(prev, next Breakpoint)

// Classifier is the stateful wrapper around Classify. Width reports are
// coalesced through a debounce window; only the last width of a quiet period
// is classified, and subscribers hear about it only when the tier actually
// changes.
type Classifier struct {
	mu        sync.Mutex
	current   Breakpoint
	observers []ChangeFunc
	debouncer *debounce.Debouncer[int]
}

// NewClassifier creates a Classifier starting at the tier for initialWidth.
// A zero window uses the default 100 ms.
func NewClassifier(initialWidth int, window time.Duration) *Classifier {
	c := &Classifier{current: Classify(initialWidth)}
	c.debouncer = debounce.New(window, c.apply)
	return c
}

// Current returns the published tier.
func (c *Classifier) Current() Breakpoint {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// OnChange registers an observer for published tier changes. Observers are
// called in registration order, outside the classifier lock.
func (c *Classifier) OnChange(fn ChangeFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

// Report feeds a width-change notification into the debounce window.
func (c *Classifier) Report(width int) {
	c.debouncer.Schedule(width)
}

// Close cancels any pending classification.
func (c *Classifier) Close() {
	c.debouncer.Cancel()
}

// apply publishes the classification of the final width of a quiet period.
// A resize that does not cross a threshold produces no notification.
func (c *Classifier) apply(width int) {
	next := Classify(width)

	c.mu.Lock()
	prev := c.current
	if next == prev {
		c.mu.Unlock()
		return
	}
	c.current = next
	observers := make([]ChangeFunc, len(c.observers))
	copy(observers, c.observers)
	c.mu.Unlock()

	for _, fn := range observers {
		fn(prev, next)
	}
}

// Package disclosure models the open/closed state of the mobile navigation
// panel.
package disclosure

import (
	"sync"

	"github.com/calegray/siteshell/internal/viewport"
)

// Machine is a two-state machine: closed (initial and terminal) and open.
// Every transition is synchronous and total; there is no pending state.
// While open, the host is expected to suppress background scrolling and trap
// focus inside the panel.
type Machine struct {
	mu     sync.Mutex
	isOpen bool
}

// New creates a Machine in the closed state.
func New() *Machine {
	return &Machine{}
}

// IsOpen reports whether the panel is disclosed.
func (m *Machine) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isOpen
}

// AriaExpanded returns the aria-expanded attribute value for the trigger.
func (m *Machine) AriaExpanded() string {
	if m.IsOpen() {
		return "true"
	}
	return "false"
}

// Toggle flips between open and closed.
func (m *Machine) Toggle() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.isOpen = !m.isOpen
}

// Open discloses the panel.
func (m *Machine) Open() { m.set(true) }

// Close dismisses the panel.
func (m *Machine) Close() { m.set(false) }

// HandleEscape dismisses the panel on an escape key press.
func (m *Machine) HandleEscape() { m.set(false) }

// HandleOutsideInteraction dismisses the panel when the user interacts
// outside it.
func (m *Machine) HandleOutsideInteraction() { m.set(false) }

// RouteChanged force-closes the panel on navigation.
func (m *Machine) RouteChanged() { m.set(false) }

// BreakpointChanged force-closes the panel when the viewport leaves the
// mobile tier; a mobile nav makes no sense on larger viewports.
func (m *Machine) BreakpointChanged(prev, next viewport.Breakpoint) {
	if prev == viewport.Mobile && next != viewport.Mobile {
		m.set(false)
	}
}

func (m *Machine) set(open bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.isOpen = open
}

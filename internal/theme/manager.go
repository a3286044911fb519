package theme

import (
	"fmt"
	"sync"
)

// DefaultStorageKey is the preference-slot key used when none is configured.
const DefaultStorageKey = "siteshell.theme"

// ChangeFunc observes a change of the resolved theme.
type ChangeFunc func(Resolved)

// Manager combines the explicit user choice, the stored preference, and the
// live system dark-mode signal into one authoritative resolved theme.
//
// Store failures are never fatal: the manager falls back to the system
// preference and surfaces the error through HasError/Err.
type Manager struct {
	store Store
	key   string

	mu         sync.Mutex
	preference Preference
	systemDark bool
	err        error
	observers  []ChangeFunc
}

// NewManager reads the stored preference and builds a Manager. An absent or
// invalid stored value defaults to system; a read failure additionally sets
// the error flag.
func NewManager(store Store, key string, systemDark bool) *Manager {
	if key == "" {
		key = DefaultStorageKey
	}
	m := &Manager{store: store, key: key, preference: PreferenceSystem, systemDark: systemDark}

	stored, ok, err := store.Get(key)
	if err != nil {
		m.err = fmt.Errorf("theme store unavailable: %w", err)
		return m
	}
	if ok && ValidPreference(stored) {
		m.preference = Preference(stored)
	}
	return m
}

// Preference returns the current user-facing knob value.
func (m *Manager) Preference() Preference {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.preference
}

// Resolved returns the concrete theme to apply.
func (m *Manager) Resolved() Resolved {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resolveLocked()
}

func (m *Manager) resolveLocked() Resolved {
	switch m.preference {
	case PreferenceLight:
		return ResolvedLight
	case PreferenceDark:
		return ResolvedDark
	case PreferenceHighContrast:
		return ResolvedHighContrast
	default: // system
		if m.systemDark {
			return ResolvedDark
		}
		return ResolvedLight
	}
}

// HasError reports whether the manager is operating degraded after a store
// failure.
func (m *Manager) HasError() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err != nil
}

// Err returns the surfaced store error, if any.
func (m *Manager) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

// OnChange registers an observer for resolved-theme changes.
func (m *Manager) OnChange(fn ChangeFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, fn)
}

// SetTheme validates and applies a preference, persisting it to the store.
// Invalid values are rejected with ErrInvalidTheme and no state change.
func (m *Manager) SetTheme(value string) error {
	if !ValidPreference(value) {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, value)
	}
	m.setPreference(Preference(value))
	return nil
}

// ToggleTheme flips between light and dark. Any other resolved theme
// normalizes to light first so the output is deterministic.
func (m *Manager) ToggleTheme() {
	m.mu.Lock()
	resolved := m.resolveLocked()
	m.mu.Unlock()

	switch resolved {
	case ResolvedLight:
		m.setPreference(PreferenceDark)
	case ResolvedDark:
		m.setPreference(PreferenceLight)
	default:
		// high-contrast normalizes to light first
		m.setPreference(PreferenceLight)
	}
}

// CycleTheme advances through light, dark, high-contrast, system, wrapping
// at the end.
func (m *Manager) CycleTheme() {
	m.mu.Lock()
	current := m.preference
	m.mu.Unlock()

	for i, p := range cycleOrder {
		if p == current {
			m.setPreference(cycleOrder[(i+1)%len(cycleOrder)])
			return
		}
	}
	m.setPreference(cycleOrder[0])
}

// ResetToSystem sets the preference to system and nothing else.
func (m *Manager) ResetToSystem() {
	m.setPreference(PreferenceSystem)
}

// ClearStoredTheme removes the persisted preference. The in-memory state is
// untouched: the next start-up falls back to system.
func (m *Manager) ClearStoredTheme() error {
	if err := m.store.Remove(m.key); err != nil {
		m.mu.Lock()
		m.err = fmt.Errorf("theme store unavailable: %w", err)
		m.mu.Unlock()
		return err
	}
	return nil
}

// SetSystemDark feeds the live OS dark-mode signal. Re-resolves only when
// the preference defers to the system.
func (m *Manager) SetSystemDark(dark bool) {
	m.mu.Lock()
	before := m.resolveLocked()
	m.systemDark = dark
	after := m.resolveLocked()
	observers := m.snapshotObserversLocked()
	m.mu.Unlock()

	if before != after {
		for _, fn := range observers {
			fn(after)
		}
	}
}

// setPreference applies and persists a validated preference, notifying
// observers when the resolved theme changes. Persistence failures degrade to
// the error flag; the in-memory change still applies.
func (m *Manager) setPreference(p Preference) {
	m.mu.Lock()
	before := m.resolveLocked()
	m.preference = p
	after := m.resolveLocked()
	observers := m.snapshotObserversLocked()
	m.mu.Unlock()

	if err := m.store.Set(m.key, string(p)); err != nil {
		m.mu.Lock()
		m.err = fmt.Errorf("theme store unavailable: %w", err)
		m.mu.Unlock()
	}

	if before != after {
		for _, fn := range observers {
			fn(after)
		}
	}
}

func (m *Manager) snapshotObserversLocked() []ChangeFunc {
	out := make([]ChangeFunc, len(m.observers))
	copy(out, m.observers)
	return out
}

package theme

import "errors"

// Preference is the user-facing theme knob. "system" defers to the live OS
// dark-mode signal.
type Preference string

const (
	PreferenceLight        Preference = "light"
	PreferenceDark         Preference = "dark"
	PreferenceHighContrast Preference = "high-contrast"
	PreferenceSystem       Preference = "system"
)

// cycleOrder is the sequence CycleTheme advances through, wrapping at the end.
var cycleOrder = []Preference{PreferenceLight, PreferenceDark, PreferenceHighContrast, PreferenceSystem}

// Resolved is the concrete theme actually applied. Never "system": a system
// preference resolves against the live signal before reaching consumers.
type Resolved string

const (
	ResolvedLight        Resolved = "light"
	ResolvedDark         Resolved = "dark"
	ResolvedHighContrast Resolved = "high-contrast"
)

// ErrInvalidTheme rejects a SetTheme argument outside the preference enum.
// The manager's state is unchanged when it is returned.
var ErrInvalidTheme = errors.New("invalid theme value")

// ValidPreference reports whether v is a member of the preference enum.
func ValidPreference(v string) bool {
	switch Preference(v) {
	case PreferenceLight, PreferenceDark, PreferenceHighContrast, PreferenceSystem:
		return true
	}
	return false
}

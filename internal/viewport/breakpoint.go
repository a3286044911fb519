// Package viewport classifies raw viewport widths into responsive tiers.
package viewport

// Breakpoint is a named responsive tier.
type Breakpoint string

const (
	Mobile  Breakpoint = "mobile"
	Tablet  Breakpoint = "tablet"
	Desktop Breakpoint = "desktop"
)

// Width thresholds: mobile < TabletMinWidth <= tablet < DesktopMinWidth <= desktop.
const (
	TabletMinWidth  = 768
	DesktopMinWidth = 1024
)

// Classify maps a width in pixels to its tier. Pure threshold lookup.
func Classify(width int) Breakpoint {
	switch {
	case width < TabletMinWidth:
		return Mobile
	case width < DesktopMinWidth:
		return Tablet
	default:
		return Desktop
	}
}

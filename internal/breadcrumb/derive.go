package breadcrumb

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/calegray/siteshell/internal/nav"
)

// MaxSegments caps the trail length. Longer trails are compressed in the
// middle so "Home … Parent > Current" stays legible.
const MaxSegments = 5

// EllipsisLabel marks the compressed middle of a truncated trail. The
// ellipsis segment is never clickable.
const EllipsisLabel = "…"

const homeLabel = "Home"

// Deriver computes breadcrumb trails against a navigation tree. Routes
// matching one of the exclude globs produce a home-style empty trail.
type Deriver struct {
	tree    *nav.Tree
	exclude []string
}

// NewDeriver creates a Deriver for the given tree. Exclude patterns use
// doublestar glob syntax (e.g. "/legal/**") and may be nil.
func NewDeriver(tree *nav.Tree, exclude []string) *Deriver {
	return &Deriver{tree: tree, exclude: exclude}
}

// Derive computes the trail for path. The root path yields IsHomePage=true
// with no segments; callers must suppress breadcrumb display entirely in that
// case. Unregistered routes fall back to a humanized label for the final
// segment so the trail never silently disappears.
func (d *Deriver) Derive(path string) Trail {
	if path == "/" || path == "" {
		return Trail{Segments: []Segment{}, FullPath: path, IsHomePage: true}
	}
	if d.excluded(path) {
		return Trail{Segments: []Segment{}, FullPath: path, IsHomePage: false}
	}

	segments := []Segment{{Label: homeLabel, Href: "/"}}

	// Walk the strict prefixes of the path, e.g. /services/tax -> /services.
	for _, prefix := range strictPrefixes(path) {
		if it, ok := d.tree.FindByHref(prefix); ok {
			segments = append(segments, Segment{Label: it.Label, Href: it.Href})
		}
	}

	// The full path itself becomes the active, non-clickable final segment.
	var current string
	if it, ok := d.tree.FindByHref(path); ok {
		current = it.Label
	} else {
		current = Humanize(path)
	}
	segments = append(segments, Segment{Label: current, IsActive: true})

	segments = truncate(segments)

	return Trail{
		Segments:       segments,
		CurrentPage:    current,
		FullPath:       path,
		IsHomePage:     false,
		StructuredData: structuredData(segments),
	}
}

func (d *Deriver) excluded(path string) bool {
	for _, pattern := range d.exclude {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
	}
	return false
}

// strictPrefixes returns the slash-delimited prefixes of path, excluding the
// path itself: /a/b/c -> [/a, /a/b].
func strictPrefixes(path string) []string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	var prefixes []string
	for i := 1; i < len(parts); i++ {
		prefixes = append(prefixes, "/"+strings.Join(parts[:i], "/"))
	}
	return prefixes
}

// Humanize derives a display label from the last component of a path:
// hyphens become spaces and each word is capitalized, so
// "/services/estate-planning" -> "Estate Planning".
func Humanize(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	last := parts[len(parts)-1]
	words := strings.Split(strings.ReplaceAll(last, "-", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// truncate compresses trails longer than MaxSegments. The rule: keep the
// first segment (Home), insert one ellipsis segment, keep the last three.
// The end of the trail is never cut.
func truncate(segments []Segment) []Segment {
	if len(segments) <= MaxSegments {
		return segments
	}
	out := make([]Segment, 0, MaxSegments)
	out = append(out, segments[0])
	out = append(out, Segment{Label: EllipsisLabel})
	out = append(out, segments[len(segments)-3:]...)
	return out
}

// structuredData mirrors the segments 1:1 as a schema.org BreadcrumbList.
// The active segment contributes no item link; neither does the ellipsis.
func structuredData(segments []Segment) *BreadcrumbList {
	list := &BreadcrumbList{
		Context:         "https://schema.org",
		Type:            "BreadcrumbList",
		ItemListElement: make([]ListItem, 0, len(segments)),
	}
	for i, seg := range segments {
		li := ListItem{Type: "ListItem", Position: i + 1, Name: seg.Label}
		if !seg.IsActive {
			li.Item = seg.Href
		}
		list.ItemListElement = append(list.ItemListElement, li)
	}
	return list
}

// Sanitize drops segments that are neither clickable nor active. The deriver
// itself does not produce such segments; this guards the consumption boundary
// against partially malformed upstream configuration. The ellipsis marker is
// kept.
func Sanitize(segments []Segment) []Segment {
	out := make([]Segment, 0, len(segments))
	for _, seg := range segments {
		if seg.Href == "" && !seg.IsActive && seg.Label != EllipsisLabel {
			continue
		}
		out = append(out, seg)
	}
	return out
}

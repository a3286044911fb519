package breadcrumb

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/calegray/siteshell/internal/nav"
)

func testTree(t *testing.T) *nav.Tree {
	t.Helper()
	tree, err := nav.NewTree([]nav.Item{
		{ID: "home", Label: "Home", Href: "/", Order: 0},
		{ID: "services", Label: "Services", Href: "/services", Order: 1, Children: []nav.Item{
			{ID: "tax", Label: "Tax Services", Href: "/services/tax", Order: 0},
		}},
		{ID: "about", Label: "About", Href: "/about", Order: 2},
	})
	if err != nil {
		t.Fatalf("NewTree: %v", err)
	}
	return tree
}

func TestDeriveHomePage(t *testing.T) {
	d := NewDeriver(testTree(t), nil)

	trail := d.Derive("/")
	if !trail.IsHomePage {
		t.Error("IsHomePage = false, want true")
	}
	if len(trail.Segments) != 0 {
		t.Errorf("segments = %v, want empty", trail.Segments)
	}
}

func TestDeriveRegisteredRoute(t *testing.T) {
	d := NewDeriver(testTree(t), nil)

	trail := d.Derive("/services/tax")

	want := []Segment{
		{Label: "Home", Href: "/"},
		{Label: "Services", Href: "/services"},
		{Label: "Tax Services", IsActive: true},
	}
	if !reflect.DeepEqual(trail.Segments, want) {
		t.Errorf("segments = %+v, want %+v", trail.Segments, want)
	}
	if trail.CurrentPage != "Tax Services" {
		t.Errorf("CurrentPage = %q, want %q", trail.CurrentPage, "Tax Services")
	}
	if trail.FullPath != "/services/tax" {
		t.Errorf("FullPath = %q", trail.FullPath)
	}
	if trail.IsHomePage {
		t.Error("IsHomePage = true, want false")
	}
}

func TestDeriveLastSegmentAlwaysActive(t *testing.T) {
	d := NewDeriver(testTree(t), nil)

	for _, path := range []string{"/about", "/services", "/services/tax", "/unknown", "/a/b/c/d/e/f"} {
		trail := d.Derive(path)
		if len(trail.Segments) == 0 {
			t.Fatalf("Derive(%q): no segments", path)
		}
		last := trail.Segments[len(trail.Segments)-1]
		if !last.IsActive {
			t.Errorf("Derive(%q): last segment not active: %+v", path, last)
		}
		if last.Href != "" {
			t.Errorf("Derive(%q): active segment has href %q", path, last.Href)
		}
		for _, seg := range trail.Segments[:len(trail.Segments)-1] {
			if seg.IsActive {
				t.Errorf("Derive(%q): non-final segment marked active: %+v", path, seg)
			}
		}
	}
}

func TestDeriveUnregisteredRouteHumanizesLabel(t *testing.T) {
	d := NewDeriver(testTree(t), nil)

	trail := d.Derive("/services/estate-planning")
	last := trail.Segments[len(trail.Segments)-1]
	if last.Label != "Estate Planning" {
		t.Errorf("label = %q, want %q", last.Label, "Estate Planning")
	}
	// The registered /services prefix still appears.
	if trail.Segments[1].Label != "Services" {
		t.Errorf("segments[1] = %+v, want Services", trail.Segments[1])
	}
}

func TestDeriveSkipsUnregisteredPrefixes(t *testing.T) {
	d := NewDeriver(testTree(t), nil)

	trail := d.Derive("/unknown/deeply/nested")
	// Only Home and the active segment survive: no prefix matches.
	if len(trail.Segments) != 2 {
		t.Fatalf("segments = %+v, want 2 entries", trail.Segments)
	}
	if trail.Segments[0].Label != "Home" {
		t.Errorf("first segment = %+v, want Home", trail.Segments[0])
	}
	if trail.Segments[1].Label != "Nested" || !trail.Segments[1].IsActive {
		t.Errorf("last segment = %+v, want active Nested", trail.Segments[1])
	}
}

func TestDeriveIdempotent(t *testing.T) {
	d := NewDeriver(testTree(t), nil)

	a := d.Derive("/services/tax")
	b := d.Derive("/services/tax")
	if !reflect.DeepEqual(a, b) {
		t.Errorf("repeated derivation differs:\n%+v\n%+v", a, b)
	}
}

func TestDeriveTruncation(t *testing.T) {
	// The tree caps registration at two levels, so a trail this long can
	// only arise from unusual configurations; exercise the rule directly.
	long := []Segment{
		{Label: "Home", Href: "/"},
		{Label: "A", Href: "/a"},
		{Label: "B", Href: "/a/b"},
		{Label: "C", Href: "/a/b/c"},
		{Label: "D", Href: "/a/b/c/d"},
		{Label: "E", Href: "/a/b/c/d/e"},
		{Label: "F", IsActive: true},
	}
	got := truncate(long)

	if len(got) != MaxSegments {
		t.Fatalf("truncated length = %d, want %d", len(got), MaxSegments)
	}
	if got[0].Label != "Home" {
		t.Errorf("first = %+v, want Home", got[0])
	}
	if got[1].Label != EllipsisLabel || got[1].Href != "" {
		t.Errorf("second = %+v, want ellipsis marker", got[1])
	}
	if got[4].Label != "F" || !got[4].IsActive {
		t.Errorf("last = %+v, want active F", got[4])
	}
	if got[2].Label != "D" || got[3].Label != "E" {
		t.Errorf("kept tail = %q,%q, want D,E", got[2].Label, got[3].Label)
	}
}

func TestTruncateNoopForShortTrails(t *testing.T) {
	short := []Segment{
		{Label: "Home", Href: "/"},
		{Label: "X", IsActive: true},
	}
	if got := truncate(short); !reflect.DeepEqual(got, short) {
		t.Errorf("truncate changed a short trail: %+v", got)
	}
}

func TestStructuredData(t *testing.T) {
	d := NewDeriver(testTree(t), nil)

	trail := d.Derive("/services/tax")
	sd := trail.StructuredData
	if sd == nil {
		t.Fatal("StructuredData is nil")
	}
	if sd.Context != "https://schema.org" || sd.Type != "BreadcrumbList" {
		t.Errorf("context/type = %q/%q", sd.Context, sd.Type)
	}
	if len(sd.ItemListElement) != len(trail.Segments) {
		t.Fatalf("item count = %d, segments = %d", len(sd.ItemListElement), len(trail.Segments))
	}
	for i, li := range sd.ItemListElement {
		if li.Position != i+1 {
			t.Errorf("item %d position = %d", i, li.Position)
		}
		if li.Type != "ListItem" {
			t.Errorf("item %d type = %q", i, li.Type)
		}
		if li.Name != trail.Segments[i].Label {
			t.Errorf("item %d name = %q, want %q", i, li.Name, trail.Segments[i].Label)
		}
	}

	// The active segment must omit its item link in the JSON encoding.
	raw, err := json.Marshal(sd)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded struct {
		Items []map[string]any `json:"itemListElement"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	last := decoded.Items[len(decoded.Items)-1]
	if _, present := last["item"]; present {
		t.Errorf("active segment encodes an item link: %v", last)
	}
	first := decoded.Items[0]
	if first["item"] != "/" {
		t.Errorf("home item = %v, want /", first["item"])
	}
}

func TestDeriveExcludedRoutes(t *testing.T) {
	d := NewDeriver(testTree(t), []string{"/legal/**"})

	trail := d.Derive("/legal/imprint")
	if len(trail.Segments) != 0 {
		t.Errorf("excluded route produced segments: %+v", trail.Segments)
	}
	if trail.IsHomePage {
		t.Error("excluded route flagged as home page")
	}

	// Non-matching routes are unaffected.
	if got := d.Derive("/about"); len(got.Segments) == 0 {
		t.Error("non-excluded route lost its trail")
	}
}

func TestHumanize(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/services/tax", "Tax"},
		{"/estate-planning", "Estate Planning"},
		{"/our-team-members", "Our Team Members"},
		{"/x", "X"},
	}
	for _, tt := range tests {
		if got := Humanize(tt.path); got != tt.want {
			t.Errorf("Humanize(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestSanitize(t *testing.T) {
	segments := []Segment{
		{Label: "Home", Href: "/"},
		{Label: "Broken"}, // no href, not active: dropped
		{Label: EllipsisLabel},
		{Label: "Current", IsActive: true},
	}
	got := Sanitize(segments)
	if len(got) != 3 {
		t.Fatalf("sanitized length = %d, want 3", len(got))
	}
	for _, seg := range got {
		if seg.Label == "Broken" {
			t.Error("malformed segment survived sanitization")
		}
	}
}

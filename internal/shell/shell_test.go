package shell

import (
	"errors"
	"testing"
	"time"

	"github.com/calegray/siteshell/internal/nav"
	"github.com/calegray/siteshell/internal/theme"
	"github.com/calegray/siteshell/internal/viewport"
)

func testSession(t *testing.T) *Session {
	t.Helper()
	tree, err := nav.NewTree([]nav.Item{
		{ID: "home", Label: "Home", Href: "/", Order: 0},
		{ID: "services", Label: "Services", Href: "/services", Order: 1, Children: []nav.Item{
			{ID: "tax", Label: "Tax Services", Href: "/services/tax", Order: 0},
		}},
		{ID: "portal", Label: "Client Portal", Href: "/portal", Order: 2, Visibility: nav.VisibilityAuthenticated},
		{ID: "privacy", Label: "Privacy", Href: "/privacy", Order: 0, Position: nav.PositionSecondary},
	})
	if err != nil {
		t.Fatalf("NewTree: %v", err)
	}
	s := New(Options{
		Tree:           tree,
		ThemeStore:     theme.NewMemStore(),
		InitialWidth:   1280,
		DebounceWindow: 10 * time.Millisecond,
	})
	t.Cleanup(s.Close)
	return s
}

func TestSnapshotDefaults(t *testing.T) {
	s := testSession(t)

	state := s.Snapshot()
	if state.SessionID != s.ID || state.SessionID == "" {
		t.Errorf("SessionID = %q", state.SessionID)
	}
	if state.Route != "/" {
		t.Errorf("Route = %q, want /", state.Route)
	}
	if !state.Breadcrumbs.IsHomePage {
		t.Error("initial route should be the home page")
	}
	if state.Breakpoint != viewport.Desktop {
		t.Errorf("Breakpoint = %q, want desktop", state.Breakpoint)
	}
	if state.Theme.Preference != theme.PreferenceSystem {
		t.Errorf("theme preference = %q, want system", state.Theme.Preference)
	}
	if state.NavPanel.IsOpen {
		t.Error("nav panel open on a fresh session")
	}
}

func TestSnapshotSplitsNavByPosition(t *testing.T) {
	s := testSession(t)

	state := s.Snapshot()
	for _, it := range state.PrimaryNav {
		if it.Position != nav.PositionPrimary {
			t.Errorf("primary nav contains %q with position %q", it.ID, it.Position)
		}
	}
	if len(state.SecondaryNav) != 1 || state.SecondaryNav[0].ID != "privacy" {
		t.Errorf("secondary nav = %+v, want [privacy]", state.SecondaryNav)
	}
}

func TestNavigationRespectsAuthFlag(t *testing.T) {
	s := testSession(t)

	for _, it := range s.Navigation() {
		if it.ID == "portal" {
			t.Error("portal visible before authentication")
		}
	}

	s.SetAuthenticated(true)
	found := false
	for _, it := range s.Navigation() {
		if it.ID == "portal" {
			found = true
		}
	}
	if !found {
		t.Error("portal missing after authentication")
	}
}

func TestRouteChangeClosesNavPanel(t *testing.T) {
	s := testSession(t)

	s.Disclosure.Open()
	s.SetRoute("/services/tax")

	if s.Disclosure.IsOpen() {
		t.Error("nav panel open after route change")
	}
	if got := s.Route(); got != "/services/tax" {
		t.Errorf("Route = %q", got)
	}

	trail := s.Breadcrumbs()
	if trail.CurrentPage != "Tax Services" {
		t.Errorf("CurrentPage = %q, want Tax Services", trail.CurrentPage)
	}
}

func TestBreakpointLeavingMobileClosesNavPanel(t *testing.T) {
	tree, err := nav.NewTree([]nav.Item{{ID: "home", Label: "Home", Href: "/"}})
	if err != nil {
		t.Fatalf("NewTree: %v", err)
	}
	s := New(Options{
		Tree:           tree,
		ThemeStore:     theme.NewMemStore(),
		InitialWidth:   400,
		DebounceWindow: 10 * time.Millisecond,
	})
	defer s.Close()

	s.Disclosure.Open()
	s.Viewport.Report(1280)
	time.Sleep(50 * time.Millisecond)

	if s.Viewport.Current() != viewport.Desktop {
		t.Fatalf("Breakpoint = %q, want desktop", s.Viewport.Current())
	}
	if s.Disclosure.IsOpen() {
		t.Error("nav panel open after viewport left mobile")
	}
}

func TestSnapshotSurfacesThemeError(t *testing.T) {
	tree, err := nav.NewTree([]nav.Item{{ID: "home", Label: "Home", Href: "/"}})
	if err != nil {
		t.Fatalf("NewTree: %v", err)
	}
	s := New(Options{
		Tree:         tree,
		ThemeStore:   brokenStore{},
		InitialWidth: 1280,
	})
	defer s.Close()

	state := s.Snapshot()
	if !state.Theme.HasError {
		t.Error("theme error flag not surfaced in snapshot")
	}
	if state.Theme.Error == "" {
		t.Error("theme error message empty")
	}
	if state.Theme.Preference != theme.PreferenceSystem {
		t.Errorf("degraded preference = %q, want system", state.Theme.Preference)
	}
}

var errStore = errors.New("store offline")

type brokenStore struct{}

func (brokenStore) Get(string) (string, bool, error) { return "", false, errStore }
func (brokenStore) Set(string, string) error         { return errStore }
func (brokenStore) Remove(string) error              { return errStore }

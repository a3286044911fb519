// Package shell owns the per-session presentation state of the page shell:
// current route, viewer authentication, viewport tier, theme, and the mobile
// navigation panel, all against one immutable navigation tree.
package shell

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/calegray/siteshell/internal/breadcrumb"
	"github.com/calegray/siteshell/internal/disclosure"
	"github.com/calegray/siteshell/internal/nav"
	"github.com/calegray/siteshell/internal/theme"
	"github.com/calegray/siteshell/internal/viewport"
)

// Session is the session-scoped container holding one mutable cell per
// concern. The pure computations live in their own packages; the session
// only feeds them events and snapshots their outputs.
type Session struct {
	ID string

	tree       *nav.Tree
	deriver    *breadcrumb.Deriver
	Theme      *theme.Manager
	Viewport   *viewport.Classifier
	Disclosure *disclosure.Machine

	mu            sync.Mutex
	route         string
	authenticated bool
}

// Options configures a new Session.
type Options struct {
	Tree             *nav.Tree
	BreadcrumbIgnore []string // doublestar globs excluded from trails
	ThemeStore       theme.Store
	ThemeKey         string
	SystemDark       bool
	InitialWidth     int
	DebounceWindow   time.Duration
}

// New creates a Session with a fresh uuid. The viewport classifier is wired
// to force-close the disclosure when the tier leaves mobile.
func New(opts Options) *Session {
	s := &Session{
		ID:         uuid.New().String(),
		tree:       opts.Tree,
		deriver:    breadcrumb.NewDeriver(opts.Tree, opts.BreadcrumbIgnore),
		Theme:      theme.NewManager(opts.ThemeStore, opts.ThemeKey, opts.SystemDark),
		Viewport:   viewport.NewClassifier(opts.InitialWidth, opts.DebounceWindow),
		Disclosure: disclosure.New(),
		route:      "/",
	}
	s.Viewport.OnChange(s.Disclosure.BreakpointChanged)
	return s
}

// Close releases the session's timers.
func (s *Session) Close() {
	s.Viewport.Close()
	s.Disclosure.Close()
}

// SetRoute records a navigation. The disclosure panel always closes on a
// route change.
func (s *Session) SetRoute(path string) {
	s.mu.Lock()
	s.route = path
	s.mu.Unlock()
	s.Disclosure.RouteChanged()
}

// Route returns the current route path.
func (s *Session) Route() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.route
}

// SetAuthenticated records the viewer's authentication flag, computed by an
// auth collaborator; the shell only consumes the boolean.
func (s *Session) SetAuthenticated(ok bool) {
	s.mu.Lock()
	s.authenticated = ok
	s.mu.Unlock()
}

// Authenticated reports the recorded flag.
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// Navigation returns the filtered, sorted navigation for the viewer.
func (s *Session) Navigation() []nav.Item {
	return s.tree.Filter(s.Authenticated())
}

// Breadcrumbs derives the trail for the current route.
func (s *Session) Breadcrumbs() breadcrumb.Trail {
	return s.deriver.Derive(s.Route())
}

// DeriveBreadcrumbs derives a trail for an arbitrary path without touching
// the session's route.
func (s *Session) DeriveBreadcrumbs(path string) breadcrumb.Trail {
	return s.deriver.Derive(path)
}

// State is one render cycle's worth of shell state.
type State struct {
	SessionID    string              `json:"session_id"`
	Route        string              `json:"route"`
	PrimaryNav   []nav.Item          `json:"primary_nav"`
	SecondaryNav []nav.Item          `json:"secondary_nav"`
	Breadcrumbs  breadcrumb.Trail    `json:"breadcrumbs"`
	Breakpoint   viewport.Breakpoint `json:"breakpoint"`
	Theme        ThemeState          `json:"theme"`
	NavPanel     NavPanelState       `json:"nav_panel"`
}

// ThemeState is the theme portion of a snapshot.
type ThemeState struct {
	Preference theme.Preference `json:"preference"`
	Resolved   theme.Resolved   `json:"resolved"`
	HasError   bool             `json:"has_error"`
	Error      string           `json:"error,omitempty"`
}

// NavPanelState is the disclosure portion of a snapshot.
type NavPanelState struct {
	IsOpen       bool   `json:"is_open"`
	AriaExpanded string `json:"aria_expanded"`
}

// Snapshot assembles the full shell state for the current moment.
func (s *Session) Snapshot() State {
	items := s.Navigation()

	ts := ThemeState{
		Preference: s.Theme.Preference(),
		Resolved:   s.Theme.Resolved(),
		HasError:   s.Theme.HasError(),
	}
	if err := s.Theme.Err(); err != nil {
		ts.Error = err.Error()
	}

	return State{
		SessionID:    s.ID,
		Route:        s.Route(),
		PrimaryNav:   nav.ByPosition(items, nav.PositionPrimary),
		SecondaryNav: nav.ByPosition(items, nav.PositionSecondary),
		Breadcrumbs:  s.Breadcrumbs(),
		Breakpoint:   s.Viewport.Current(),
		Theme:        ts,
		NavPanel: NavPanelState{
			IsOpen:       s.Disclosure.IsOpen(),
			AriaExpanded: s.Disclosure.AriaExpanded(),
		},
	}
}

// Package server exposes the shell state over HTTP for the site frontend.
// The core packages stay pure; this is the collaborator boundary where
// routes, widths, auth flags, and theme changes arrive as requests.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/calegray/siteshell/internal/config"
	"github.com/calegray/siteshell/internal/nav"
	"github.com/calegray/siteshell/internal/shell"
	"github.com/calegray/siteshell/internal/theme"
	"github.com/calegray/siteshell/internal/viewport"
)

// Server holds the navigation tree, the shared preference store, and the
// active shell sessions.
type Server struct {
	store      theme.Store
	router     chi.Router
	httpServer *http.Server

	mu       sync.RWMutex
	cfg      *config.Config
	tree     *nav.Tree
	sessions map[string]*shell.Session
	hubs     map[string]*eventHub
}

// New creates a Server from a validated configuration. The tree must have
// been built from the same configuration.
func New(cfg *config.Config, tree *nav.Tree, store theme.Store) *Server {
	s := &Server{
		cfg:      cfg,
		tree:     tree,
		store:    store,
		sessions: make(map[string]*shell.Session),
		hubs:     make(map[string]*eventHub),
	}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.allowAll() {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	s.registerRoutes(r)

	return r
}

func (s *Server) allowAll() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Server.AllowAll
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// Reload swaps in a new configuration and navigation tree. Existing sessions
// keep the tree they were created with; new sessions see the new one.
func (s *Server) Reload(cfg *config.Config, tree *nav.Tree) {
	s.mu.Lock()
	s.cfg = cfg
	s.tree = tree
	s.mu.Unlock()
	log.Printf("siteshell: configuration reloaded (%d navigation items)", tree.Len())
}

// newSession creates and registers a shell session against the current tree.
func (s *Server) newSession() *shell.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := shell.New(shell.Options{
		Tree:             s.tree,
		BreadcrumbIgnore: s.cfg.Breadcrumbs.Exclude,
		ThemeStore:       s.store,
		ThemeKey:         s.cfg.Theme.StorageKey,
		InitialWidth:     s.cfg.Viewport.InitialWidth,
		DebounceWindow:   time.Duration(s.cfg.Viewport.DebounceMS) * time.Millisecond,
	})
	s.sessions[sess.ID] = sess

	hub := newEventHub()
	s.hubs[sess.ID] = hub

	// Push asynchronous state changes to event subscribers. Breakpoint
	// changes may also close the nav panel, so its state rides along.
	sess.Theme.OnChange(func(resolved theme.Resolved) {
		hub.broadcast("theme", map[string]any{
			"preference": sess.Theme.Preference(),
			"resolved":   resolved,
		})
	})
	sess.Viewport.OnChange(func(prev, next viewport.Breakpoint) {
		hub.broadcast("breakpoint", map[string]any{
			"previous":  prev,
			"current":   next,
			"nav_panel": sess.Disclosure.IsOpen(),
		})
	})

	return sess
}

// session looks up a registered session by ID.
func (s *Server) session(id string) (*shell.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// dropSession tears a session down. Its disclosure ends closed and its
// timers are released.
func (s *Server) dropSession(id string) bool {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	hub := s.hubs[id]
	delete(s.sessions, id)
	delete(s.hubs, id)
	s.mu.Unlock()
	if ok {
		sess.Close()
	}
	if hub != nil {
		hub.close()
	}
	return ok
}

// hub looks up the event hub for a session.
func (s *Server) hub(id string) (*eventHub, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.hubs[id]
	return h, ok
}

// Start begins listening on the configured port.
func (s *Server) Start() error {
	s.mu.RLock()
	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	s.mu.RUnlock()

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("siteshell server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server and tears down all sessions.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	for id, sess := range s.sessions {
		sess.Close()
		delete(s.sessions, id)
	}
	for id, hub := range s.hubs {
		hub.close()
		delete(s.hubs, id)
	}
	s.mu.Unlock()

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

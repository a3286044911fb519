package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/calegray/siteshell/internal/shell"
	"github.com/calegray/siteshell/internal/theme"
)

// registerRoutes mounts the shell API. All mutations respond with the state
// fragment they touched; GET state returns the full snapshot.
func (s *Server) registerRoutes(r chi.Router) {
	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)

		r.Route("/{id}", func(r chi.Router) {
			r.Delete("/", s.handleDropSession)
			r.Get("/state", s.withSession(s.handleState))
			r.Get("/navigation", s.withSession(s.handleNavigation))
			r.Get("/breadcrumbs", s.withSession(s.handleBreadcrumbs))
			r.Put("/route", s.withSession(s.handleSetRoute))
			r.Put("/auth", s.withSession(s.handleSetAuth))
			r.Put("/theme", s.withSession(s.handleSetTheme))
			r.Post("/theme/toggle", s.withSession(s.handleToggleTheme))
			r.Post("/theme/cycle", s.withSession(s.handleCycleTheme))
			r.Post("/theme/reset", s.withSession(s.handleResetTheme))
			r.Delete("/theme", s.withSession(s.handleClearTheme))
			r.Post("/viewport", s.withSession(s.handleViewport))
			r.Put("/system", s.withSession(s.handleSystemSignal))
			r.Post("/nav-panel/toggle", s.withSession(s.handleNavPanelToggle))
			r.Post("/nav-panel/close", s.withSession(s.handleNavPanelClose))
			r.Get("/events", s.handleSessionEvents)
		})
	})
}

// sessionHandler is an http handler bound to a resolved session.
type sessionHandler func(w http.ResponseWriter, r *http.Request, sess *shell.Session)

// withSession resolves the {id} URL parameter or responds 404.
func (s *Server) withSession(h sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := s.session(chi.URLParam(r, "id"))
		if !ok {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		h(w, r, sess)
	}
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess := s.newSession()
	writeJSON(w, http.StatusCreated, sess.Snapshot())
}

func (s *Server) handleDropSession(w http.ResponseWriter, r *http.Request) {
	if !s.dropSession(chi.URLParam(r, "id")) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request, sess *shell.Session) {
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleNavigation(w http.ResponseWriter, r *http.Request, sess *shell.Session) {
	state := sess.Snapshot()
	switch r.URL.Query().Get("position") {
	case "primary":
		writeJSON(w, http.StatusOK, state.PrimaryNav)
	case "secondary":
		writeJSON(w, http.StatusOK, state.SecondaryNav)
	case "":
		writeJSON(w, http.StatusOK, map[string]any{
			"primary":   state.PrimaryNav,
			"secondary": state.SecondaryNav,
		})
	default:
		http.Error(w, "position must be primary or secondary", http.StatusBadRequest)
	}
}

// handleBreadcrumbs derives a trail. With ?path= the derivation is for that
// path; otherwise the session's current route.
func (s *Server) handleBreadcrumbs(w http.ResponseWriter, r *http.Request, sess *shell.Session) {
	if path := r.URL.Query().Get("path"); path != "" {
		sessTrail := sess.DeriveBreadcrumbs(path)
		writeJSON(w, http.StatusOK, sessTrail)
		return
	}
	writeJSON(w, http.StatusOK, sess.Breadcrumbs())
}

func (s *Server) handleSetRoute(w http.ResponseWriter, r *http.Request, sess *shell.Session) {
	var body struct {
		Path string `json:"path"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Path == "" {
		http.Error(w, "body must be {\"path\": \"/...\"}", http.StatusBadRequest)
		return
	}

	sess.SetRoute(body.Path)
	if hub, ok := s.hub(sess.ID); ok {
		hub.broadcast("route", map[string]any{"path": body.Path, "nav_panel": sess.Disclosure.IsOpen()})
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleSetAuth(w http.ResponseWriter, r *http.Request, sess *shell.Session) {
	var body struct {
		Authenticated bool `json:"authenticated"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "body must be {\"authenticated\": bool}", http.StatusBadRequest)
		return
	}
	sess.SetAuthenticated(body.Authenticated)
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request, sess *shell.Session) {
	var body struct {
		Preference string `json:"preference"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "body must be {\"preference\": \"...\"}", http.StatusBadRequest)
		return
	}

	if err := sess.Theme.SetTheme(body.Preference); err != nil {
		if errors.Is(err, theme.ErrInvalidTheme) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.writeThemeState(w, sess)
}

func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request, sess *shell.Session) {
	sess.Theme.ToggleTheme()
	s.writeThemeState(w, sess)
}

func (s *Server) handleCycleTheme(w http.ResponseWriter, r *http.Request, sess *shell.Session) {
	sess.Theme.CycleTheme()
	s.writeThemeState(w, sess)
}

func (s *Server) handleResetTheme(w http.ResponseWriter, r *http.Request, sess *shell.Session) {
	sess.Theme.ResetToSystem()
	s.writeThemeState(w, sess)
}

func (s *Server) handleClearTheme(w http.ResponseWriter, r *http.Request, sess *shell.Session) {
	if err := sess.Theme.ClearStoredTheme(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.writeThemeState(w, sess)
}

func (s *Server) writeThemeState(w http.ResponseWriter, sess *shell.Session) {
	writeJSON(w, http.StatusOK, sess.Snapshot().Theme)
}

// handleViewport feeds a width report into the debounced classifier. The
// response reflects the currently published tier; the report itself may only
// take effect once the debounce window settles.
func (s *Server) handleViewport(w http.ResponseWriter, r *http.Request, sess *shell.Session) {
	var body struct {
		Width *int `json:"width"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Width == nil || *body.Width < 0 {
		http.Error(w, "body must be {\"width\": pixels}", http.StatusBadRequest)
		return
	}

	sess.Viewport.Report(*body.Width)
	writeJSON(w, http.StatusAccepted, map[string]any{"breakpoint": sess.Viewport.Current()})
}

func (s *Server) handleSystemSignal(w http.ResponseWriter, r *http.Request, sess *shell.Session) {
	var body struct {
		Dark bool `json:"dark"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "body must be {\"dark\": bool}", http.StatusBadRequest)
		return
	}
	sess.Theme.SetSystemDark(body.Dark)
	s.writeThemeState(w, sess)
}

func (s *Server) handleNavPanelToggle(w http.ResponseWriter, r *http.Request, sess *shell.Session) {
	sess.Disclosure.Toggle()
	s.writeNavPanelState(w, sess)
}

func (s *Server) handleNavPanelClose(w http.ResponseWriter, r *http.Request, sess *shell.Session) {
	sess.Disclosure.Close()
	s.writeNavPanelState(w, sess)
}

func (s *Server) writeNavPanelState(w http.ResponseWriter, sess *shell.Session) {
	state := sess.Snapshot().NavPanel
	if hub, ok := s.hub(sess.ID); ok {
		hub.broadcast("nav_panel", state)
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleSessionEvents(w http.ResponseWriter, r *http.Request) {
	hub, ok := s.hub(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	s.handleEvents(w, r, hub)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

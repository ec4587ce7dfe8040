package httpserver

import (
	"crypto/subtle"
	"net/http"

	"github.com/rs/zerolog/hlog"
	"golang.org/x/crypto/bcrypt"
)

// mountAdmin registers the admin routes when an admin password hash is set.
func (s *Server) mountAdmin() {
	if s.cfg.Admin.PasswordHash == "" {
		return
	}
	s.r.With(s.requireAdmin).Post("/admin/reload", s.handleReload)
}

// requireAdmin enforces HTTP basic auth against the configured user and
// bcrypt password hash.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || !s.checkAdmin(user, pass) {
			w.Header().Set("WWW-Authenticate", `Basic realm="otter-admin"`)
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: "unauthorized", Message: "admin credentials required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) checkAdmin(user, pass string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(s.cfg.Admin.User)) == 1
	passOK := bcrypt.CompareHashAndPassword([]byte(s.cfg.Admin.PasswordHash), []byte(pass)) == nil
	return userOK && passOK
}

// handleReload reloads every word list. Languages that fail keep their
// previous list.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.Reload(r.Context()); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("admin reload")
		writeError(w, r, err)
		return
	}
	hlog.FromRequest(r).Info().Strs("languages", s.catalog.Languages()).Msg("word lists reloaded")
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "languages": s.catalog.Languages()})
}

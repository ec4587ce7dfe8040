// internal/httpserver/server.go
//
// HTTP server wiring for the word-ladder backend.
// Responsibilities:
//   - Router + middleware (access log, JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/metrics", "/languages".
//   - Game endpoints: POST /game/new creates a game and a session; the rest
//     (GET /game, POST /game/guess|key|next|restart) require that session.
//   - Admin endpoint: POST /admin/reload (basic auth, bcrypt-hashed password).
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Games live in the session store; the session token only names the game.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/RubyShuey/Otter/internal/config"
	"github.com/RubyShuey/Otter/internal/game"
	"github.com/RubyShuey/Otter/internal/store"
)

// Catalog is the word list catalog the server draws games from.
type Catalog interface {
	game.BankProvider
	Languages() []string
	Reload(ctx context.Context) error
}

// Server bundles router, session store and word catalog.
type Server struct {
	r        *chi.Mux
	store    store.Store
	catalog  Catalog
	cfg      *config.Config
	validate *validator.Validate
	newID    func() string
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg *config.Config, st store.Store, catalog Catalog) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		store:    st,
		catalog:  catalog,
		cfg:      cfg,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		newID:    newGameID,
	}

	timeout := cfg.Server.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(hlog.NewHandler(log.Logger))
	s.r.Use(requestIDLog)
	s.r.Use(hlog.AccessHandler(accessLog))
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(timeout))
	s.r.Use(jsonContentType)
	s.r.Use(cors(cfg.CORS.AllowedOrigins))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "otter",
			"endpoints": []string{
				"/health", "/languages", "/metrics",
				"POST /game/new", "GET /game", "POST /game/guess", "POST /game/key",
				"POST /game/next", "POST /game/restart",
			},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "languages": len(s.catalog.Languages())})
	})
	s.r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	s.r.Get("/languages", s.handleLanguages)

	s.mountGame()
	s.mountAdmin()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.r.ServeHTTP(w, r) }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a comma-separated list of origins.
func cors(allowed string) func(http.Handler) http.Handler {
	origins := map[string]bool{}
	for _, o := range strings.Split(allowed, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins[o] = true
		}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", "Origin")
			if origin := r.Header.Get("Origin"); origins[origin] {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requestIDLog adds chi's request ID to the request logger.
func requestIDLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := chimw.GetReqID(r.Context()); id != "" {
			zerolog.Ctx(r.Context()).UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("req_id", id)
			})
		}
		next.ServeHTTP(w, r)
	})
}

func accessLog(r *http.Request, status, size int, d time.Duration) {
	lvl := zerolog.InfoLevel
	if status >= http.StatusInternalServerError {
		lvl = zerolog.ErrorLevel
	}
	hlog.FromRequest(r).WithLevel(lvl).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
}

// ------------------------------- helpers -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	type lang struct {
		Code      string `json:"code"`
		Words     int    `json:"words"`
		MaxLength int    `json:"maxLength"`
	}
	out := []lang{}
	for _, code := range s.catalog.Languages() {
		b, err := s.catalog.Bank(code)
		if err != nil {
			continue
		}
		out = append(out, lang{Code: code, Words: b.Count(), MaxLength: b.MaxLength()})
	}
	writeJSON(w, http.StatusOK, map[string]any{"default": s.cfg.Game.DefaultLanguage, "languages": out})
}

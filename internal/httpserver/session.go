// internal/httpserver/session.go
//
// Session tokens: an HS256 JWT naming the player's game, carried in an
// HttpOnly cookie or an "Authorization: Bearer" header.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"

	"github.com/RubyShuey/Otter/internal/game"
	"github.com/RubyShuey/Otter/internal/store"
)

var (
	errNoSession      = errors.New("no session")
	errInvalidSession = errors.New("invalid session")
)

// sessionClaims are the claims of a session token.
type sessionClaims struct {
	GameID string `json:"gid"`
	Lang   string `json:"lang"`
	jwt.RegisteredClaims
}

func newGameID() string { return uuid.NewString() }

// signSession creates a token for g that expires after the session TTL.
func (s *Server) signSession(g *game.Game) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.cfg.Session.TTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		GameID: g.ID,
		Lang:   g.Settings().Language,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	ss, err := t.SignedString([]byte(s.cfg.Session.Secret))
	return ss, exp, err
}

// parseSession validates tok and returns its claims.
func (s *Server) parseSession(tok string) (*sessionClaims, error) {
	claims := &sessionClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (any, error) {
		return []byte(s.cfg.Session.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !t.Valid || claims.GameID == "" {
		return nil, errInvalidSession
	}
	return claims, nil
}

// setSessionCookie writes the session cookie with appropriate security attributes.
func (s *Server) setSessionCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if s.cfg.Session.Secure {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.Session.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Session.Secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// bearerOrCookie extracts a bearer token from Authorization header or session cookie.
func (s *Server) bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(s.cfg.Session.CookieName); err == nil {
		return c.Value
	}
	return ""
}

// ctxGameKey is the context key for the session's *game.Game.
type ctxGameKey struct{}

func gameFrom(ctx context.Context) *game.Game {
	g, _ := ctx.Value(ctxGameKey{}).(*game.Game)
	return g
}

// requireGame resolves the session token to a stored game and puts it into
// the request context.
func (s *Server) requireGame(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := s.bearerOrCookie(r)
		if tok == "" {
			writeError(w, r, errNoSession)
			return
		}
		claims, err := s.parseSession(tok)
		if err != nil {
			writeError(w, r, err)
			return
		}
		g, err := s.store.Get(r.Context(), claims.GameID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				hlog.FromRequest(r).Debug().Str("gameId", claims.GameID).Msg("session names an evicted game")
			}
			writeError(w, r, err)
			return
		}
		ctx := context.WithValue(r.Context(), ctxGameKey{}, g)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/RubyShuey/Otter/internal/config"
	"github.com/RubyShuey/Otter/internal/store"
	"github.com/RubyShuey/Otter/internal/words"
)

type stringSource string

func (s stringSource) Open(context.Context) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(string(s))), nil
}
func (s stringSource) String() string { return "test" }

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{RequestTimeout: 5 * time.Second},
		Game: config.GameConfig{
			DefaultLanguage: "en",
			MaxAttempts:     8,
			StartLength:     2,
			Hints:           true,
			SettleDelay:     time.Second,
			RetryInterval:   time.Millisecond,
			RetryAttempts:   1,
			DailySalt:       "salt",
		},
		Session: config.SessionConfig{Secret: "test-secret-0123456789", TTL: time.Hour, CookieName: "otter_session"},
		Admin:   config.AdminConfig{User: "admin"},
		CORS:    config.CORSConfig{AllowedOrigins: "http://localhost:5173"},
	}
}

// one word per length keeps targets deterministic
func newTestServer(t *testing.T, cfg *config.Config) (*Server, *store.Memory) {
	t.Helper()
	c := words.NewCatalog(map[string]words.Source{
		"en": stringSource("ab\nabc\n"),
		"no": stringSource("ål\nbær\n"),
	}, nil)
	require.NoError(t, c.Reload(context.Background()))
	st := store.NewMemoryStore()
	return New(cfg, st, c), st
}

type viewResp struct {
	Error         string `json:"error"`
	Token         string `json:"token"`
	SettleDelayMs int64  `json:"settleDelayMs"`
	Game          struct {
		GameID            string `json:"gameId"`
		Language          string `json:"language"`
		Mode              string `json:"mode"`
		Length            int    `json:"length"`
		MaxLength         int    `json:"maxLength"`
		AttemptsRemaining int    `json:"attemptsRemaining"`
		Outcome           string `json:"outcome"`
		Typed             string `json:"typed"`
		Hint              string `json:"hint"`
		Answer            string `json:"answer"`
		Keyboard          []struct {
			Letter string `json:"letter"`
			Status string `json:"status"`
		} `json:"keyboard"`
	} `json:"game"`
	Result *struct {
		Guess      string   `json:"guess"`
		Feedback   []string `json:"feedback"`
		Outcome    string   `json:"outcome"`
		Hint       string   `json:"hint"`
		Answer     string   `json:"answer"`
		NextLength int      `json:"nextLength"`
	} `json:"result"`
}

type client struct {
	t      *testing.T
	h      http.Handler
	cookie *http.Cookie
}

func (c *client) do(method, path, body string) (*httptest.ResponseRecorder, viewResp) {
	c.t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)

	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "otter_session" {
			c.cookie = ck
		}
	}
	var v viewResp
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") && rec.Body.Len() > 0 {
		require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	}
	return rec, v
}

func TestDiagnostics(t *testing.T) {
	s, _ := newTestServer(t, testConfig())
	c := &client{t: t, h: s}

	rec, _ := c.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true,"languages":2}`, rec.Body.String())

	rec, _ = c.do(http.MethodGet, "/languages", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"default":"en","languages":[
		{"code":"en","words":2,"maxLength":3},
		{"code":"no","words":2,"maxLength":3}]}`, rec.Body.String())

	rec, _ = c.do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, v := c.do(http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", v.Error)
}

func TestGameFlow_AdvanceToCompleted(t *testing.T) {
	s, st := newTestServer(t, testConfig())
	c := &client{t: t, h: s}

	rec, v := c.do(http.MethodPost, "/game/new", `{"language":"en"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NotNil(t, c.cookie, "session cookie set")
	assert.True(t, c.cookie.HttpOnly)
	assert.NotEmpty(t, v.Token)
	assert.Equal(t, 2, v.Game.Length)
	assert.Equal(t, 3, v.Game.MaxLength)
	assert.Equal(t, 8, v.Game.AttemptsRemaining)
	assert.Equal(t, "in_progress", v.Game.Outcome)
	assert.Equal(t, "random", v.Game.Mode)
	assert.Empty(t, v.Game.Answer)
	assert.Equal(t, int64(1000), v.SettleDelayMs)
	assert.Equal(t, 1, st.Len())

	rec, v = c.do(http.MethodPost, "/game/guess", `{"guess":"abc"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "not_enough_letters", v.Error)

	rec, v = c.do(http.MethodPost, "/game/guess", `{"guess":"BA"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, v.Result)
	assert.Equal(t, []string{"present", "present"}, v.Result.Feedback)
	assert.Equal(t, "in_progress", v.Result.Outcome)
	assert.Equal(t, 7, v.Game.AttemptsRemaining)

	rec, v = c.do(http.MethodPost, "/game/guess", `{"guess":"ab"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "advanced", v.Result.Outcome)
	assert.Equal(t, 3, v.Result.NextLength)

	rec, v = c.do(http.MethodPost, "/game/next", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, v.Game.Length)
	assert.Equal(t, 8, v.Game.AttemptsRemaining)
	assert.Empty(t, v.Game.Keyboard)

	rec, v = c.do(http.MethodPost, "/game/guess", `{"guess":"abc"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "completed", v.Result.Outcome)

	rec, v = c.do(http.MethodPost, "/game/next", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "completed", v.Error)
}

func TestGameFlow_LostAndRestart(t *testing.T) {
	s, _ := newTestServer(t, testConfig())
	c := &client{t: t, h: s}
	_, _ = c.do(http.MethodPost, "/game/new", "")

	var v viewResp
	for i := 1; i <= 8; i++ {
		var rec *httptest.ResponseRecorder
		rec, v = c.do(http.MethodPost, "/game/guess", `{"guess":"xy"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		if i == 3 {
			assert.Contains(t, []string{"a", "b"}, v.Result.Hint)
		} else {
			assert.Empty(t, v.Result.Hint)
		}
	}
	assert.Equal(t, "lost", v.Result.Outcome)
	assert.Equal(t, "ab", v.Result.Answer)
	assert.Equal(t, "ab", v.Game.Answer)

	rec, v := c.do(http.MethodPost, "/game/guess", `{"guess":"ab"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "round_over", v.Error)

	rec, v = c.do(http.MethodPost, "/game/restart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "in_progress", v.Game.Outcome)
	assert.Equal(t, 2, v.Game.Length)
	assert.Equal(t, 8, v.Game.AttemptsRemaining)
}

func TestGameFlow_Keys(t *testing.T) {
	s, _ := newTestServer(t, testConfig())
	c := &client{t: t, h: s}
	_, _ = c.do(http.MethodPost, "/game/new", `{"language":"no","hints":false}`)

	_, v := c.do(http.MethodPost, "/game/key", `{"key":"Å"}`)
	assert.Equal(t, "å", v.Game.Typed)

	rec, v := c.do(http.MethodPost, "/game/key", `{"key":"Enter"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "not_enough_letters", v.Error)

	rec, _ = c.do(http.MethodPost, "/game/key", `{"key":"Shift"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	_, _ = c.do(http.MethodPost, "/game/key", `{"key":"l"}`)
	rec, v = c.do(http.MethodPost, "/game/key", `{"key":"Enter"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, v.Result)
	assert.Equal(t, "ål", v.Result.Guess)
	assert.Equal(t, "advanced", v.Result.Outcome)
	assert.Empty(t, v.Game.Typed)
}

func TestSessionRequired(t *testing.T) {
	s, st := newTestServer(t, testConfig())

	c := &client{t: t, h: s}
	rec, v := c.do(http.MethodGet, "/game", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", v.Error)

	c.cookie = &http.Cookie{Name: "otter_session", Value: "garbage"}
	rec, v = c.do(http.MethodGet, "/game", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid_session", v.Error)

	// a token signed with another secret
	other := testConfig()
	other.Session.Secret = "another-secret-0123456789"
	s2, _ := newTestServer(t, other)
	c2 := &client{t: t, h: s2}
	_, v = c2.do(http.MethodPost, "/game/new", "")
	c.cookie = nil
	req := httptest.NewRequest(http.MethodGet, "/game", nil)
	req.Header.Set("Authorization", "Bearer "+v.Token)
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// evicted game
	c3 := &client{t: t, h: s}
	_, v = c3.do(http.MethodPost, "/game/new", "")
	require.NoError(t, st.Delete(context.Background(), v.Game.GameID))
	rec, v = c3.do(http.MethodGet, "/game", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", v.Error)
}

func TestBearerToken(t *testing.T) {
	s, _ := newTestServer(t, testConfig())
	c := &client{t: t, h: s}
	_, v := c.do(http.MethodPost, "/game/new", "")

	req := httptest.NewRequest(http.MethodGet, "/game", nil)
	req.Header.Set("Authorization", "Bearer "+v.Token)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewGameReplacesSessionGame(t *testing.T) {
	s, st := newTestServer(t, testConfig())
	c := &client{t: t, h: s}

	_, first := c.do(http.MethodPost, "/game/new", "")
	_, second := c.do(http.MethodPost, "/game/new", `{"mode":"daily"}`)
	assert.NotEqual(t, first.Game.GameID, second.Game.GameID)
	assert.Equal(t, "daily", second.Game.Mode)
	assert.Equal(t, 1, st.Len())
}

func TestNewGameValidation(t *testing.T) {
	s, _ := newTestServer(t, testConfig())
	tests := []struct {
		name string
		body string
		code string
	}{
		{"bad json", `{"language":`, "bad_json"},
		{"bad mode", `{"mode":"hard"}`, "invalid_request"},
		{"unknown language", `{"language":"de"}`, "unknown_language"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &client{t: t, h: s}
			rec, v := c.do(http.MethodPost, "/game/new", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.code, v.Error)
		})
	}
}

func TestGuessValidation(t *testing.T) {
	s, _ := newTestServer(t, testConfig())
	c := &client{t: t, h: s}
	_, _ = c.do(http.MethodPost, "/game/new", "")

	rec, v := c.do(http.MethodPost, "/game/guess", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_request", v.Error)

	rec, v = c.do(http.MethodPost, "/game/guess", `{"guess":"a1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "not_letters", v.Error)
}

func TestAdminReload(t *testing.T) {
	cfg := testConfig()
	s, _ := newTestServer(t, cfg)
	c := &client{t: t, h: s}
	rec, _ := c.do(http.MethodPost, "/admin/reload", "")
	assert.Equal(t, http.StatusNotFound, rec.Code, "admin routes are off without a password hash")

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)
	cfg.Admin.PasswordHash = string(hash)
	s, _ = newTestServer(t, cfg)

	post := func(user, pass string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/admin/reload", nil)
		if user != "" {
			req.SetBasicAuth(user, pass)
		}
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusUnauthorized, post("", "").Code)
	assert.Equal(t, http.StatusUnauthorized, post("admin", "wrong").Code)
	assert.Equal(t, http.StatusUnauthorized, post("root", "hunter22").Code)

	rec = post("admin", "hunter22")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true,"languages":["en","no"]}`, rec.Body.String())
}

func TestCORS(t *testing.T) {
	s, _ := newTestServer(t, testConfig())

	req := httptest.NewRequest(http.MethodOptions, "/game/new", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

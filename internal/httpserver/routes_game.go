// internal/httpserver/routes_game.go
//
// HTTP routes for playing the ladder.
//   - POST /game/new     → create a game (random or daily words), start its first round
//   - GET  /game         → current view of the session's game
//   - POST /game/guess   → submit a whole guess
//   - POST /game/key     → apply one key press (letter, Backspace, Enter)
//   - POST /game/next    → start the next, longer round after an advance
//   - POST /game/restart → replay the current length after a lost round
//
// Daily games pick the word of the day for every length, so everyone playing
// on the same date climbs the same ladder.

package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/RubyShuey/Otter/internal/daily"
	"github.com/RubyShuey/Otter/internal/game"
	"github.com/RubyShuey/Otter/internal/input"
	"github.com/RubyShuey/Otter/internal/metrics"
)

const (
	modeRandom = "random"
	modeDaily  = "daily"
)

// mountGame registers the /game routes.
func (s *Server) mountGame() {
	s.r.Route("/game", func(r chi.Router) {
		r.Post("/new", s.handleNewGame)

		r.Group(func(r chi.Router) {
			r.Use(s.requireGame)
			r.Get("/", s.handleGetGame)
			r.Post("/guess", s.handleGuess)
			r.Post("/key", s.handleKey)
			r.Post("/next", s.handleNext)
			r.Post("/restart", s.handleRestart)
		})
	})
}

// ------------------------------ payloads -----------------------------------

type newGameReq struct {
	Language string `json:"language" validate:"omitempty,min=2,max=16"`
	Mode     string `json:"mode"     validate:"omitempty,oneof=random daily"`
	Hints    *bool  `json:"hints"`
}

type guessReq struct {
	Guess string `json:"guess" validate:"required,max=64"`
}

type keyReq struct {
	Key string `json:"key" validate:"required,max=16"`
}

// gameView is the response of every game endpoint.
type gameView struct {
	Token         string        `json:"token,omitempty"`
	Game          game.Snapshot `json:"game"`
	SettleDelayMs int64         `json:"settleDelayMs"`
	Result        *resultView   `json:"result,omitempty"`
}

// resultView describes what the last submitted guess did.
type resultView struct {
	Guess      string          `json:"guess"`
	Feedback   []game.Feedback `json:"feedback"`
	Outcome    game.Outcome    `json:"outcome"`
	Hint       string          `json:"hint,omitempty"`
	Answer     string          `json:"answer,omitempty"`
	NextLength int             `json:"nextLength,omitempty"`
}

func newResultView(res *game.Result) *resultView {
	if res == nil {
		return nil
	}
	v := &resultView{
		Guess:      res.Guess.String(),
		Feedback:   res.Feedback,
		Outcome:    res.Transition,
		Answer:     res.Answer.String(),
		NextLength: res.NextLength,
	}
	if res.Hint != 0 {
		v.Hint = string(res.Hint)
	}
	return v
}

func (s *Server) view(g *game.Game, res *game.Result) gameView {
	snap, _ := g.Snapshot()
	return gameView{
		Game:          snap,
		SettleDelayMs: s.cfg.Game.SettleDelay.Milliseconds(),
		Result:        newResultView(res),
	}
}

// decode reads a JSON body into v and validates it. An empty body is
// allowed when empty is true.
func (s *Server) decode(r *http.Request, v any, empty bool) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if !(empty && errors.Is(err, io.EOF)) {
			return errBadJSON
		}
	}
	if err := s.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidRequest, err)
	}
	return nil
}

// ------------------------------ handlers -----------------------------------

// handleNewGame creates a game, starts its first round and issues a session
// for it. A game named by an existing session is dropped.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := s.decode(r, &req, true); err != nil {
		writeError(w, r, err)
		return
	}

	lang := strings.ToLower(strings.TrimSpace(req.Language))
	if lang == "" {
		lang = s.cfg.Game.DefaultLanguage
	}
	if _, err := s.catalog.Bank(lang); err != nil {
		writeError(w, r, err)
		return
	}
	mode := req.Mode
	if mode == "" {
		mode = modeRandom
	}
	hints := s.cfg.Game.Hints
	if req.Hints != nil {
		hints = *req.Hints
	}

	var picker game.Picker
	if mode == modeDaily {
		picker = daily.Picker{Salt: s.cfg.Game.DailySalt}
	}
	g := game.New(s.newID(), s.catalog, game.Settings{
		Language:      lang,
		Mode:          mode,
		MaxAttempts:   s.cfg.Game.MaxAttempts,
		StartLength:   s.cfg.Game.StartLength,
		HintsEnabled:  hints,
		RetryInterval: s.cfg.Game.RetryInterval,
		RetryAttempts: s.cfg.Game.RetryAttempts,
	}, picker, nil)

	round, err := g.StartRound(r.Context(), 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	metrics.RoundLength.WithLabelValues(lang).Observe(float64(round.RequiredLength))

	if tok := s.bearerOrCookie(r); tok != "" {
		if old, err := s.parseSession(tok); err == nil {
			_ = s.store.Delete(r.Context(), old.GameID)
		}
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		writeError(w, r, err)
		return
	}
	metrics.ActiveGames.Set(float64(s.store.Len()))

	tok, exp, err := s.signSession(g)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.setSessionCookie(w, tok, exp)

	hlog.FromRequest(r).Info().Str("gameId", g.ID).Str("lang", lang).Str("mode", mode).
		Int("length", round.RequiredLength).Msg("game started")

	v := s.view(g, nil)
	v.Token = tok
	writeJSON(w, http.StatusCreated, v)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.view(gameFrom(r.Context()), nil))
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := s.decode(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}
	g := gameFrom(r.Context())
	res, err := g.SubmitGuess(req.Guess)
	s.respondGuess(w, r, g, res, err)
}

// handleKey applies one key press to the server-side input buffer. Enter on a
// full row submits it like /game/guess.
func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	var req keyReq
	if err := s.decode(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}
	g := gameFrom(r.Context())
	ev, ok := input.ParseKey(req.Key, g.Settings().Language)
	if !ok {
		// keys with no meaning in the game are ignored, like a browser keyboard would
		writeJSON(w, http.StatusOK, s.view(g, nil))
		return
	}
	res, err := g.Input(ev)
	s.respondGuess(w, r, g, res, err)
}

func (s *Server) respondGuess(w http.ResponseWriter, r *http.Request, g *game.Game, res *game.Result, err error) {
	if err != nil {
		metrics.RejectedGuessesTotal.WithLabelValues(toAPIError(err).code).Inc()
		writeError(w, r, err)
		return
	}
	if res != nil {
		s.recordResult(r, g, res)
	}
	writeJSON(w, http.StatusOK, s.view(g, res))
}

// recordResult updates metrics and logs the round transitions of res.
func (s *Server) recordResult(r *http.Request, g *game.Game, res *game.Result) {
	lang := g.Settings().Language
	hit := "miss"
	if res.Transition == game.OutcomeAdvanced || res.Transition == game.OutcomeCompleted {
		hit = "hit"
	}
	metrics.GuessesTotal.WithLabelValues(lang, hit).Inc()
	if res.Hint != 0 {
		metrics.HintsTotal.WithLabelValues(lang).Inc()
	}
	if res.Transition != game.OutcomeInProgress {
		metrics.RoundsTotal.WithLabelValues(lang, res.Transition.String()).Inc()
		hlog.FromRequest(r).Info().Str("gameId", g.ID).Str("outcome", res.Transition.String()).
			Int("length", res.Round.RequiredLength).Int("attempts", len(res.Round.Attempts)).Msg("round finished")
	}
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	g := gameFrom(r.Context())
	round, err := g.NextRound(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	metrics.RoundLength.WithLabelValues(g.Settings().Language).Observe(float64(round.RequiredLength))
	writeJSON(w, http.StatusOK, s.view(g, nil))
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	g := gameFrom(r.Context())
	round, err := g.Restart(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	metrics.RoundLength.WithLabelValues(g.Settings().Language).Observe(float64(round.RequiredLength))
	writeJSON(w, http.StatusOK, s.view(g, nil))
}

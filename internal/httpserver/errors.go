package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/RubyShuey/Otter/internal/game"
	"github.com/RubyShuey/Otter/internal/input"
	"github.com/RubyShuey/Otter/internal/store"
	"github.com/RubyShuey/Otter/internal/words"
)

var (
	errBadJSON        = errors.New("bad json")
	errInvalidRequest = errors.New("invalid request")
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// apiError is the status, code and message for a known error.
type apiError struct {
	status  int
	code    string
	message string
}

var apiErrors = []struct {
	err error
	api apiError
}{
	{game.ErrLengthMismatch, apiError{http.StatusBadRequest, "not_enough_letters", "Not enough letters"}},
	{input.ErrNotEnoughLetters, apiError{http.StatusBadRequest, "not_enough_letters", "Not enough letters"}},
	{game.ErrNotLetters, apiError{http.StatusBadRequest, "not_letters", "Guess must contain only letters"}},
	{errBadJSON, apiError{http.StatusBadRequest, "bad_json", "Request body is not valid JSON"}},
	{errInvalidRequest, apiError{http.StatusBadRequest, "invalid_request", ""}},
	{words.ErrUnknownLanguage, apiError{http.StatusBadRequest, "unknown_language", "No word list for that language"}},
	{errNoSession, apiError{http.StatusUnauthorized, "unauthorized", "Start a game first"}},
	{errInvalidSession, apiError{http.StatusUnauthorized, "invalid_session", "Session is invalid or expired"}},
	{store.ErrNotFound, apiError{http.StatusNotFound, "not_found", "Game not found or expired"}},
	{game.ErrRoundOver, apiError{http.StatusConflict, "round_over", "This round is over"}},
	{game.ErrNoRound, apiError{http.StatusConflict, "no_round", "No round started"}},
	{game.ErrNoPendingRound, apiError{http.StatusConflict, "no_pending_round", "No round to continue with"}},
	{game.ErrLadderComplete, apiError{http.StatusConflict, "completed", "All word lengths completed"}},
	{words.ErrNoWordsAvailable, apiError{http.StatusServiceUnavailable, "no_words", "No words available for this length yet"}},
	{words.ErrEmptySource, apiError{http.StatusServiceUnavailable, "no_word_lists", "No word list could be loaded"}},
	{context.DeadlineExceeded, apiError{http.StatusGatewayTimeout, "timeout", "Request timed out"}},
}

// toAPIError maps err to its HTTP representation; unknown errors are 500s.
func toAPIError(err error) apiError {
	for _, e := range apiErrors {
		if errors.Is(err, e.err) {
			return e.api
		}
	}
	return apiError{http.StatusInternalServerError, "internal", "Internal error"}
}

// writeError writes err as a JSON error body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	api := toAPIError(err)
	if api.status >= http.StatusInternalServerError {
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
	}
	msg := api.message
	if msg == "" {
		msg = err.Error()
	}
	writeJSON(w, api.status, errorBody{Error: api.code, Message: msg})
}

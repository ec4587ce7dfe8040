// Package metrics holds the Prometheus collectors of the game server.
// They register on the default registry and are served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GuessesTotal counts accepted guesses by language and result.
	GuessesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "otter_guesses_total",
		Help: "Accepted guesses by language and result (hit or miss)",
	}, []string{"lang", "result"})

	// RejectedGuessesTotal counts guesses rejected before evaluation.
	RejectedGuessesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "otter_rejected_guesses_total",
		Help: "Guesses rejected before evaluation by reason",
	}, []string{"reason"})

	// RoundsTotal counts finished rounds by language and outcome.
	RoundsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "otter_rounds_total",
		Help: "Finished rounds by language and outcome",
	}, []string{"lang", "outcome"})

	// RoundLength tracks the word length of started rounds.
	RoundLength = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "otter_round_length_letters",
		Help:    "Word length of started rounds",
		Buckets: prometheus.LinearBuckets(2, 1, 12), // 2..13 letters
	}, []string{"lang"})

	// HintsTotal counts hints surfaced to players.
	HintsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "otter_hints_total",
		Help: "Hints surfaced by language",
	}, []string{"lang"})

	// ActiveGames is the number of games held in the session store.
	ActiveGames = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "otter_active_games",
		Help: "Games currently held in the session store",
	})

	// WordListWords is the number of words loaded per language.
	WordListWords = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "otter_word_list_words",
		Help: "Words loaded per language",
	}, []string{"lang"})

	// WordListReloadsTotal counts catalog reloads by result.
	WordListReloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "otter_word_list_reloads_total",
		Help: "Word list reloads by result",
	}, []string{"result"})
)

// ReloadResult returns the result label for a reload error.
func ReloadResult(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

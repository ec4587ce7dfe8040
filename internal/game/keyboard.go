package game

import (
	"maps"

	"github.com/RubyShuey/Otter/internal/words"
)

// Keyboard is the best-known feedback per letter across a round's guesses.
// A letter's status only ever moves up: absent → present → correct.
type Keyboard map[rune]Feedback

// Merge records fb for letter unless a better status is already known.
// Merge is commutative and idempotent.
func (k Keyboard) Merge(letter rune, fb Feedback) {
	if fb > k[letter] {
		k[letter] = fb
	}
}

// MergeGuess merges every position of an evaluated guess.
func (k Keyboard) MergeGuess(guess words.Word, fb []Feedback) {
	for i, l := range guess.Letters() {
		if i < len(fb) {
			k.Merge(l, fb[i])
		}
	}
}

// Status returns the status of letter; FeedbackUnknown if never guessed.
func (k Keyboard) Status(letter rune) Feedback { return k[letter] }

// Snapshot returns a copy for rendering.
func (k Keyboard) Snapshot() Keyboard { return maps.Clone(k) }

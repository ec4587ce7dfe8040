package game

import (
	"errors"

	"github.com/RubyShuey/Otter/internal/words"
)

// ErrLengthMismatch is returned when a guess does not have the target's length.
var ErrLengthMismatch = errors.New("game: not enough letters")

// Evaluate scores guess against target with the two-pass Wordle algorithm.
//
// Pass 1 marks exact matches Correct and counts the target letters left over.
// Pass 2 marks each remaining guess letter Present while an unmatched copy of
// it is left in the target, Absent otherwise. So a letter is never credited
// more often than it occurs in the target, and exact matches win.
func Evaluate(guess, target words.Word) ([]Feedback, error) {
	g, t := guess.Letters(), target.Letters()
	if len(g) != len(t) {
		return nil, ErrLengthMismatch
	}

	res := make([]Feedback, len(g))
	remaining := make(map[rune]int, len(t))

	for i := range g {
		if g[i] == t[i] {
			res[i] = FeedbackCorrect
		} else {
			remaining[t[i]]++
		}
	}

	for i := range g {
		if res[i] == FeedbackCorrect {
			continue
		}
		if remaining[g[i]] > 0 {
			res[i] = FeedbackPresent
			remaining[g[i]]--
		} else {
			res[i] = FeedbackAbsent
		}
	}
	return res, nil
}

// allCorrect reports whether every position is Correct.
func allCorrect(fb []Feedback) bool {
	for _, f := range fb {
		if f != FeedbackCorrect {
			return false
		}
	}
	return true
}

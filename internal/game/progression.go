// internal/game/progression.go
//
// Round progression: decides what a recorded guess means for the round.
//
// State transitions per guess (round must be in progress):
//   - match, length < longest available → advanced (a new, longer round follows)
//   - match, length == longest          → completed (ladder finished)
//   - miss, no attempts left            → lost (target is revealed)
//   - miss otherwise                    → stays in progress
//
// Hint policy: once per round, on the miss that brings the miss count to
// HintAfterMisses, one target letter the player has not yet found (keyboard
// status below present) is picked uniformly and surfaced.

package game

import (
	"slices"

	"github.com/RubyShuey/Otter/internal/words"
)

// HintAfterMisses is the miss count that triggers the hint.
const HintAfterMisses = 3

// Progression applies the round state machine.
type Progression struct {
	MaxLength    int  // longest word length available in the word list
	HintsEnabled bool // hint policy on/off
	Rand         words.Rand
}

// Step updates r's outcome and hint after its latest guess was recorded and
// merged into kb. It returns the hinted letter when the hint fires.
func (p Progression) Step(r *RoundState, kb Keyboard, matched bool) (rune, bool) {
	if matched {
		if r.RequiredLength < p.MaxLength {
			r.Outcome = OutcomeAdvanced
		} else {
			r.Outcome = OutcomeCompleted
		}
		return 0, false
	}

	r.Hint.Misses++
	if r.AttemptsRemaining <= 0 {
		r.Outcome = OutcomeLost
		return 0, false
	}
	if !p.HintsEnabled || r.Hint.Given || r.Hint.Misses != HintAfterMisses {
		return 0, false
	}

	candidates := hintCandidates(r.Target, kb)
	if len(candidates) == 0 {
		return 0, false
	}
	letter := candidates[p.Rand.IntN(len(candidates))]
	r.Hint.Given, r.Hint.Letter = true, letter
	return letter, true
}

// hintCandidates returns the distinct target letters, in target order, whose
// keyboard status is still below present.
func hintCandidates(target words.Word, kb Keyboard) []rune {
	var out []rune
	for _, l := range target.Letters() {
		if kb.Status(l) < FeedbackPresent && !slices.Contains(out, l) {
			out = append(out, l)
		}
	}
	return out
}

// internal/game/types.go
//
// Core type definitions for the word-ladder game engine.
// Defines:
//   - Feedback: per-letter result of a guess (absent/present/correct).
//   - Outcome:  state of one round (in progress/lost/advanced/completed).
//   - RoundState, Attempt, HintState: the explicit state of one round.

package game

import (
	"fmt"
	"slices"

	"github.com/RubyShuey/Otter/internal/words"
)

// Feedback is the evaluation of one guessed letter. Values are ordered by
// rank, so a larger Feedback is better knowledge about a letter.
type Feedback uint8

const (
	FeedbackUnknown Feedback = iota // never guessed; keyboard only
	FeedbackAbsent
	FeedbackPresent
	FeedbackCorrect
)

var feedbackNames = [...]string{"unknown", "absent", "present", "correct"}

func (f Feedback) String() string {
	if int(f) < len(feedbackNames) {
		return feedbackNames[f]
	}
	return fmt.Sprintf("Feedback(%d)", f)
}

// MarshalText encodes feedback as its lower-case name for JSON.
func (f Feedback) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// Outcome is the state of a round. Everything but OutcomeInProgress is
// terminal for the round it belongs to.
type Outcome uint8

const (
	OutcomeInProgress Outcome = iota
	OutcomeLost
	OutcomeAdvanced  // guessed; a longer round follows
	OutcomeCompleted // guessed at the longest length; the ladder is done
)

var outcomeNames = [...]string{"in_progress", "lost", "advanced", "completed"}

func (o Outcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return fmt.Sprintf("Outcome(%d)", o)
}

func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// Attempt is one recorded guess with its feedback.
type Attempt struct {
	Guess    words.Word `json:"guess"`
	Feedback []Feedback `json:"feedback"`
}

// HintState tracks the one-time hint of a round.
type HintState struct {
	Misses int  // guesses in this round that did not match
	Given  bool // hint already surfaced
	Letter rune // the hinted letter once Given
}

// RoundState is the state of one round.
//
// Invariants: Target.Len() == RequiredLength, and
// AttemptsRemaining + len(Attempts) == MaxAttempts.
type RoundState struct {
	Target            words.Word
	RequiredLength    int
	MaxAttempts       int
	AttemptsRemaining int
	Attempts          []Attempt
	Outcome           Outcome
	Hint              HintState
}

// newRound returns the initial state for a round guessing target.
func newRound(target words.Word, maxAttempts int) *RoundState {
	return &RoundState{
		Target:            target,
		RequiredLength:    target.Len(),
		MaxAttempts:       maxAttempts,
		AttemptsRemaining: maxAttempts,
	}
}

// record appends an evaluated guess; every recorded guess uses one attempt.
func (r *RoundState) record(guess words.Word, fb []Feedback) {
	r.Attempts = append(r.Attempts, Attempt{Guess: guess, Feedback: fb})
	r.AttemptsRemaining--
}

// Clone returns a deep copy safe to hand to other goroutines.
func (r RoundState) Clone() RoundState {
	out := r
	out.Attempts = make([]Attempt, len(r.Attempts))
	for i, a := range r.Attempts {
		out.Attempts[i] = Attempt{Guess: a.Guess, Feedback: slices.Clone(a.Feedback)}
	}
	return out
}

// internal/game/engine.go
//
// Game: the single controller owning one player's ladder of rounds.
// Responsibilities:
//   - Start rounds at a required length, retrying while the word list for the
//     language has no words of that length yet.
//   - Validate, evaluate and record guesses; merge the keyboard; run the
//     progression state machine.
//   - Turn input events (letters, backspace, submit) into guesses.
//
// All methods are safe for concurrent use; one guess is processed to
// completion before the next is looked at.

package game

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/RubyShuey/Otter/internal/input"
	"github.com/RubyShuey/Otter/internal/words"
)

var (
	ErrNoRound        = errors.New("game: no round started")
	ErrRoundOver      = errors.New("game: round is over")
	ErrNotLetters     = errors.New("game: guess must contain only letters")
	ErrNoPendingRound = errors.New("game: no next round pending")
	ErrLadderComplete = errors.New("game: all word lengths completed")
)

const (
	defaultMaxAttempts = 8
	defaultStartLength = 2
)

// BankProvider returns the current word bank for a language.
// *words.Catalog implements it.
type BankProvider interface {
	Bank(lang string) (*words.Bank, error)
}

// Picker chooses the target word of a round.
type Picker interface {
	Pick(b *words.Bank, lang string, length int) (words.Word, error)
}

// RandomPicker draws uniformly from the words of the requested length.
type RandomPicker struct{ Rand words.Rand }

func (p RandomPicker) Pick(b *words.Bank, _ string, length int) (words.Word, error) {
	return b.RandomWord(length, p.Rand)
}

// replayPicker draws uniformly from the words of the requested length other
// than avoid, the target that was just revealed. avoid is only returned when
// it is the sole word of that length.
type replayPicker struct {
	rand  words.Rand
	avoid words.Word
}

func (p replayPicker) Pick(b *words.Bank, _ string, length int) (words.Word, error) {
	list := b.WordsOf(length)
	if len(list) == 0 {
		return "", fmt.Errorf("%w: %d", words.ErrNoWordsAvailable, length)
	}
	others := slices.DeleteFunc(slices.Clone(list), func(w words.Word) bool { return w == p.avoid })
	if len(others) == 0 {
		return list[0], nil
	}
	return others[p.rand.IntN(len(others))], nil
}

// Settings configure one game.
type Settings struct {
	Language      string
	Mode          string // "random" or "daily"; informational
	MaxAttempts   int
	StartLength   int
	HintsEnabled  bool
	RetryInterval time.Duration // wait between round-start attempts
	RetryAttempts int           // extra attempts when no words are available
}

// Game is one player's run up the length ladder.
type Game struct {
	ID       string
	settings Settings
	banks    BankProvider
	picker   Picker
	rng      words.Rand

	mu         sync.Mutex
	round      *RoundState
	keyboard   Keyboard
	buffer     *input.Buffer
	maxLength  int   // of the bank the current round was drawn from
	lengths    []int // populated lengths of that bank
	nextLength int   // pending after an advanced round
}

// New creates a game. A nil picker draws uniformly with rng; a nil rng uses
// crypto/rand. Call StartRound before submitting guesses.
func New(id string, banks BankProvider, s Settings, picker Picker, rng words.Rand) *Game {
	if s.MaxAttempts <= 0 {
		s.MaxAttempts = defaultMaxAttempts
	}
	if s.StartLength <= 0 {
		s.StartLength = defaultStartLength
	}
	if rng == nil {
		rng = words.CryptoRand{}
	}
	if picker == nil {
		picker = RandomPicker{Rand: rng}
	}
	return &Game{
		ID:       id,
		settings: s,
		banks:    banks,
		picker:   picker,
		rng:      rng,
		keyboard: Keyboard{},
		buffer:   input.NewBuffer(0),
	}
}

// Settings returns the game's settings.
func (g *Game) Settings() Settings { return g.settings }

// Result is what one submitted guess produced.
type Result struct {
	Guess      words.Word
	Feedback   []Feedback
	Transition Outcome    // outcome of the round after this guess
	Round      RoundState // copy of the updated round
	Hint       rune       // non-zero when the hint fired on this guess
	Answer     words.Word // the target, revealed when the round is lost
	NextLength int        // length of the next round after an advance
}

// StartRound begins a new round at length, capped at the longest length of
// the word list. While the language has no words of that length it retries
// every RetryInterval, up to RetryAttempts times, then fails with an error
// wrapping words.ErrNoWordsAvailable.
func (g *Game) StartRound(ctx context.Context, length int) (RoundState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.startRoundLocked(ctx, length, g.picker)
}

func (g *Game) startRoundLocked(ctx context.Context, length int, picker Picker) (RoundState, error) {
	if length <= 0 {
		length = g.settings.StartLength
	}

	var (
		target  words.Word
		maxLen  int
		lengths []int
	)
	pick := func() error {
		bank, err := g.banks.Bank(g.settings.Language)
		if err != nil {
			return retryable(err)
		}
		n := min(length, bank.MaxLength())
		w, err := picker.Pick(bank, g.settings.Language, n)
		if err != nil {
			return retryable(err)
		}
		target, maxLen, lengths = w, bank.MaxLength(), bank.Lengths()
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(g.settings.RetryInterval), uint64(max(g.settings.RetryAttempts, 0))),
		ctx,
	)
	if err := backoff.Retry(pick, policy); err != nil {
		return RoundState{}, fmt.Errorf("start %d-letter round: %w", length, err)
	}

	g.round = newRound(target, g.settings.MaxAttempts)
	g.keyboard = Keyboard{}
	g.buffer.Reset(g.round.RequiredLength)
	g.maxLength = maxLen
	g.lengths = lengths
	g.nextLength = 0
	return g.round.Clone(), nil
}

// retryable marks everything but a missing word length as permanent.
func retryable(err error) error {
	if errors.Is(err, words.ErrNoWordsAvailable) {
		return err
	}
	return backoff.Permanent(err)
}

// SubmitGuess validates, evaluates and records guess. A rejected guess
// (ErrLengthMismatch, ErrNotLetters, ErrRoundOver) leaves the game unchanged.
func (g *Game) SubmitGuess(guess string) (*Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.submitLocked(guess)
}

func (g *Game) submitLocked(raw string) (*Result, error) {
	r := g.round
	if r == nil {
		return nil, ErrNoRound
	}
	if r.Outcome != OutcomeInProgress {
		return nil, ErrRoundOver
	}

	guess := words.Normalize(raw, g.settings.Language)
	if guess.Len() != r.RequiredLength {
		return nil, ErrLengthMismatch
	}
	if _, err := words.Parse(string(guess), g.settings.Language); err != nil {
		return nil, ErrNotLetters
	}
	fb, err := Evaluate(guess, r.Target)
	if err != nil {
		return nil, err
	}

	// evaluate → round state → keyboard → progression
	r.record(guess, fb)
	g.keyboard.MergeGuess(guess, fb)
	prog := Progression{MaxLength: g.maxLength, HintsEnabled: g.settings.HintsEnabled, Rand: g.rng}
	hint, _ := prog.Step(r, g.keyboard, allCorrect(fb))

	res := &Result{
		Guess:      guess,
		Feedback:   fb,
		Transition: r.Outcome,
		Hint:       hint,
	}
	switch r.Outcome {
	case OutcomeAdvanced:
		g.nextLength = nextLength(g.lengths, r.RequiredLength)
		res.NextLength = g.nextLength
	case OutcomeLost:
		res.Answer = r.Target
	}
	g.buffer.Reset(r.RequiredLength)
	res.Round = r.Clone()
	return res, nil
}

// Input applies one key event. It returns a Result only when the event
// submitted a guess. input.ErrNotEnoughLetters reports a short submit.
func (g *Game) Input(ev input.Event) (*Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.round == nil {
		return nil, ErrNoRound
	}
	if g.round.Outcome != OutcomeInProgress {
		return nil, ErrRoundOver
	}
	guess, submitted, err := g.buffer.Apply(ev)
	if err != nil || !submitted {
		return nil, err
	}
	return g.submitLocked(guess)
}

// NextRound starts the round that follows an advanced round.
func (g *Game) NextRound(ctx context.Context) (RoundState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.round == nil || g.round.Outcome != OutcomeAdvanced || g.nextLength == 0 {
		if g.round != nil && g.round.Outcome == OutcomeCompleted {
			return RoundState{}, ErrLadderComplete
		}
		return RoundState{}, ErrNoPendingRound
	}
	return g.startRoundLocked(ctx, g.nextLength, g.picker)
}

// nextLength returns the shortest populated length above current. Lists
// without gaps always give current+1.
func nextLength(lengths []int, current int) int {
	for _, n := range lengths {
		if n > current {
			return n
		}
	}
	return current + 1
}

// Restart replays the current length after a lost round. The new target is
// never the word just revealed, unless it is the only word of that length;
// daily games therefore also get a fresh word.
func (g *Game) Restart(ctx context.Context) (RoundState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.round == nil {
		return RoundState{}, ErrNoRound
	}
	switch g.round.Outcome {
	case OutcomeLost:
		return g.startRoundLocked(ctx, g.round.RequiredLength, replayPicker{rand: g.rng, avoid: g.round.Target})
	case OutcomeCompleted:
		return RoundState{}, ErrLadderComplete
	}
	return RoundState{}, ErrNoPendingRound
}

// Keyboard returns a copy of the current keyboard status.
func (g *Game) Keyboard() Keyboard {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.keyboard.Snapshot()
}

// Typed returns the letters typed so far for the next guess.
func (g *Game) Typed() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.buffer.String()
}

// Round returns a copy of the current round; ok is false before StartRound.
func (g *Game) Round() (RoundState, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.round == nil {
		return RoundState{}, false
	}
	return g.round.Clone(), true
}

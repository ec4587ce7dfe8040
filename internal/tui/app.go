// internal/tui/app.go
//
// Terminal client: one player's ladder on a tcell screen.
//   - Letters, Backspace and Enter feed the game's input buffer.
//   - After an advance the next round starts once the settle delay has passed;
//     the timer posts an interrupt into the event loop.
//   - Enter replays the length after a lost round, or the whole ladder after
//     it has been completed. Esc quits.

package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/RubyShuey/Otter/internal/game"
	"github.com/RubyShuey/Otter/internal/input"
	"github.com/RubyShuey/Otter/internal/words"
)

// nextRoundSignal is posted when the settle delay after an advance is over.
type nextRoundSignal struct{}

// quitSignal is posted when the run context is cancelled.
type quitSignal struct{}

// App drives a *game.Game from terminal events.
type App struct {
	screen tcell.Screen
	game   *game.Game
	banks  game.BankProvider
	settle time.Duration

	message string
	msgKind msgKind
	pending bool // next round scheduled
	timer   *time.Timer
}

type msgKind uint8

const (
	msgInfo msgKind = iota
	msgWarn
	msgGood
)

// New returns an app playing g on screen. banks supplies the alphabet for
// the keyboard row.
func New(screen tcell.Screen, g *game.Game, banks game.BankProvider, settle time.Duration) *App {
	return &App{screen: screen, game: g, banks: banks, settle: settle}
}

// Run starts the first round if needed and processes events until the player
// quits, ctx is cancelled or the screen is finalized.
func (a *App) Run(ctx context.Context) error {
	if _, ok := a.game.Round(); !ok {
		if _, err := a.game.StartRound(ctx, 0); err != nil {
			return err
		}
	}
	stop := context.AfterFunc(ctx, func() {
		_ = a.screen.PostEvent(tcell.NewEventInterrupt(quitSignal{}))
	})
	defer stop()
	defer a.stopTimer()

	for {
		a.draw()
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if a.handle(ctx, ev) {
			return nil
		}
	}
}

// handle processes one event and reports whether the app should quit.
func (a *App) handle(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		act, in := keyToAction(ev, a.game.Settings().Language)
		switch act {
		case actionQuit:
			return true
		case actionInput:
			a.onInput(ctx, in)
		}
	case *tcell.EventInterrupt:
		switch ev.Data().(type) {
		case quitSignal:
			return true
		case nextRoundSignal:
			a.pending = false
			a.nextRound(ctx)
		}
	}
	return false
}

func (a *App) onInput(ctx context.Context, ev input.Event) {
	round, ok := a.game.Round()
	if !ok {
		return
	}
	if round.Outcome != game.OutcomeInProgress {
		if ev.Kind == input.KindSubmit {
			a.continueAfter(ctx, round.Outcome)
		}
		return
	}

	res, err := a.game.Input(ev)
	switch {
	case errors.Is(err, input.ErrNotEnoughLetters), errors.Is(err, game.ErrLengthMismatch):
		a.say(msgWarn, "Not enough letters")
	case errors.Is(err, game.ErrNotLetters):
		a.say(msgWarn, "Only letters, please")
	case err != nil:
		a.say(msgWarn, err.Error())
	case res != nil:
		a.onResult(res)
	default:
		a.message = ""
	}
}

// continueAfter handles Enter on a finished round.
func (a *App) continueAfter(ctx context.Context, outcome game.Outcome) {
	switch outcome {
	case game.OutcomeLost:
		if _, err := a.game.Restart(ctx); err != nil {
			a.say(msgWarn, err.Error())
			return
		}
		a.message = ""
	case game.OutcomeCompleted:
		if _, err := a.game.StartRound(ctx, 0); err != nil {
			a.say(msgWarn, err.Error())
			return
		}
		a.message = ""
	case game.OutcomeAdvanced:
		// the settle timer is already running unless starting the round failed
		if !a.pending {
			a.nextRound(ctx)
		}
	}
}

func (a *App) onResult(res *game.Result) {
	lang := a.game.Settings().Language
	switch res.Transition {
	case game.OutcomeAdvanced:
		a.say(msgGood, fmt.Sprintf("Correct! Next up: %d letters", res.NextLength))
		a.scheduleNext()
	case game.OutcomeCompleted:
		a.say(msgGood, "You climbed every length! Enter to play again, Esc to quit")
	case game.OutcomeLost:
		a.say(msgWarn, fmt.Sprintf("The word was %s. Enter to try again", upper(res.Answer.String(), lang)))
	default:
		if res.Hint != 0 {
			a.say(msgInfo, fmt.Sprintf("Hint: the word contains %s", upper(string(res.Hint), lang)))
		} else {
			a.message = ""
		}
	}
	if res.Transition != game.OutcomeInProgress {
		log.Info().Str("gameId", a.game.ID).Str("outcome", res.Transition.String()).
			Int("length", res.Round.RequiredLength).Int("attempts", len(res.Round.Attempts)).Msg("round finished")
	}
}

// scheduleNext posts nextRoundSignal once the settle delay has passed.
func (a *App) scheduleNext() {
	a.stopTimer()
	a.pending = true
	a.timer = time.AfterFunc(a.settle, func() {
		_ = a.screen.PostEvent(tcell.NewEventInterrupt(nextRoundSignal{}))
	})
}

func (a *App) stopTimer() {
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

func (a *App) nextRound(ctx context.Context) {
	round, err := a.game.NextRound(ctx)
	if err != nil {
		if errors.Is(err, words.ErrNoWordsAvailable) {
			a.say(msgWarn, "No words of that length yet. Enter to try again")
		} else if !errors.Is(err, game.ErrNoPendingRound) {
			a.say(msgWarn, err.Error())
		}
		return
	}
	a.message = ""
	log.Debug().Str("gameId", a.game.ID).Int("length", round.RequiredLength).Msg("round started")
}

func (a *App) say(kind msgKind, msg string) {
	a.message, a.msgKind = msg, kind
}

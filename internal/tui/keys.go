package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/RubyShuey/Otter/internal/input"
	"github.com/RubyShuey/Otter/internal/words"
)

// action is what a key press asks the client to do.
type action uint8

const (
	actionNone action = iota
	actionInput
	actionQuit
)

// keyToAction maps a tcell key event to an action. Letters are normalized
// with lang's casing rules; keys that are not letters of lang are ignored.
func keyToAction(ev *tcell.EventKey, lang string) (action, input.Event) {
	// Named keys.
	switch ev.Key() {
	case tcell.KeyEnter:
		return actionInput, input.Submit()
	case tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyDelete:
		return actionInput, input.Backspace()
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionQuit, input.Event{}
	case tcell.KeyRune:
	default:
		return actionNone, input.Event{}
	}

	r, ok := words.NormalizeLetter(string(ev.Rune()), lang)
	if !ok {
		return actionNone, input.Event{}
	}
	return actionInput, input.Letter(r)
}

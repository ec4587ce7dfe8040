// Package input turns key presses from any front-end (browser keyboard, the
// on-screen keyboard, a terminal) into one stream of Events, and assembles
// them into guesses.
package input

import (
	"errors"
	"strings"

	"github.com/RubyShuey/Otter/internal/words"
)

// ErrNotEnoughLetters is returned on Submit before the guess is full.
var ErrNotEnoughLetters = errors.New("input: not enough letters")

// Kind is the type of an input event.
type Kind uint8

const (
	KindLetter Kind = iota + 1
	KindBackspace
	KindSubmit
)

// Event is one key press.
type Event struct {
	Kind   Kind
	Letter rune // KindLetter only
}

func Letter(r rune) Event { return Event{Kind: KindLetter, Letter: r} }
func Backspace() Event    { return Event{Kind: KindBackspace} }
func Submit() Event       { return Event{Kind: KindSubmit} }

// ParseKey maps a key name to an Event. Accepts "Enter"/"Submit",
// "Backspace"/"Del"/"Delete" (case-insensitive) and single letters, which are
// normalized with lang's casing rules.
func ParseKey(key, lang string) (Event, bool) {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "enter", "submit":
		return Submit(), true
	case "backspace", "del", "delete":
		return Backspace(), true
	}
	r, ok := words.NormalizeLetter(key, lang)
	if !ok {
		return Event{}, false
	}
	return Letter(r), true
}

// Buffer collects the letters of the guess being typed.
type Buffer struct {
	length  int
	letters []rune
}

// NewBuffer returns a buffer for guesses of length letters.
func NewBuffer(length int) *Buffer {
	return &Buffer{length: length, letters: make([]rune, 0, length)}
}

// Reset empties the buffer and sets a new guess length.
func (b *Buffer) Reset(length int) {
	b.length = length
	b.letters = b.letters[:0]
}

// Apply processes ev. On a successful Submit it returns the complete guess,
// submitted=true, and empties the buffer. Letters past the guess length and
// Backspace on an empty buffer are ignored. Submit on a short guess returns
// ErrNotEnoughLetters and keeps the letters.
func (b *Buffer) Apply(ev Event) (guess string, submitted bool, err error) {
	switch ev.Kind {
	case KindLetter:
		if len(b.letters) < b.length {
			b.letters = append(b.letters, ev.Letter)
		}
	case KindBackspace:
		if len(b.letters) > 0 {
			b.letters = b.letters[:len(b.letters)-1]
		}
	case KindSubmit:
		if len(b.letters) != b.length {
			return "", false, ErrNotEnoughLetters
		}
		guess = string(b.letters)
		b.letters = b.letters[:0]
		return guess, true, nil
	}
	return "", false, nil
}

// String returns the letters typed so far.
func (b *Buffer) String() string { return string(b.letters) }

// Len returns the number of letters typed so far.
func (b *Buffer) Len() int { return len(b.letters) }

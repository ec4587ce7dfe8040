// internal/words/word.go
//
// Word values and letter normalization.
//
// A Word is stored NFC-composed and lower-cased with the casing rules of its
// word list's language, so a decomposed "å" (a + combining ring) and a
// composed "å" are the same single letter. Length is counted in letters
// (runes), never bytes.

package words

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// ErrNotLetters is returned by Parse for input containing anything but letters.
var ErrNotLetters = errors.New("words: not a word of letters")

// Word is an immutable, normalized sequence of letters.
type Word string

// Letters returns the word's letters in order.
func (w Word) Letters() []rune { return []rune(string(w)) }

// Len reports the number of letters in w.
func (w Word) Len() int { return utf8.RuneCountInString(string(w)) }

func (w Word) String() string { return string(w) }

// Normalize trims s, lower-cases it using lang's casing rules and composes it
// to NFC. It performs no validation.
func Normalize(s, lang string) Word {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	// A Caser keeps state between calls, so each call gets its own.
	lower := cases.Lower(tagFor(lang)).String(s)
	return Word(norm.NFC.String(lower))
}

// NormalizeLetter normalizes a single typed key. ok is false when the key is
// not exactly one letter after composition.
func NormalizeLetter(key, lang string) (rune, bool) {
	w := Normalize(key, lang)
	if w.Len() != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(string(w))
	return r, unicode.IsLetter(r)
}

// Parse normalizes s and checks that every rune is a letter.
func Parse(s, lang string) (Word, error) {
	w := Normalize(s, lang)
	if w == "" || !isLetters(w) {
		return "", ErrNotLetters
	}
	return w, nil
}

func isLetters(w Word) bool {
	for _, r := range string(w) {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func tagFor(lang string) language.Tag {
	tag, err := language.Parse(lang)
	if err != nil {
		return language.Und
	}
	return tag
}

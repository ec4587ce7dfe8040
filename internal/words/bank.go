// internal/words/bank.go
//
// Bank: the set of target words of one word list, indexed by length.
//
// Word list format:
//   - one word per line, UTF-8; surrounding whitespace is trimmed
//   - empty lines and lines starting with "#" are ignored
//   - entries containing anything but letters are skipped (they cannot be typed)
//   - duplicates collapse to one word
//
// A Bank is immutable once loaded and safe for concurrent readers.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

var (
	// ErrEmptySource means a word list produced no usable words.
	ErrEmptySource = errors.New("words: word list has no usable words")

	// ErrNoWordsAvailable means no words of the requested length exist (yet).
	ErrNoWordsAvailable = errors.New("words: no words available for length")
)

// Bank holds the words of one list grouped by letter count.
type Bank struct {
	lang     string
	byLen    map[int][]Word // sorted, deduplicated
	alphabet []rune
	max      int
	count    int
}

// Load parses a line-delimited word list for language lang.
// Returns ErrEmptySource if no usable word is found.
func Load(r io.Reader, lang string) (*Bank, error) {
	b := &Bank{lang: lang, byLen: make(map[int][]Word)}
	seen := make(map[Word]struct{})
	letters := make(map[rune]struct{})
	skipped := 0

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		w, err := Parse(line, lang)
		if err != nil {
			skipped++
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		n := w.Len()
		b.byLen[n] = append(b.byLen[n], w)
		b.max = max(b.max, n)
		b.count++
		for _, l := range w.Letters() {
			letters[l] = struct{}{}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("words: read %s list: %w", lang, err)
	}
	if b.count == 0 {
		return nil, ErrEmptySource
	}

	for n := range b.byLen {
		slices.Sort(b.byLen[n])
	}
	for l := range letters {
		b.alphabet = append(b.alphabet, l)
	}
	slices.Sort(b.alphabet)

	if skipped > 0 {
		log.Debug().Str("lang", lang).Int("skipped", skipped).Msg("skipped non-letter entries")
	}
	if gaps := b.gaps(); len(gaps) > 0 {
		log.Warn().Str("lang", lang).Ints("lengths", gaps).Msg("word list has no words for some lengths")
	}
	return b, nil
}

// gaps lists the lengths between the shortest and longest word with no words.
func (b *Bank) gaps() []int {
	lengths := b.Lengths()
	var out []int
	for n := lengths[0] + 1; n < b.max; n++ {
		if _, ok := b.byLen[n]; !ok {
			out = append(out, n)
		}
	}
	return out
}

// Language returns the language code the bank was loaded for.
func (b *Bank) Language() string { return b.lang }

// RandomWord returns a uniformly chosen word with length letters.
func (b *Bank) RandomWord(length int, rng Rand) (Word, error) {
	list := b.byLen[length]
	if len(list) == 0 {
		return "", fmt.Errorf("%w: %d", ErrNoWordsAvailable, length)
	}
	return list[rng.IntN(len(list))], nil
}

// WordsOf returns a sorted copy of the words with length letters.
func (b *Bank) WordsOf(length int) []Word {
	return slices.Clone(b.byLen[length])
}

// MaxLength returns the longest word length, or 0 for an empty bank.
func (b *Bank) MaxLength() int {
	if b == nil {
		return 0
	}
	return b.max
}

// Lengths returns the populated lengths in ascending order.
func (b *Bank) Lengths() []int {
	out := make([]int, 0, len(b.byLen))
	for n := range b.byLen {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// Count returns the number of distinct words.
func (b *Bank) Count() int { return b.count }

// Alphabet returns every letter used by the list, sorted.
func (b *Bank) Alphabet() []rune { return slices.Clone(b.alphabet) }

// internal/daily/daily.go
//
// Daily word selection: every player gets the same ladder on the same day.
// The index of the word for a (date, language, length) is
// HMAC-SHA256(salt, "YYYY-MM-DD|lang/length") mod n, taken over the sorted
// word list, so it only changes when the date or the list changes.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/RubyShuey/Otter/internal/words"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index in [0, n) for date and key.
func WordIndex(date time.Time, salt, key string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date) + "|" + key))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// Picker picks the word of the day. It implements game.Picker.
type Picker struct {
	Salt string
	Now  func() time.Time // defaults to time.Now
}

// Pick returns the word of the day for lang at length letters.
func (p Picker) Pick(b *words.Bank, lang string, length int) (words.Word, error) {
	list := b.WordsOf(length)
	if len(list) == 0 {
		return "", fmt.Errorf("%w: %d", words.ErrNoWordsAvailable, length)
	}
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	key := fmt.Sprintf("%s/%d", lang, length)
	return list[WordIndex(now(), p.Salt, key, len(list))], nil
}

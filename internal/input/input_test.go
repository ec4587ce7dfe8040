package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		lang string
		want Event
		ok   bool
	}{
		{"enter", "Enter", "en", Submit(), true},
		{"backspace", "Backspace", "en", Backspace(), true},
		{"on-screen del", "Del", "en", Backspace(), true},
		{"upper letter", "Q", "en", Letter('q'), true},
		{"locale letter", "Å", "no", Letter('å'), true},
		{"digit", "7", "en", Event{}, false},
		{"named key", "Shift", "en", Event{}, false},
		{"empty", "", "en", Event{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseKey(tt.key, tt.lang)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuffer_TypeAndSubmit(t *testing.T) {
	b := NewBuffer(3)
	for _, r := range "cats" {
		_, submitted, err := b.Apply(Letter(r))
		require.NoError(t, err)
		assert.False(t, submitted)
	}
	assert.Equal(t, "cat", b.String(), "letters past the guess length are ignored")

	guess, submitted, err := b.Apply(Submit())
	require.NoError(t, err)
	assert.True(t, submitted)
	assert.Equal(t, "cat", guess)
	assert.Zero(t, b.Len())
}

func TestBuffer_NotEnoughLetters(t *testing.T) {
	b := NewBuffer(3)
	b.Apply(Letter('a'))
	b.Apply(Letter('b'))

	_, submitted, err := b.Apply(Submit())
	assert.ErrorIs(t, err, ErrNotEnoughLetters)
	assert.False(t, submitted)
	assert.Equal(t, "ab", b.String(), "a rejected submit keeps the letters")
}

func TestBuffer_Backspace(t *testing.T) {
	b := NewBuffer(2)
	b.Apply(Backspace())
	assert.Zero(t, b.Len(), "backspace on empty buffer is a no-op")

	b.Apply(Letter('x'))
	b.Apply(Letter('y'))
	b.Apply(Backspace())
	assert.Equal(t, "x", b.String())

	b.Reset(4)
	assert.Zero(t, b.Len())
	for _, r := range "abcd" {
		b.Apply(Letter(r))
	}
	assert.Equal(t, "abcd", b.String())
}

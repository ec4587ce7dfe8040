package words

import (
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) }

func TestLoad_GroupsByLength(t *testing.T) {
	src := "  ab \n\nCAT\ndog\n# comment\nbird\nx-ray\nab\n"
	b, err := Load(strings.NewReader(src), "en")
	require.NoError(t, err)

	assert.Equal(t, 4, b.Count())
	assert.Equal(t, []int{2, 3, 4}, b.Lengths())
	assert.Equal(t, 4, b.MaxLength())
	assert.Equal(t, []Word{"cat", "dog"}, b.WordsOf(3))
	assert.Equal(t, []Word{"ab"}, b.WordsOf(2))
	for _, n := range b.Lengths() {
		for _, w := range b.WordsOf(n) {
			assert.Equal(t, n, w.Len(), "word %q filed under %d", w, n)
		}
	}
}

func TestLoad_EmptySource(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"blank lines", "\n   \n\t\n"},
		{"comments only", "# nothing\n#here\n"},
		{"no letters", "123\n--\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tc.src), "en")
			assert.ErrorIs(t, err, ErrEmptySource)
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestLoad_ReadError(t *testing.T) {
	_, err := Load(failingReader{}, "en")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmptySource)
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestLoad_LocaleLetters(t *testing.T) {
	// "blå" written with a combining ring above must compose to three letters.
	src := "BL\u00c5\nbla\u030a\ns\u00f8t\n\u00c6RE\n"
	b, err := Load(strings.NewReader(src), "no")
	require.NoError(t, err)

	assert.Equal(t, 3, b.Count())
	assert.Equal(t, []Word{"bl\u00e5", "s\u00f8t", "\u00e6re"}, b.WordsOf(3))
	assert.Equal(t, 3, b.MaxLength())
	assert.Contains(t, b.Alphabet(), 'å')
	assert.Contains(t, b.Alphabet(), 'æ')
}

func TestRandomWord(t *testing.T) {
	b, err := Load(strings.NewReader("ab\ncd\nef\nxyz\n"), "en")
	require.NoError(t, err)
	rng := seeded()

	seen := map[Word]int{}
	for i := 0; i < 300; i++ {
		w, err := b.RandomWord(2, rng)
		require.NoError(t, err)
		require.Equal(t, 2, w.Len())
		seen[w]++
	}
	assert.Len(t, seen, 3, "every two-letter word should be drawn")
}

func TestRandomWord_NoWordsAvailable(t *testing.T) {
	b, err := Load(strings.NewReader("ab\nxyz\n"), "en")
	require.NoError(t, err)

	for _, n := range []int{0, 1, 4, 99} {
		w, err := b.RandomWord(n, seeded())
		assert.ErrorIs(t, err, ErrNoWordsAvailable, "length %d", n)
		assert.Empty(t, w)
	}
}

func TestMaxLength_NilBank(t *testing.T) {
	var b *Bank
	assert.Equal(t, 0, b.MaxLength())
}

func TestParse(t *testing.T) {
	w, err := Parse(" Hello ", "en")
	require.NoError(t, err)
	assert.Equal(t, Word("hello"), w)

	_, err = Parse("he11o", "en")
	assert.ErrorIs(t, err, ErrNotLetters)
	_, err = Parse("   ", "en")
	assert.ErrorIs(t, err, ErrNotLetters)
}

func TestNormalizeLetter(t *testing.T) {
	r, ok := NormalizeLetter("Ø", "no")
	assert.True(t, ok)
	assert.Equal(t, 'ø', r)

	r, ok = NormalizeLetter("å", "no")
	assert.True(t, ok)
	assert.Equal(t, 'å', r)

	_, ok = NormalizeLetter("ab", "en")
	assert.False(t, ok)
	_, ok = NormalizeLetter("7", "en")
	assert.False(t, ok)
}

type stringSource struct {
	body string
	err  error
}

func (s *stringSource) Open(context.Context) (io.ReadCloser, error) {
	if s.err != nil {
		return nil, s.err
	}
	return io.NopCloser(strings.NewReader(s.body)), nil
}
func (s *stringSource) String() string { return "test" }

func TestCatalog_ReloadKeepsPreviousBankOnFailure(t *testing.T) {
	en := &stringSource{body: "ab\ncat\n"}
	no := &stringSource{body: "blå\n"}
	var loaded []string
	c := NewCatalog(map[string]Source{"en": en, "no": no}, func(lang string, _ *Bank) {
		loaded = append(loaded, lang)
	})

	require.NoError(t, c.Reload(context.Background()))
	assert.Equal(t, []string{"en", "no"}, c.Languages())
	assert.ElementsMatch(t, []string{"en", "no"}, loaded)

	en.err = errors.New("gone")
	require.NoError(t, c.Reload(context.Background()))
	b, err := c.Bank("en")
	require.NoError(t, err)
	assert.Equal(t, 3, b.MaxLength(), "previous en bank survives a failed reload")
}

func TestCatalog_Errors(t *testing.T) {
	c := NewCatalog(map[string]Source{"en": &stringSource{body: ""}}, nil)

	_, err := c.Bank("en")
	assert.ErrorIs(t, err, ErrNoWordsAvailable, "configured but not loaded yet")

	err = c.Reload(context.Background())
	assert.ErrorIs(t, err, ErrEmptySource)

	_, err = c.Bank("xx")
	assert.ErrorIs(t, err, ErrUnknownLanguage)
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "en.txt")
	require.NoError(t, os.WriteFile(path, []byte("ab\ncde\n"), 0o644))

	c := NewCatalog(map[string]Source{"en": FileSource(path)}, nil)
	require.NoError(t, c.Reload(context.Background()))
	assert.Equal(t, []string{path}, c.Files())

	b, err := c.Bank("en")
	require.NoError(t, err)
	assert.Equal(t, 2, b.Count())
}

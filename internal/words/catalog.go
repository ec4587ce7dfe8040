// internal/words/catalog.go
//
// Catalog maps language codes to loaded Banks.
//
// Each language has one Source (embedded default, file on disk, or a SQLite
// word store). Reload loads every source and swaps the whole map at once, so
// readers always see a consistent snapshot. A language whose source fails to
// load keeps its previous bank.

package words

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

// ErrUnknownLanguage means the catalog has no source for a language.
var ErrUnknownLanguage = errors.New("words: unknown language")

// Source opens a line-delimited word list.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	String() string
}

// FileSource reads a word list from a path on disk.
type FileSource string

func (f FileSource) Open(context.Context) (io.ReadCloser, error) { return os.Open(string(f)) }
func (f FileSource) String() string                             { return "file:" + string(f) }

// LoadHook is called after a language's bank is (re)loaded.
type LoadHook func(lang string, b *Bank)

// Catalog holds one Bank per configured language.
type Catalog struct {
	sources  map[string]Source
	banks    atomic.Pointer[map[string]*Bank]
	reload   sync.Mutex // serializes Reload
	onLoad   LoadHook
	onReload func(err error)
}

// NewCatalog creates a catalog over sources. Call Reload before use.
func NewCatalog(sources map[string]Source, onLoad LoadHook) *Catalog {
	c := &Catalog{sources: sources, onLoad: onLoad}
	empty := map[string]*Bank{}
	c.banks.Store(&empty)
	return c
}

// Reload loads every source. It returns ErrEmptySource when, afterwards, no
// language has a bank at all; per-language failures are logged and joined
// into the returned error only in that case.
func (c *Catalog) Reload(ctx context.Context) error {
	c.reload.Lock()
	defer c.reload.Unlock()

	prev := *c.banks.Load()
	next := make(map[string]*Bank, len(c.sources))
	var errs []error

	for lang, src := range c.sources {
		b, err := LoadSource(ctx, src, lang)
		if err != nil {
			log.Error().Err(err).Str("lang", lang).Str("source", src.String()).Msg("load word list")
			errs = append(errs, fmt.Errorf("%s: %w", lang, err))
			if old, ok := prev[lang]; ok {
				next[lang] = old
			}
			continue
		}
		next[lang] = b
		log.Info().Str("lang", lang).Str("source", src.String()).
			Int("words", b.Count()).Int("maxLength", b.MaxLength()).Msg("word list loaded")
		if c.onLoad != nil {
			c.onLoad(lang, b)
		}
	}

	c.banks.Store(&next)
	var err error
	if len(next) == 0 {
		err = errors.Join(append([]error{ErrEmptySource}, errs...)...)
	}
	if c.onReload != nil {
		c.onReload(err)
	}
	return err
}

// OnReload registers fn to be called with the result of every Reload.
// Call it before the catalog is shared.
func (c *Catalog) OnReload(fn func(err error)) { c.onReload = fn }

// LoadSource opens src and loads it as a bank for lang.
func LoadSource(ctx context.Context, src Source, lang string) (*Bank, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return Load(rc, lang)
}

// Bank returns the current bank for lang. A configured language that has not
// loaded yet reports ErrNoWordsAvailable so callers may retry.
func (c *Catalog) Bank(lang string) (*Bank, error) {
	if b, ok := (*c.banks.Load())[lang]; ok {
		return b, nil
	}
	if _, ok := c.sources[lang]; ok {
		return nil, fmt.Errorf("%w: %s list not loaded", ErrNoWordsAvailable, lang)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
}

// Languages returns the codes of all loaded languages, sorted.
func (c *Catalog) Languages() []string {
	banks := *c.banks.Load()
	out := make([]string, 0, len(banks))
	for lang := range banks {
		out = append(out, lang)
	}
	slices.Sort(out)
	return out
}

// Files returns the on-disk paths of file-backed sources.
func (c *Catalog) Files() []string {
	var out []string
	for _, src := range c.sources {
		if f, ok := src.(FileSource); ok {
			out = append(out, string(f))
		}
	}
	slices.Sort(out)
	return out
}

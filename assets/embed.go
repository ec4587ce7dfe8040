// Package assets embeds the default word lists, one file per language
// named words_<lang>.txt.
package assets

import (
	"context"
	"embed"
	"io"
	"io/fs"
	"sort"
	"strings"
)

//go:embed words_*.txt
var FS embed.FS

// Source reads the embedded word list of one language. It implements
// words.Source.
type Source string

func (s Source) Open(context.Context) (io.ReadCloser, error) {
	return FS.Open("words_" + string(s) + ".txt")
}

func (s Source) String() string { return "embedded:" + string(s) }

// Languages lists the languages with an embedded word list.
func Languages() []string {
	names, _ := fs.Glob(FS, "words_*.txt")
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, strings.TrimSuffix(strings.TrimPrefix(n, "words_"), ".txt"))
	}
	sort.Strings(out)
	return out
}

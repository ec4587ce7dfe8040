package app

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/RubyShuey/Otter/assets"
	"github.com/RubyShuey/Otter/internal/config"
	"github.com/RubyShuey/Otter/internal/metrics"
	"github.com/RubyShuey/Otter/internal/words"
	"github.com/RubyShuey/Otter/internal/wordstore"
)

// Sources picks one word list source per language. Later sources win:
// embedded defaults, then languages imported into the word store, then
// files named in the config. The returned store is nil when no word store
// is configured; the caller closes it.
func Sources(ctx context.Context, cfg config.WordsConfig) (map[string]words.Source, *wordstore.Store, error) {
	out := map[string]words.Source{}
	if cfg.Embedded {
		for _, lang := range assets.Languages() {
			out[lang] = assets.Source(lang)
		}
	}

	var ws *wordstore.Store
	if cfg.DB != "" {
		var err error
		ws, err = wordstore.Open(ctx, cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("open word store: %w", err)
		}
		langs, err := ws.Languages(ctx)
		if err != nil {
			ws.Close()
			return nil, nil, fmt.Errorf("list word store languages: %w", err)
		}
		for _, l := range langs {
			out[l.Lang] = ws.Source(l.Lang)
		}
	}

	for lang, path := range cfg.Files {
		out[lang] = words.FileSource(path)
	}

	for _, lang := range slices.Sorted(maps.Keys(out)) {
		log.Debug().Str("lang", lang).Str("source", out[lang].String()).Msg("word list source")
	}
	return out, ws, nil
}

// NewCatalog builds a catalog over sources that reports bank sizes and
// reloads to metrics, and loads it once.
func NewCatalog(ctx context.Context, sources map[string]words.Source) (*words.Catalog, error) {
	c := words.NewCatalog(sources, func(lang string, b *words.Bank) {
		metrics.WordListWords.WithLabelValues(lang).Set(float64(b.Count()))
	})
	c.OnReload(func(err error) {
		metrics.WordListReloadsTotal.WithLabelValues(metrics.ReloadResult(err)).Inc()
	})
	if err := c.Reload(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

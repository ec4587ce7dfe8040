package words

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// Watch reloads c whenever one of its file sources changes. Events are
// debounced so an editor's write-rename-chmod burst triggers one reload.
// It blocks until ctx is done.
func Watch(ctx context.Context, c *Catalog, debounce time.Duration) error {
	files := c.Files()
	if len(files) == 0 {
		<-ctx.Done()
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// Watch directories: editors often replace files, which drops file watches.
	watched := make(map[string]struct{})
	wanted := make(map[string]struct{}, len(files))
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		wanted[abs] = struct{}{}
		dir := filepath.Dir(abs)
		if _, ok := watched[dir]; ok {
			continue
		}
		if err := w.Add(dir); err != nil {
			return err
		}
		watched[dir] = struct{}{}
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			abs, _ := filepath.Abs(ev.Name)
			if _, ok := wanted[abs]; !ok {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				log.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("word list changed")
				timer.Reset(debounce)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("word list watcher")
		case <-timer.C:
			if err := c.Reload(ctx); err != nil {
				log.Error().Err(err).Msg("reload word lists")
			}
		}
	}
}

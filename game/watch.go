package game

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// WatchCorpus reloads the corpus file at path into g whenever it is written or
// replaced, until ctx is canceled. A file that fails to load is logged and the
// previous corpus stays in use.
func WatchCorpus(ctx context.Context, path string, g *Game, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()
	// Watch the directory so that editors which replace the file by renaming
	// over it are still seen.
	name := filepath.Clean(path)
	dir := filepath.Dir(name)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	log.Debug("watching corpus", zap.String("path", name))
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != name || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			c, err := LoadCorpus(name)
			if err != nil {
				log.Warn("corpus reload failed", zap.String("path", name), zap.Error(err))
				continue
			}
			g.SetCorpus(c)
			log.Info("corpus reloaded", zap.String("path", name), zap.Int("puzzles", c.Len()))
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("corpus watcher error", zap.Error(err))
		}
	}
}

package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fhuszti/portfolio-medias-go/internal/logger"
	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 250 * time.Millisecond

// Watch reloads the catalog whenever the document is rewritten by another
// process, such as the admin front end. It blocks until ctx is done.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// atomic replacements swap the inode, so watch the directory instead of the file
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("failed to watch catalog directory: %w", err)
	}
	logger.Infof(ctx, "👀 Watching media catalog %q for external changes", s.path)

	target := filepath.Clean(s.path)
	var debounceTimer *time.Timer
	reload := func() {
		if err := s.Reload(); err != nil {
			logger.Warnf(ctx, "⚠️  Could not reload media catalog, keeping previous state: %v", err)
			return
		}
		logger.Info(ctx, "🔄 Media catalog reloaded")
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			// a removal is followed by a create when the file is replaced
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(watchDebounce, reload)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warnf(ctx, "⚠️  Catalog watcher error: %v", err)

		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil
		}
	}
}

package file

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/ghfinder/internal/core/domain"
	"github.com/custodia-labs/ghfinder/internal/logger"
)

// Watch reloads the configuration whenever its file is written, created or
// renamed into place, and passes the result to onChange. An invalid file is
// reported to onChange with its load error and zero settings; the previous
// settings stay in effect. Watch blocks until ctx is done.
//
// The parent directory is watched rather than the file itself, since editors
// commonly replace the file on save.
func (s *ConfigStore) Watch(ctx context.Context, onChange func(domain.Settings, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(s.filePath)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	logger.Debug("config: watching %s", s.filePath)

	target := filepath.Clean(s.filePath)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			settings, err := s.Load()
			if err != nil {
				logger.Warn("config: reload failed: %v", err)
				onChange(domain.Settings{}, err)
				continue
			}
			logger.Debug("config: reloaded after %s", event.Op)
			onChange(settings, nil)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("config: watcher error: %v", err)
		}
	}
}

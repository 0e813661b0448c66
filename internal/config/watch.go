package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"postdeck/internal/logging"
)

// debounce window for editors that write config files in several events.
const reloadDebounce = 100 * time.Millisecond

// Watch reloads the config file whenever it changes and delivers each
// successfully parsed config on the returned channel. The watch runs until
// ctx is cancelled; the channel closes when it stops. Parse or validation
// failures are logged and skipped so a half-saved file never reaches the
// UI.
func Watch(ctx context.Context, path string) (<-chan Config, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory: editors commonly replace the file atomically,
	// which drops a watch placed on the file itself.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	out := make(chan Config, 1)
	go func() {
		defer close(out)
		defer watcher.Close()

		var timer *time.Timer
		var timerC <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != filepath.Clean(path) {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(reloadDebounce)
					timerC = timer.C
				} else {
					timer.Reset(reloadDebounce)
				}

			case <-timerC:
				timer = nil
				timerC = nil
				cfg, err := Load(path)
				if err != nil {
					logging.ConfigError("reload skipped: %v", err)
					continue
				}
				logging.Config("config reloaded from %s", path)
				select {
				case out <- cfg:
				case <-ctx.Done():
					return
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logging.ConfigError("watch error: %v", err)
			}
		}
	}()

	return out, nil
}

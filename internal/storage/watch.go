package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"tempo/internal/ui/preferences"
)

const settingsDebounce = 100 * time.Millisecond

// SettingsWatcher reloads settings.yaml when it is edited outside the app.
type SettingsWatcher struct {
	mu        sync.Mutex
	configDir string
	notify    *fsnotify.Watcher
	logger    *zap.Logger
	onChange  func(preferences.Settings)
	last      preferences.Settings
	pending   *time.Timer
	closed    bool
	done      chan struct{}
}

// WatchSettings starts watching configDir. onChange receives settings that
// differ from the last known value.
func WatchSettings(configDir string, current preferences.Settings, logger *zap.Logger, onChange func(preferences.Settings)) (*SettingsWatcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create settings watcher: %w", err)
	}
	// Editors replace files on save, so the directory is watched, not the file.
	if err := watcher.Add(configDir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", configDir, err)
	}

	settings := &SettingsWatcher{
		configDir: configDir,
		notify:    watcher,
		logger:    logger,
		onChange:  onChange,
		last:      current,
		done:      make(chan struct{}),
	}
	go settings.run()
	return settings, nil
}

// Remember records settings the app saved itself so the resulting file
// event is not reported back.
func (watcher *SettingsWatcher) Remember(settings preferences.Settings) {
	watcher.mu.Lock()
	defer watcher.mu.Unlock()
	watcher.last = settings
}

// Close stops watching.
func (watcher *SettingsWatcher) Close() error {
	watcher.mu.Lock()
	if watcher.closed {
		watcher.mu.Unlock()
		return nil
	}
	watcher.closed = true
	if watcher.pending != nil {
		watcher.pending.Stop()
	}
	watcher.mu.Unlock()

	err := watcher.notify.Close()
	<-watcher.done
	return err
}

func (watcher *SettingsWatcher) run() {
	defer close(watcher.done)
	for {
		select {
		case event, ok := <-watcher.notify.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != SettingsFileName {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				watcher.schedule()
			}
		case err, ok := <-watcher.notify.Errors:
			if !ok {
				return
			}
			watcher.logger.Warn("settings watcher error", zap.Error(err))
		}
	}
}

func (watcher *SettingsWatcher) schedule() {
	watcher.mu.Lock()
	defer watcher.mu.Unlock()
	if watcher.closed {
		return
	}
	if watcher.pending != nil {
		watcher.pending.Stop()
	}
	watcher.pending = time.AfterFunc(settingsDebounce, watcher.reload)
}

func (watcher *SettingsWatcher) reload() {
	settings, err := LoadSettings(watcher.configDir)
	if err != nil {
		watcher.logger.Warn("reload settings failed", zap.Error(err))
		return
	}

	watcher.mu.Lock()
	if watcher.closed || settings == watcher.last {
		watcher.mu.Unlock()
		return
	}
	watcher.last = settings
	handler := watcher.onChange
	watcher.mu.Unlock()

	watcher.logger.Info("settings reloaded from disk")
	if handler != nil {
		handler(settings)
	}
}

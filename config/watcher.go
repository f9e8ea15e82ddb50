package config

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/wippyai/bindgen/metadata"
)

// Watcher tracks the config file and the metadata directory and notifies
// listeners, debounced, whenever either changes.
type Watcher struct {
	mu       sync.RWMutex
	config   *Config
	path     string
	logger   *zap.Logger
	onChange []func(*Config)
}

// NewWatcher wraps an already loaded config. path is the config file it was
// loaded from, or "" when it came from the environment.
func NewWatcher(path string, cfg *Config, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &Watcher{config: cfg, logger: logger}
	if path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("absolute path: %w", err)
		}
		w.path = abs
	}
	return w, nil
}

// Get returns the current configuration.
func (w *Watcher) Get() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.config
}

// OnChange registers a callback run after every detected change.
func (w *Watcher) OnChange(fn func(*Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = append(w.onChange, fn)
}

// Reload re-reads the config file. On failure the old config is kept.
func (w *Watcher) Reload() error {
	if w.path == "" {
		return nil
	}
	w.logger.Info("reloading configuration", zap.String("path", w.path))

	cfg, err := Load(w.path)
	if err != nil {
		w.logger.Error("config reload failed, keeping old config", zap.Error(err))
		return fmt.Errorf("reload config: %w", err)
	}

	w.mu.Lock()
	old := w.config
	w.config = cfg
	w.mu.Unlock()

	w.logChanges(old, cfg)
	return nil
}

func (w *Watcher) notify() {
	w.mu.RLock()
	cfg := w.config
	fns := slices.Clone(w.onChange)
	w.mu.RUnlock()

	for _, fn := range fns {
		fn(cfg)
	}
}

// Run watches until ctx is done. Directories are watched rather than files
// so that editors saving through rename are seen.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	metaDir, err := filepath.Abs(w.Get().Metadata.Dir)
	if err != nil {
		return fmt.Errorf("absolute path: %w", err)
	}
	if err := fw.Add(metaDir); err != nil {
		return fmt.Errorf("watch metadata dir: %w", err)
	}
	if w.path != "" && filepath.Dir(w.path) != metaDir {
		if err := fw.Add(filepath.Dir(w.path)); err != nil {
			return fmt.Errorf("watch config dir: %w", err)
		}
	}
	w.logger.Info("watching for changes",
		zap.String("metadata_dir", metaDir),
		zap.String("config", w.path))

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()
	var configChanged, metadataChanged bool

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			name, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			switch {
			case name == w.path:
				configChanged = true
			case filepath.Dir(name) == metaDir && metadata.IsMetadataFile(name):
				metadataChanged = true
			default:
				continue
			}
			w.logger.Debug("input changed",
				zap.String("event", event.Op.String()),
				zap.String("file", event.Name))
			timer.Reset(w.Get().Watch.Debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("file watcher error", zap.Error(err))

		case <-timer.C:
			if configChanged {
				if err := w.Reload(); err != nil && !metadataChanged {
					configChanged = false
					continue
				}
				metaDir = w.rewatch(fw, metaDir)
			}
			configChanged, metadataChanged = false, false
			w.notify()
		}
	}
}

// rewatch follows a metadata dir moved by a config reload.
func (w *Watcher) rewatch(fw *fsnotify.Watcher, current string) string {
	next, err := filepath.Abs(w.Get().Metadata.Dir)
	if err != nil || next == current {
		return current
	}
	if err := fw.Add(next); err != nil {
		w.logger.Error("watch metadata dir", zap.String("dir", next), zap.Error(err))
		return current
	}
	if w.path == "" || filepath.Dir(w.path) != current {
		_ = fw.Remove(current)
	}
	w.logger.Info("metadata dir changed", zap.String("old", current), zap.String("new", next))
	return next
}

func (w *Watcher) logChanges(old, cfg *Config) {
	if old.Namespace != cfg.Namespace {
		w.logger.Info("namespace changed",
			zap.String("old", old.Namespace),
			zap.String("new", cfg.Namespace))
	}
	if old.Logging.Level != cfg.Logging.Level {
		w.logger.Info("log level changed",
			zap.String("old", old.Logging.Level),
			zap.String("new", cfg.Logging.Level))
	}
}

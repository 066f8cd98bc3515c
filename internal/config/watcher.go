package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce coalesces the burst of events an editor produces on save.
const DefaultDebounce = 250 * time.Millisecond

// Watcher re-reads a configuration file when it changes.
//
// Valid configurations are delivered on Changes. Invalid ones are logged and
// dropped, so the consumer keeps its current state. Only the newest pending
// configuration is kept when the consumer falls behind.
type Watcher struct {
	path     string
	logger   *zap.Logger
	debounce time.Duration

	fs      *fsnotify.Watcher
	changes chan *Config
	stopCh  chan struct{}
	done    chan struct{}

	mu    sync.Mutex
	timer *time.Timer
}

// Watch starts watching path. The parent directory is watched so that editors
// that replace the file on save are still seen.
func Watch(path string, logger *zap.Logger, debounce time.Duration) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:     abs,
		logger:   logger,
		debounce: debounce,
		fs:       fsw,
		changes:  make(chan *Config, 1),
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
	go w.watchLoop()

	logger.Info("config hot reload enabled", zap.String("path", abs))
	return w, nil
}

// Changes delivers each successfully reloaded configuration.
func (w *Watcher) Changes() <-chan *Config { return w.changes }

// Close stops watching. Pending reloads are cancelled.
func (w *Watcher) Close() error {
	select {
	case <-w.stopCh:
		return nil
	default:
	}
	close(w.stopCh)
	<-w.done

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return nil
}

func (w *Watcher) watchLoop() {
	defer close(w.done)
	defer w.fs.Close()

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug("config file changed",
				zap.String("file", event.Name),
				zap.String("operation", event.Op.String()),
			)
			w.schedule()

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Error("config watcher error", zap.Error(err))

		case <-w.stopCh:
			w.logger.Debug("stopping config watcher")
			return
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	select {
	case <-w.stopCh:
		return
	default:
	}

	cfg, err := Load(w.path)
	if err != nil {
		w.logger.Warn("config reload rejected, keeping current settings",
			zap.String("path", w.path),
			zap.Error(err),
		)
		return
	}

	// Replace anything the consumer has not picked up yet.
	select {
	case <-w.changes:
	default:
	}
	select {
	case w.changes <- cfg:
		w.logger.Info("config reloaded", zap.String("path", w.path), zap.Int("equations", len(cfg.Equations)))
	default:
	}
}

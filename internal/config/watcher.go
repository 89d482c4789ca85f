package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kokizzu/kakoune/internal/log"
)

// Watcher reloads the configuration file when it changes on disk.
// It watches the containing directory so atomic rename saves (the
// common editor save pattern) are picked up, and debounces bursts.
type Watcher struct {
	fsw      *fsnotify.Watcher
	path     string
	onChange func(Config)
	logger   *log.Logger
	debounce time.Duration

	mu      sync.Mutex
	pending *time.Timer
	closed  bool

	done chan struct{}
	wg   sync.WaitGroup
}

// Watch starts watching path and calls onChange with the freshly
// loaded configuration after each change. The callback runs on the
// watcher goroutine; marshal to the dispatch thread if needed.
func Watch(path string, logger *log.Logger, onChange func(Config)) (*Watcher, error) {
	if logger == nil {
		logger = log.Discard()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving config path %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating config watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		fsw:      fsw,
		path:     abs,
		onChange: onChange,
		logger:   logger.WithPrefix("config"),
		debounce: 100 * time.Millisecond,
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warnf("watch error: %v", err)
		}
	}
}

// scheduleReload coalesces rapid successive events into one reload.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()

	cfg, err := Load(w.path)
	if err != nil {
		w.logger.Warnf("reload failed: %v", err)
		return
	}
	w.logger.Infof("reloaded %s", w.path)
	w.onChange(cfg)
}

// Close stops the watcher. No callback runs after Close returns.
func (w *Watcher) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	if w.pending != nil {
		w.pending.Stop()
	}
	w.mu.Unlock()

	close(w.done)
	w.fsw.Close()
	w.wg.Wait()
}

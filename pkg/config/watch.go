package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"quickfx/internal/logger"
)

// Watcher reloads a config file when it changes on disk. Reloaded configs
// are delivered on Updates; only the most recent one is kept, so a burst
// of writes collapses into a single update for the consumer.
type Watcher struct {
	path    string
	fsw     *fsnotify.Watcher
	updates chan *Config
	log     *logger.Logger

	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewWatcher starts watching the directory containing path.
func NewWatcher(path string, log *logger.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	// Watch the directory, editors often replace the file instead of
	// writing it in place
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:    abs,
		fsw:     fsw,
		updates: make(chan *Config, 1),
		log:     log,
	}, nil
}

// Updates returns the channel of reloaded configs.
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Start runs the event loop until ctx is done or Close is called.
func (w *Watcher) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.loop(ctx)
	}()
}

func (w *Watcher) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			w.reload()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warnf("config watcher: %v", err)
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := LoadConfig(w.path)
	if err != nil {
		w.log.Warnf("ignoring config change: %v", err)
		return
	}

	// keep only the latest config
	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg
	w.log.Debugf("config reloaded from %s", w.path)
}

// Close stops watching and waits for the event loop to exit.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		err = w.fsw.Close()
		w.wg.Wait()
	})
	return err
}

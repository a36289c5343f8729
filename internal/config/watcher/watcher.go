// Package watcher monitors the configuration file for external
// changes. It watches the file's parent directory, filters events to
// the config file itself (case-insensitively, since one logical save
// often arrives as temp-file create plus rename), debounces the burst
// a single save produces, and then invokes the reload handler once.
package watcher

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/pomatime/pomatime/internal/logging"
)

// DefaultDebounce is the coalescing window after the first matching
// event. One save typically produces several events within a few
// milliseconds.
const DefaultDebounce = 200 * time.Millisecond

// Handler is invoked after a debounced change to the config file.
type Handler func()

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the coalescing window.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// Watcher watches one configuration file for external modification.
type Watcher struct {
	mu sync.Mutex

	dir      string
	fileName string
	handler  Handler
	debounce time.Duration
	logger   *logging.Logger

	fw      *fsnotify.Watcher
	stopCh  chan struct{}
	wg      sync.WaitGroup
	running bool
}

// New creates a watcher for the given config file path.
func New(path string, handler Handler, opts ...Option) *Watcher {
	w := &Watcher{
		dir:      filepath.Dir(path),
		fileName: filepath.Base(path),
		handler:  handler,
		debounce: DefaultDebounce,
		logger:   logging.Null,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins watching. Calling Start on a running watcher is a
// no-op.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fw.Add(w.dir); err != nil {
		fw.Close()
		return err
	}

	w.fw = fw
	w.stopCh = make(chan struct{})
	w.running = true

	w.wg.Add(1)
	go w.processLoop(fw, w.stopCh)

	w.logger.Debug("config watcher started: %s", filepath.Join(w.dir, w.fileName))
	return nil
}

// Stop halts watching and blocks until the background goroutine has
// exited. Safe to call multiple times.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	fw := w.fw
	w.fw = nil
	w.mu.Unlock()

	fw.Close()
	w.wg.Wait()
	w.logger.Debug("config watcher stopped")
}

// IsRunning reports whether the watcher is active.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// matches reports whether an event path refers to the config file,
// ignoring case.
func (w *Watcher) matches(name string) bool {
	return strings.EqualFold(filepath.Base(name), w.fileName)
}

// processLoop reads fsnotify events until stopped.
func (w *Watcher) processLoop(fw *fsnotify.Watcher, stopCh chan struct{}) {
	defer w.wg.Done()

	for {
		select {
		case <-stopCh:
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if !w.matches(event.Name) {
				continue
			}
			if !w.settle(fw, stopCh) {
				return
			}
			w.callHandler()

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error: %v", err)
		}
	}
}

// settle waits out the debounce window, discarding further events for
// the same save. Returns false when the watcher is stopping.
func (w *Watcher) settle(fw *fsnotify.Watcher, stopCh chan struct{}) bool {
	timer := time.NewTimer(w.debounce)
	defer timer.Stop()

	for {
		select {
		case <-stopCh:
			return false
		case <-timer.C:
			// Drain anything that arrived during the window.
			for {
				select {
				case _, ok := <-fw.Events:
					if !ok {
						return false
					}
				default:
					return true
				}
			}
		case _, ok := <-fw.Events:
			if !ok {
				return false
			}
		case _, ok := <-fw.Errors:
			if !ok {
				return false
			}
		}
	}
}

// callHandler invokes the handler, recovering from panics so a
// misbehaving consumer cannot kill the watch loop.
func (w *Watcher) callHandler() {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("config reload handler panic: %v", r)
		}
	}()
	if w.handler != nil {
		w.handler()
	}
}

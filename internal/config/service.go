package config

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/pomatime/pomatime/internal/config/notify"
	"github.com/pomatime/pomatime/internal/config/store"
	"github.com/pomatime/pomatime/internal/config/watcher"
	"github.com/pomatime/pomatime/internal/logging"
)

// Notification source tokens.
const (
	SourceInit    = "init"
	SourceWatcher = "watcher"
	SourceWriter  = "writer"
	SourceReload  = "reload"
)

// Service owns the whole configuration pipeline: the on-disk store,
// the load/validate/apply cycle, write-back, change notifications,
// and the background file watcher. All mutations of live state are
// serialized through its mutex.
type Service struct {
	mu sync.Mutex

	path      string
	configDir string
	logger    *logging.Logger
	policy    ResetPolicy
	probe     WindowProbe
	watch     bool

	store    *store.Store
	loader   *Loader
	writer   *Writer
	notifier *notify.Notifier
	watcher  *watcher.Watcher

	live           *LiveState
	uiResetPending bool
}

// ServiceOption customizes a Service.
type ServiceOption func(*Service)

// WithLogger sets the logger. Defaults to a disabled logger.
func WithLogger(l *logging.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPath overrides the config file location. Defaults to
// config.ini in the per-user config directory.
func WithPath(path string) ServiceOption {
	return func(s *Service) { s.path = path }
}

// WithWatcher enables or disables the background file watcher.
// Enabled by default.
func WithWatcher(enabled bool) ServiceOption {
	return func(s *Service) { s.watch = enabled }
}

// WithResetPolicy sets the version-mismatch policy. Defaults to
// non-destructive migration.
func WithResetPolicy(policy ResetPolicy) ServiceOption {
	return func(s *Service) { s.policy = policy }
}

// WithWindowProbe supplies the window position callback used by the
// applier's reposition heuristic.
func WithWindowProbe(probe WindowProbe) ServiceOption {
	return func(s *Service) { s.probe = probe }
}

// NewService builds the pipeline, migrates the file if its version is
// stale, and performs the initial load. The watcher is not started
// until Start is called.
func NewService(opts ...ServiceOption) (*Service, error) {
	s := &Service{
		logger: logging.Null,
		watch:  true,
		live:   NewLiveState(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.path == "" {
		path, err := DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolve config path: %w", err)
		}
		s.path = path
	}
	s.configDir = filepath.Dir(s.path)

	s.store = store.New(s.path)
	s.loader = NewLoader(s.store, s.configDir)
	s.loader.SetLogger(s.logger)
	s.writer = NewWriter(s.store, s.configDir)
	s.notifier = notify.New()

	result, err := NewMigrator(s.store, s.policy, s.logger).EnsureCurrent()
	if err != nil {
		return nil, err
	}

	if result == MigrationReset {
		// The regenerated file may not be flushed yet when callers
		// start reading, so defaults are applied directly instead of
		// going back through the loader.
		Apply(s.live, DefaultSnapshot(), s.probe)
		s.uiResetPending = true
	} else {
		s.reloadLocked()
		s.notifier.NotifyReload(SourceInit)
	}

	if s.watch {
		s.watcher = watcher.New(s.path, s.onFileChanged, watcher.WithLogger(s.logger))
	}
	return s, nil
}

// Start begins watching the config file for external edits. No-op
// when the watcher is disabled.
func (s *Service) Start() error {
	if s.watcher == nil {
		return nil
	}
	return s.watcher.Start()
}

// Stop halts the watcher and closes the notifier. Blocks until the
// watcher goroutine has exited.
func (s *Service) Stop() {
	if s.watcher != nil {
		s.watcher.Stop()
	}
	s.notifier.Close()
}

// Live returns a copy of the current configuration, detached from the
// state the reload path rewrites so it is safe to read from any
// goroutine. Changes go through the setters or Save.
func (s *Service) Live() *LiveState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live.Clone()
}

// Notifier exposes reload subscriptions.
func (s *Service) Notifier() *notify.Notifier {
	return s.notifier
}

// Path returns the config file location.
func (s *Service) Path() string {
	return s.path
}

// TakeUIReset reports whether a forced version reset happened, once.
// The flag clears on first read so the full UI reset runs a single
// time after window creation.
func (s *Service) TakeUIReset() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending := s.uiResetPending
	s.uiResetPending = false
	return pending
}

// Reload re-reads the file and pushes the result into live state,
// writing back any validator corrections. Returns the side effects
// the caller must execute.
func (s *Service) Reload() []Effect {
	s.mu.Lock()
	effects := s.reloadLocked()
	s.mu.Unlock()
	s.notifier.NotifyReload(SourceReload)
	return effects
}

// reloadLocked runs the load/validate/apply cycle. Callers hold s.mu
// and deliver notifications after releasing it, so an observer may
// call back into the Service without deadlocking.
func (s *Service) reloadLocked() []Effect {
	s.store.Invalidate()
	snap := s.loader.Load()
	modified := Validate(snap)
	effects := Apply(s.live, snap, s.probe)
	if modified {
		// Corrected values go straight back to disk so the file
		// never keeps an out-of-range entry.
		if !s.writer.WriteAll(s.live) {
			s.logger.Warn("could not write back corrected values to %s", s.path)
		}
	}
	return effects
}

// onFileChanged runs on the watcher goroutine after the debounce
// window closes.
func (s *Service) onFileChanged() {
	s.mu.Lock()
	s.logger.Debug("config file changed on disk, reloading")
	effects := s.reloadLocked()
	s.mu.Unlock()
	if len(effects) > 0 {
		s.logger.Debug("reload produced %d side effects", len(effects))
	}
	s.notifier.NotifyReload(SourceWatcher)
}

// Save persists the entire live state in one transaction.
func (s *Service) Save() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writer.WriteAll(s.live)
}

// SaveSection persists one section of the live state.
func (s *Service) SaveSection(section string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writer.WriteSection(s.live, section)
}

// SetTimeoutAction arms a timeout action and persists its safe form.
func (s *Service) SetTimeoutAction(action TimeoutAction) bool {
	s.mu.Lock()
	ok := s.writer.SetTimeoutAction(s.live, action)
	s.mu.Unlock()
	s.notifier.NotifyArea(notify.AreaTimer, SourceWriter)
	return ok
}

// SetTimeoutFile persists a timeout file target.
func (s *Service) SetTimeoutFile(path string) bool {
	s.mu.Lock()
	ok := s.writer.SetTimeoutFile(s.live, path)
	s.mu.Unlock()
	s.notifier.NotifyArea(notify.AreaTimer, SourceWriter)
	return ok
}

// SetTimeoutWebsite persists a timeout website target.
func (s *Service) SetTimeoutWebsite(url string) bool {
	s.mu.Lock()
	ok := s.writer.SetTimeoutWebsite(s.live, url)
	s.mu.Unlock()
	s.notifier.NotifyArea(notify.AreaTimer, SourceWriter)
	return ok
}

// SetTopmost persists the always-on-top flag.
func (s *Service) SetTopmost(topmost bool) bool {
	s.mu.Lock()
	ok := s.writer.SetTopmost(s.live, topmost)
	s.mu.Unlock()
	s.notifier.NotifyArea(notify.AreaDisplay, SourceWriter)
	return ok
}

// SetTimeOptions persists the quick-countdown presets.
func (s *Service) SetTimeOptions(options []int) bool {
	s.mu.Lock()
	ok := s.writer.SetTimeOptions(s.live, options)
	s.mu.Unlock()
	s.notifier.NotifyArea(notify.AreaTimer, SourceWriter)
	return ok
}

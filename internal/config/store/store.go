// Package store provides typed read/write access to the persisted
// configuration file. Reads never fail: a missing file or key yields
// the caller's default. Writes go through an in-memory cache and reach
// disk via an atomic temp-file-plus-rename, guarded by a cross-process
// advisory lock so concurrent writers from other instances cannot
// interleave within one transaction.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/gofrs/flock"
	"gopkg.in/ini.v1"
)

// MaxValueLen bounds a single stored value. Longer values are clipped
// on write.
const MaxValueLen = 1024

// KeyValue is one pending write in a batch transaction.
type KeyValue struct {
	Section string
	Key     string
	Value   string
}

// Store is a file-backed INI store with an in-memory cache.
type Store struct {
	mu   sync.Mutex
	path string
	lock *flock.Flock

	file  *ini.File
	dirty bool
}

// loadOptions keeps '#' usable inside values, which color tokens
// like #FF0000 require.
var loadOptions = ini.LoadOptions{
	IgnoreInlineComment: true,
}

// New creates a store for the given config file path. The file does
// not need to exist yet.
func New(path string) *Store {
	return &Store{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Path returns the config file path this store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// ensureLoaded parses the file into the cache if not already cached.
// An unreadable or missing file yields an empty document.
func (s *Store) ensureLoaded() *ini.File {
	if s.file == nil {
		f, err := ini.LoadSources(loadOptions, s.path)
		if err != nil {
			f = ini.Empty(loadOptions)
		}
		s.file = f
	}
	return s.file
}

// Invalidate drops the in-memory cache so the next read re-parses the
// file. Called when an external change is detected.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.file = nil
	s.dirty = false
}

// ReadString returns the raw value for section/key, or def when the
// file, section, or key is absent.
func (s *Store) ReadString(section, key, def string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	sec := s.ensureLoaded().Section(section)
	if !sec.HasKey(key) {
		return def
	}
	return sec.Key(key).String()
}

// ReadInt returns the integer value for section/key, or def when
// absent or unparseable.
func (s *Store) ReadInt(section, key string, def int) int {
	raw := s.ReadString(section, key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	return v
}

// ReadFloat returns the float value for section/key, or def when
// absent or unparseable.
func (s *Store) ReadFloat(section, key string, def float64) float64 {
	raw := s.ReadString(section, key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return def
	}
	return v
}

// ReadBool returns the boolean value for section/key. TRUE/FALSE in
// any case are recognized, as are 1/0.
func (s *Store) ReadBool(section, key string, def bool) bool {
	raw := strings.TrimSpace(s.ReadString(section, key, ""))
	switch strings.ToUpper(raw) {
	case "TRUE", "1", "YES":
		return true
	case "FALSE", "0", "NO":
		return false
	default:
		return def
	}
}

// HasKey reports whether section/key exists in the file.
func (s *Store) HasKey(section, key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureLoaded().Section(section).HasKey(key)
}

// SectionKeys returns the key names present in a section, in file
// order.
func (s *Store) SectionKeys(section string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureLoaded().Section(section).KeyStrings()
}

// Entries returns every section/key/value triple in the file, in file
// order. Used by migration to carry user values across a regeneration.
func (s *Store) Entries() []KeyValue {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []KeyValue
	for _, sec := range s.ensureLoaded().Sections() {
		if sec.Name() == ini.DefaultSection {
			continue
		}
		for _, k := range sec.Keys() {
			out = append(out, KeyValue{Section: sec.Name(), Key: k.Name(), Value: k.String()})
		}
	}
	return out
}

// clip bounds a value to MaxValueLen.
func clip(v string) string {
	if len(v) > MaxValueLen {
		return v[:MaxValueLen]
	}
	return v
}

// WriteString sets a value in the cache. The change reaches disk on
// the next Flush or atomic update. Errors are swallowed here; callers
// needing durability call Flush.
func (s *Store) WriteString(section, key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded().Section(section).Key(key).SetValue(clip(value))
	s.dirty = true
}

// WriteInt sets an integer value in the cache.
func (s *Store) WriteInt(section, key string, value int) {
	s.WriteString(section, key, strconv.Itoa(value))
}

// WriteBool sets a boolean value in the cache as TRUE/FALSE.
func (s *Store) WriteBool(section, key string, value bool) {
	if value {
		s.WriteString(section, key, "TRUE")
	} else {
		s.WriteString(section, key, "FALSE")
	}
}

// WriteFloat sets a float value in the cache with two decimals, the
// precision the file format has always used for scale factors.
func (s *Store) WriteFloat(section, key string, value float64) {
	s.WriteString(section, key, strconv.FormatFloat(value, 'f', 2, 64))
}

// Flush writes the cached document to disk atomically if it has
// pending changes.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty || s.file == nil {
		return nil
	}
	if err := s.writeAtomically(); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

// UpdateStringAtomic sets one key and commits it to disk under the
// cross-process lock. Reports whether the commit reached disk.
func (s *Store) UpdateStringAtomic(section, key, value string) bool {
	return s.UpdateBatchAtomic([]KeyValue{{Section: section, Key: key, Value: value}})
}

// UpdateIntAtomic sets one integer key and commits it to disk under
// the cross-process lock.
func (s *Store) UpdateIntAtomic(section, key string, value int) bool {
	return s.UpdateStringAtomic(section, key, strconv.Itoa(value))
}

// UpdateFloatAtomic sets one float key and commits it to disk under
// the cross-process lock.
func (s *Store) UpdateFloatAtomic(section, key string, value float64) bool {
	return s.UpdateStringAtomic(section, key, strconv.FormatFloat(value, 'f', 2, 64))
}

// UpdateBoolAtomic sets one boolean key and commits it to disk under
// the cross-process lock.
func (s *Store) UpdateBoolAtomic(section, key string, value bool) bool {
	v := "FALSE"
	if value {
		v = "TRUE"
	}
	return s.UpdateStringAtomic(section, key, v)
}

// UpdateBatchAtomic applies every item and commits them in a single
// write while holding the cross-process lock for the whole
// transaction, so a concurrent writer cannot leave a half-old,
// half-new file.
func (s *Store) UpdateBatchAtomic(items []KeyValue) bool {
	if err := s.lock.Lock(); err != nil {
		return false
	}
	defer func() { _ = s.lock.Unlock() }()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-read under the lock so another process's writes are not lost.
	s.file = nil
	f := s.ensureLoaded()
	for _, it := range items {
		f.Section(it.Section).Key(it.Key).SetValue(clip(it.Value))
	}
	if err := s.writeAtomically(); err != nil {
		return false
	}
	s.dirty = false
	return true
}

// writeAtomically serializes the cache to a temp file in the target
// directory and renames it over the config file. Caller holds s.mu.
func (s *Store) writeAtomically() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := s.file.WriteTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("serialize config: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}

// FileExists reports whether the config file is present on disk.
func (s *Store) FileExists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// RemoveFile deletes the config file and drops the cache. Used by the
// version migrator before regenerating defaults.
func (s *Store) RemoveFile() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.file = nil
	s.dirty = false
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

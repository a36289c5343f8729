// Package config is the persistent, live-reloadable configuration
// subsystem. It translates the flat INI-style settings file into a
// validated, fully-typed Snapshot, keeps the in-memory LiveState and
// the on-disk file consistent under concurrent writers, and detects
// external edits to the file without polling.
//
// The pipeline runs File -> store -> Loader -> Snapshot -> Validate
// -> Apply -> LiveState, and back out through Writer -> store ->
// File. A background watcher observes the file's directory and, after
// a debounce window, re-runs the pipeline and fans per-area change
// notifications out to subscribers. Service wires the whole thing
// together and serializes every mutation of LiveState.
//
// A missing or corrupt file is never a hard failure: the Loader
// always returns a complete defaulted Snapshot, the Validator clamps
// or resets anything out of range, and corrections are written back
// so the file never keeps a bad value.
package config

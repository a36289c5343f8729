package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrInvalidColor indicates a color token is neither #RRGGBB nor a
	// recognized name.
	ErrInvalidColor = errors.New("invalid color")

	// ErrInvalidHotkey indicates a hotkey string does not parse.
	ErrInvalidHotkey = errors.New("invalid hotkey")

	// ErrWriteFailed indicates a persisted write did not reach disk.
	ErrWriteFailed = errors.New("config write failed")
)

// ParseError describes a failure to parse one stored value.
type ParseError struct {
	// Section and Key locate the value.
	Section string
	Key     string
	// Value is the raw string that failed to parse.
	Value string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error for %s/%s value %q: %v", e.Section, e.Key, e.Value, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

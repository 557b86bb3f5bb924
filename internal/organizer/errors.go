package organizer

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the source or organized directory is missing.
	ErrNotFound = errors.New("not found")
	// ErrInvalidPath is returned for empty or malformed paths and file names.
	ErrInvalidPath = errors.New("invalid path")
	// ErrIOFailure wraps filesystem errors such as permission denied or disk full.
	ErrIOFailure = errors.New("i/o failure")
	// ErrUnknownFile is returned by FileInfo for a name that does not exist.
	ErrUnknownFile = errors.New("unknown file")
)

// wrapf attaches a message to a sentinel error.
func wrapf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}

// wrapErr joins a sentinel with the underlying cause so both match errors.Is.
func wrapErr(sentinel, cause error) error {
	return fmt.Errorf("%w: %w", sentinel, cause)
}

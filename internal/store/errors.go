package store

import "errors"

var (
	// ErrEmptyFile reports a notes file that exists but holds no content. It is informational.
	ErrEmptyFile = errors.New("notes file is empty")
	// ErrCorrupt reports a notes file that could not be parsed.
	ErrCorrupt = errors.New("notes file is corrupt")
	// ErrWrite reports a failed save; the in-memory state is unaffected.
	ErrWrite = errors.New("write notes file")
)

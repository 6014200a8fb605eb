package lhasa

import "errors"

// Sentinel errors returned by this package. Callers compare with errors.Is.
var (
	// ErrUnsupportedMethod is returned when a header names a compression
	// method this package does not implement (any tag other than
	// -lh4-/-lh5-/-lh6-/-lh7-, or -lhd- for directories).
	ErrUnsupportedMethod = errors.New("lhasa: unsupported compression method")

	// ErrNoCurrentFile is returned by Read when the reader is not
	// positioned on a normal entry (START, EOF or a FAKE_DIR entry).
	ErrNoCurrentFile = errors.New("lhasa: no current file")

	// ErrNoPlatform is returned by Extract when the Reader was
	// constructed without a Platform implementation.
	ErrNoPlatform = errors.New("lhasa: no platform set, cannot extract")
)

package compression

import "errors"

var (
	// ErrUnknownType is returned for an algorithm outside the supported set.
	ErrUnknownType = errors.New("unknown compression algorithm")
	// ErrInvalidLevel is returned for a compression level outside 0-9 or the named levels.
	ErrInvalidLevel = errors.New("invalid compression level")
)

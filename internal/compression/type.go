package compression

import (
	"fmt"
	"strconv"
)

// Type represents the compression algorithm applied to a file's byte stream.
type Type byte

const (
	// Passthrough performs no compression.
	Passthrough Type = iota
	// LZ4 compresses with the LZ4 frame format.
	LZ4
	// Gzip compresses with gzip at a configurable level.
	Gzip
	// Snappy compresses with the snappy stream format.
	Snappy
)

// ParseType converts a string to a compression Type.
func ParseType(name string) (Type, error) {
	switch name {
	case "passthrough", "":
		return Passthrough, nil
	case "lz4":
		return LZ4, nil
	case "gzip":
		return Gzip, nil
	case "snappy":
		return Snappy, nil
	default:
		return Passthrough, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
}

// String returns the name used on the command line.
func (t Type) String() string {
	switch t {
	case Passthrough:
		return "passthrough"
	case LZ4:
		return "lz4"
	case Gzip:
		return "gzip"
	case Snappy:
		return "snappy"
	default:
		return "unknown"
	}
}

// Tag returns the filename suffix token recording this algorithm.
// Passthrough contributes no tag.
func (t Type) Tag() string {
	switch t {
	case LZ4:
		return "lz4"
	case Gzip:
		return "gz"
	case Snappy:
		return "sz"
	default:
		return ""
	}
}

// IsValid reports whether t is a member of the closed algorithm set.
func (t Type) IsValid() bool {
	return t <= Snappy
}

// Level selects the gzip effort/ratio trade-off. Values mirror gzip levels:
// -1 is the encoder default, 0 stores, 1 is fastest, 9 is best.
type Level int

const (
	// Fastest prefers throughput over ratio.
	Fastest Level = 1
	// Default is the encoder's default trade-off.
	Default Level = -1
	// Best prefers ratio over throughput.
	Best Level = 9
)

// ParseLevel converts a level name or a numeric level (0-9) to a Level.
func ParseLevel(name string) (Level, error) {
	switch name {
	case "fastest", "":
		return Fastest, nil
	case "default":
		return Default, nil
	case "best":
		return Best, nil
	}

	n, err := strconv.Atoi(name)
	if err != nil || n < 0 || n > 9 {
		return Fastest, fmt.Errorf("%w: %q", ErrInvalidLevel, name)
	}

	return Level(n), nil
}

// String returns the name used on the command line.
func (l Level) String() string {
	switch l {
	case Fastest:
		return "fastest"
	case Default:
		return "default"
	case Best:
		return "best"
	default:
		return strconv.Itoa(int(l))
	}
}

// IsValid reports whether l is within the gzip level range.
func (l Level) IsValid() bool {
	return l >= Default && l <= Best
}

// Package compression wraps byte sinks and sources with streaming
// compressors and decompressors. The passthrough variant is a real
// implementation so callers never branch on "no compression".
package compression

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/snappy"
	"github.com/pierrec/lz4/v4"
)

// NewWriter wraps w with a compressing writer for the given algorithm.
// Close flushes the compressor's trailer but leaves w open.
// The level applies to gzip only.
func NewWriter(w io.Writer, typ Type, level Level) (io.WriteCloser, error) {
	switch typ {
	case Passthrough:
		return nopWriteCloser{w}, nil
	case LZ4:
		return lz4.NewWriter(w), nil
	case Gzip:
		zw, err := gzip.NewWriterLevel(w, int(level))
		if err != nil {
			return nil, fmt.Errorf("creating gzip writer: %w", err)
		}

		return zw, nil
	case Snappy:
		return snappy.NewBufferedWriter(w), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, typ)
	}
}

// NewReader wraps r with a decompressing reader for the given algorithm.
func NewReader(r io.Reader, typ Type) (io.Reader, error) {
	switch typ {
	case Passthrough:
		return r, nil
	case LZ4:
		return lz4.NewReader(r), nil
	case Gzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("creating gzip reader: %w", err)
		}

		return zr, nil
	case Snappy:
		return snappy.NewReader(r), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, typ)
	}
}

// nopWriteCloser adapts a plain writer to the WriteCloser shape shared by
// all compressing writers.
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

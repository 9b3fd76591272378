// Package signing defines the integrity layer of the processing chain.
// Only the passthrough variant exists today; the interfaces leave room for
// real MAC or signature schemes without changing the chain's shape.
package signing

import (
	"fmt"
	"io"
)

// Type represents the signing scheme applied to a file's byte stream.
type Type byte

const (
	// Passthrough performs no signing.
	Passthrough Type = iota
)

// ParseType converts a string to a signing Type.
func ParseType(name string) (Type, error) {
	switch name {
	case "passthrough", "":
		return Passthrough, nil
	default:
		return Passthrough, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
}

// String returns the name used on the command line.
func (t Type) String() string {
	switch t {
	case Passthrough:
		return "passthrough"
	default:
		return "unknown"
	}
}

// IsValid reports whether t is a member of the closed scheme set.
func (t Type) IsValid() bool {
	return t == Passthrough
}

// Signer observes the logical payload on the write path. Finalize returns
// an optional trailing block to be appended after all data is written.
type Signer interface {
	io.Writer

	Finalize() ([]byte, error)
}

// Verifier observes the payload on the read path. Finalize fails if
// integrity or authenticity does not hold.
type Verifier interface {
	io.Reader

	Finalize() ([]byte, error)
}

// NewSigner wraps w with a signing writer for the given scheme.
func NewSigner(w io.Writer, typ Type) (Signer, error) {
	switch typ {
	case Passthrough:
		return nopSigner{w}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, typ)
	}
}

// NewVerifier wraps r with a verifying reader for the given scheme.
func NewVerifier(r io.Reader, typ Type) (Verifier, error) {
	switch typ {
	case Passthrough:
		return nopVerifier{r}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, typ)
	}
}

// nopSigner passes bytes through and produces no trailing block.
type nopSigner struct {
	io.Writer
}

func (nopSigner) Finalize() ([]byte, error) { return nil, nil }

// nopVerifier passes bytes through and never fails.
type nopVerifier struct {
	io.Reader
}

func (nopVerifier) Finalize() ([]byte, error) { return nil, nil }

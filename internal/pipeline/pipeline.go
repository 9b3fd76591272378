// Package pipeline composes the per-file stream transform chain. On the
// write path bytes flow source → signer → compressor → encryptor →
// destination; the read path mirrors it exactly. Identity variants are
// ordinary layer implementations, so the chain's shape never changes.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/idelchi/zarc/internal/compression"
	"github.com/idelchi/zarc/internal/encryption"
	"github.com/idelchi/zarc/internal/fileutil"
	"github.com/idelchi/zarc/internal/signing"
)

// Config binds the algorithm choices, the shared secret and one
// source/destination pair. Every field must be set; the secret is the
// operation-wide instance shared across files.
type Config struct {
	Encryption  encryption.Type
	Secret      *encryption.Secret
	Compression compression.Type
	Level       compression.Level
	Signing     signing.Type
	Source      string
	Destination string
}

// validate checks that every field is present and a member of its set.
func (c Config) validate() error {
	switch {
	case c.Source == "":
		return fmt.Errorf("%w: source path", ErrMissingField)
	case c.Destination == "":
		return fmt.Errorf("%w: destination path", ErrMissingField)
	case c.Secret == nil:
		return fmt.Errorf("%w: secret", ErrMissingField)
	}

	if !c.Encryption.IsValid() {
		return fmt.Errorf("%w: %d", encryption.ErrUnknownType, c.Encryption)
	}

	if !c.Compression.IsValid() {
		return fmt.Errorf("%w: %d", compression.ErrUnknownType, c.Compression)
	}

	if !c.Level.IsValid() {
		return fmt.Errorf("%w: %d", compression.ErrInvalidLevel, c.Level)
	}

	if !c.Signing.IsValid() {
		return fmt.Errorf("%w: %d", signing.ErrUnknownType, c.Signing)
	}

	return nil
}

// Pipeline processes a single file. It exists for the duration of one
// compress or decompress pass and owns no state beyond its configuration.
type Pipeline struct {
	cfg Config
}

// New validates cfg and returns a pipeline bound to it.
func New(cfg Config) (*Pipeline, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Pipeline{cfg: cfg}, nil
}

// Compress streams the source file through the chain into the destination.
// The destination is written atomically and nothing is left behind on
// error. Returns the signer's trailing block (nil for identity signing)
// and the number of bytes in the final output.
func (p *Pipeline) Compress() (signature []byte, written int64, err error) {
	src, err := os.Open(filepath.Clean(p.cfg.Source))
	if err != nil {
		return nil, 0, fmt.Errorf("opening source file: %w", err)
	}
	defer src.Close()

	tc, err := fileutil.NewTempContext(p.cfg.Source, p.cfg.Destination)
	if err != nil {
		return nil, 0, fmt.Errorf("preparing atomic write: %w", err)
	}

	defer tc.CleanupOnError(&err)

	encryptor, err := encryption.NewWriter(tc.TmpFile, p.cfg.Encryption, p.cfg.Secret)
	if err != nil {
		return nil, 0, fmt.Errorf("building encryption layer: %w", err)
	}

	compressor, err := compression.NewWriter(encryptor, p.cfg.Compression, p.cfg.Level)
	if err != nil {
		return nil, 0, fmt.Errorf("building compression layer: %w", err)
	}

	signer, err := signing.NewSigner(compressor, p.cfg.Signing)
	if err != nil {
		return nil, 0, fmt.Errorf("building signing layer: %w", err)
	}

	if err := copyStream(signer, src); err != nil {
		return nil, 0, err
	}

	signature, err = signer.Finalize()
	if err != nil {
		return nil, 0, fmt.Errorf("finalizing signature: %w", err)
	}

	if err := compressor.Close(); err != nil {
		return nil, 0, fmt.Errorf("flushing compression layer: %w", err)
	}

	if err := encryptor.Close(); err != nil {
		return nil, 0, fmt.Errorf("flushing encryption layer: %w", err)
	}

	written, err = tc.Commit(p.cfg.Destination)
	if err != nil {
		return nil, 0, err
	}

	return signature, written, nil
}

// Decompress streams the archived source file back through the mirrored
// chain into the destination, atomically. Returns the verifier's finalize
// value and the number of bytes in the final output; a verification
// failure surfaces as an error.
func (p *Pipeline) Decompress() (signature []byte, written int64, err error) {
	src, err := os.Open(filepath.Clean(p.cfg.Source))
	if err != nil {
		return nil, 0, fmt.Errorf("opening source file: %w", err)
	}
	defer src.Close()

	tc, err := fileutil.NewTempContext(p.cfg.Source, p.cfg.Destination)
	if err != nil {
		return nil, 0, fmt.Errorf("preparing atomic write: %w", err)
	}

	defer tc.CleanupOnError(&err)

	decryptor, err := encryption.NewReader(src, p.cfg.Encryption, p.cfg.Secret)
	if err != nil {
		return nil, 0, fmt.Errorf("building decryption layer: %w", err)
	}

	decompressor, err := compression.NewReader(decryptor, p.cfg.Compression)
	if err != nil {
		return nil, 0, fmt.Errorf("building decompression layer: %w", err)
	}

	verifier, err := signing.NewVerifier(decompressor, p.cfg.Signing)
	if err != nil {
		return nil, 0, fmt.Errorf("building verification layer: %w", err)
	}

	if err := copyStream(tc.TmpFile, verifier); err != nil {
		return nil, 0, err
	}

	signature, err = verifier.Finalize()
	if err != nil {
		return nil, 0, fmt.Errorf("verifying signature: %w", err)
	}

	written, err = tc.Commit(p.cfg.Destination)
	if err != nil {
		return nil, 0, err
	}

	return signature, written, nil
}

package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/idelchi/zarc/internal/compression"
	"github.com/idelchi/zarc/internal/encryption"
)

// Config holds the runtime configuration, populated from command-line
// flags and ZARC_* environment variables.
type Config struct {
	// Common flags
	Verbosity string `validate:"oneof=quiet normal verbose debug"`
	Parallel  int    `validate:"min=1"`
	Stats     bool

	// Algorithm selection. Encrypt/Compress are shorthands that pick the
	// default algorithm when no explicit one is named.
	Encrypt     bool
	Compress    bool
	Encryption  string `mapstructure:"encryption-algorithm"  validate:"oneof=passthrough xchacha chacha aesgcm"`
	Compression string `mapstructure:"compression-algorithm" validate:"oneof=passthrough lz4 gzip snappy"`
	Level       string `mapstructure:"compression-level"`

	// Keypath references a key file secret (recognized, not yet supported).
	Keypath string

	// Output overrides the derived archive file name.
	Output string

	// Positional arguments
	Input       string `validate:"required"`
	Destination string `validate:"required_if=Extract true"`

	// Command markers
	Extract bool
}

// Validate validates the configuration against the struct tags and checks
// the compression level is parseable.
func (c Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	if _, err := compression.ParseLevel(c.Level); err != nil {
		return err
	}

	return nil
}

// EncryptionType resolves the configured cipher. The -e shorthand selects
// XChaCha when no algorithm was named explicitly.
func (c Config) EncryptionType() (encryption.Type, error) {
	typ, err := encryption.ParseType(c.Encryption)
	if err != nil {
		return typ, err
	}

	if typ == encryption.Passthrough && c.Encrypt {
		return encryption.XChaCha, nil
	}

	return typ, nil
}

// CompressionType resolves the configured compressor. The -c shorthand
// selects LZ4 when no algorithm was named explicitly.
func (c Config) CompressionType() (compression.Type, error) {
	typ, err := compression.ParseType(c.Compression)
	if err != nil {
		return typ, err
	}

	if typ == compression.Passthrough && c.Compress {
		return compression.LZ4, nil
	}

	return typ, nil
}

// CompressionLevel resolves the configured gzip level.
func (c Config) CompressionLevel() (compression.Level, error) {
	return compression.ParseLevel(c.Level)
}

// Package logic implements the flows behind the zarc commands.
package logic

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/zarc/internal/config"
	"github.com/idelchi/zarc/internal/encryption"
	"github.com/idelchi/zarc/internal/processor"
	"github.com/idelchi/zarc/internal/prompt"
)

// ErrNotSupported marks commands that are recognized but not implemented.
var ErrNotSupported = errors.New("not supported yet")

// List would show the contents of an archive.
func List(_ *config.Config) error {
	return fmt.Errorf("listing archive contents: %w", ErrNotSupported)
}

// Rotate would re-encrypt an archive under a new secret.
func Rotate(_ *config.Config) error {
	return fmt.Errorf("rotating archive secrets: %w", ErrNotSupported)
}

// resolveSecret builds the secret for the run: a key file when one is
// configured, otherwise an interactive password whenever a cipher is
// active. Confirmation is requested when creating archives, never when
// extracting.
func resolveSecret(cfg *config.Config, enc encryption.Type, confirm bool) (*encryption.Secret, error) {
	if enc == encryption.Passthrough {
		return encryption.NoSecret(), nil
	}

	if cfg.Keypath != "" {
		return encryption.KeyfileSecret(cfg.Keypath), nil
	}

	password, err := prompt.Password(confirm)
	if err != nil {
		return nil, err
	}

	secret, err := encryption.PasswordSecret(password)
	if err != nil {
		return nil, err
	}

	return secret, nil
}

// printStats reports the end-of-run totals on stderr.
func printStats(summary processor.Summary, duration time.Duration) {
	fmt.Fprintf(os.Stderr, "\nStats\n")
	fmt.Fprintf(os.Stderr, "  Processed: %d\n", summary.Processed)
	fmt.Fprintf(os.Stderr, "  Failed:    %d\n", summary.Failed)
	fmt.Fprintf(os.Stderr, "  Skipped:   %d\n", summary.Skipped)
	//nolint:gosec // Bytes is always non-negative (sum of file sizes)
	fmt.Fprintf(os.Stderr, "  Size:      %s\n", humanize.IBytes(uint64(max(0, summary.Bytes))))
	fmt.Fprintf(os.Stderr, "  Duration:  %s\n", duration.Round(time.Millisecond))
}

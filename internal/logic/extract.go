package logic

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/idelchi/zarc/internal/config"
	"github.com/idelchi/zarc/internal/container"
	"github.com/idelchi/zarc/internal/processor"
)

// Extract restores the archive at cfg.Input into cfg.Destination. Member
// types are taken from the flags when set and detected from the member
// names otherwise, so a password is only asked for when the archive
// actually needs one.
func Extract(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	start := time.Now()

	staging, err := os.MkdirTemp("", "zarc-*")
	if err != nil {
		return fmt.Errorf("creating staging directory: %w", err)
	}

	defer os.RemoveAll(staging)

	if err := unpackArchive(cfg.Input, staging); err != nil {
		return err
	}

	enc, err := cfg.EncryptionType()
	if err != nil {
		return err
	}

	comp, err := cfg.CompressionType()
	if err != nil {
		return err
	}

	enc, _, err = processor.DetectTypes(staging, enc, comp)
	if err != nil {
		return err
	}

	secret, err := resolveSecret(cfg, enc, false)
	if err != nil {
		return err
	}

	proc, err := processor.New(cfg, secret, logger)
	if err != nil {
		return fmt.Errorf("creating processor: %w", err)
	}

	summary, err := proc.DecompressDirectory(ctx, staging, cfg.Destination)

	if cfg.Stats {
		printStats(summary, time.Since(start))
	}

	if err != nil {
		return fmt.Errorf("extracting files: %w", err)
	}

	logger.Info("extracted",
		zap.String("input", cfg.Input),
		zap.String("destination", cfg.Destination),
		zap.Int("files", summary.Processed),
	)

	return nil
}

// unpackArchive expands the archive into the staging directory.
func unpackArchive(archive, staging string) error {
	file, err := os.Open(filepath.Clean(archive))
	if err != nil {
		return fmt.Errorf("opening archive %q: %w", archive, err)
	}

	defer file.Close()

	if err := container.Unpack(bufio.NewReader(file), staging); err != nil {
		return fmt.Errorf("unpacking archive %q: %w", archive, err)
	}

	return nil
}

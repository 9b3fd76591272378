package logic

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/idelchi/zarc/internal/compression"
	"github.com/idelchi/zarc/internal/config"
	"github.com/idelchi/zarc/internal/container"
	"github.com/idelchi/zarc/internal/encryption"
	"github.com/idelchi/zarc/internal/extension"
	"github.com/idelchi/zarc/internal/processor"
)

// Archive processes every file under cfg.Input into per-file members and
// bundles them into a single archive file.
func Archive(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	start := time.Now()

	enc, err := cfg.EncryptionType()
	if err != nil {
		return err
	}

	comp, err := cfg.CompressionType()
	if err != nil {
		return err
	}

	info, err := os.Stat(cfg.Input)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("input %q is not a directory", cfg.Input)
	}

	secret, err := resolveSecret(cfg, enc, true)
	if err != nil {
		return err
	}

	staging, err := os.MkdirTemp("", "zarc-*")
	if err != nil {
		return fmt.Errorf("creating staging directory: %w", err)
	}

	defer os.RemoveAll(staging)

	proc, err := processor.New(cfg, secret, logger)
	if err != nil {
		return fmt.Errorf("creating processor: %w", err)
	}

	summary, err := proc.CompressDirectory(ctx, cfg.Input, staging)
	if err != nil {
		if cfg.Stats {
			printStats(summary, time.Since(start))
		}

		return fmt.Errorf("archiving files: %w", err)
	}

	output := cfg.Output
	if output == "" {
		output, err = defaultArchiveName(cfg.Input, enc, comp)
		if err != nil {
			return err
		}
	}

	if err := packArchive(staging, output); err != nil {
		return err
	}

	logger.Info("archived",
		zap.String("input", cfg.Input),
		zap.String("output", output),
		zap.Int("files", summary.Processed),
	)

	if cfg.Stats {
		printStats(summary, time.Since(start))
	}

	return nil
}

// defaultArchiveName derives the archive path from the input directory,
// resolving "." style inputs to the directory's real name.
func defaultArchiveName(input string, enc encryption.Type, comp compression.Type) (string, error) {
	cleaned := filepath.Clean(input)

	if cleaned == "." || cleaned == ".." || cleaned == string(filepath.Separator) {
		abs, err := filepath.Abs(cleaned)
		if err != nil {
			return "", fmt.Errorf("resolving %q: %w", input, err)
		}

		cleaned = filepath.Base(abs)
	}

	return extension.ArchiveName(cleaned, enc, comp), nil
}

// packArchive bundles the staged tree into a single archive file. The
// partially written file is removed when packing fails.
func packArchive(staging, output string) (err error) {
	file, err := os.Create(filepath.Clean(output))
	if err != nil {
		return fmt.Errorf("creating archive %q: %w", output, err)
	}

	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing archive: %w", closeErr)
		}

		if err != nil {
			os.Remove(output)
		}
	}()

	buffered := bufio.NewWriter(file)

	if err = container.Pack(staging, buffered); err != nil {
		return fmt.Errorf("packing %q: %w", output, err)
	}

	if err = buffered.Flush(); err != nil {
		return fmt.Errorf("flushing archive: %w", err)
	}

	return nil
}

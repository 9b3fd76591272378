package processor

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/idelchi/zarc/internal/compression"
	"github.com/idelchi/zarc/internal/config"
	"github.com/idelchi/zarc/internal/encryption"
	"github.com/idelchi/zarc/internal/pipeline"
	"github.com/idelchi/zarc/internal/signing"
)

// Processor holds the algorithm choices and secret for one directory
// operation and fans per-file pipelines out across a worker pool.
type Processor struct {
	encryption  encryption.Type
	secret      *encryption.Secret
	compression compression.Type
	level       compression.Level
	signing     signing.Type
	parallel    int
	logger      *zap.Logger
}

// New creates a Processor from the resolved configuration. The secret is
// shared read-only by every worker.
func New(cfg *config.Config, secret *encryption.Secret, logger *zap.Logger) (*Processor, error) {
	enc, err := cfg.EncryptionType()
	if err != nil {
		return nil, err
	}

	comp, err := cfg.CompressionType()
	if err != nil {
		return nil, err
	}

	level, err := cfg.CompressionLevel()
	if err != nil {
		return nil, err
	}

	parallel := cfg.Parallel
	if parallel < 1 {
		parallel = 1
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	if secret == nil {
		secret = encryption.NoSecret()
	}

	return &Processor{
		encryption:  enc,
		secret:      secret,
		compression: comp,
		level:       level,
		signing:     signing.Passthrough,
		parallel:    parallel,
		logger:      logger,
	}, nil
}

// CompressDirectory archives every regular file under inputDir into
// outputDir, appending the algorithm suffix to each relative path.
func (p *Processor) CompressDirectory(ctx context.Context, inputDir, outputDir string) (Summary, error) {
	jobs, err := p.planCompress(inputDir, outputDir)
	if err != nil {
		return Summary{}, err
	}

	if err := p.createDirs(outputDir, jobs); err != nil {
		return Summary{}, err
	}

	return p.run(ctx, jobs, p.compressFile)
}

// DecompressDirectory restores every staged file under inputDir into
// outputDir, stripping the algorithm suffix from each relative path.
// Families left at passthrough are filled in from the first staged file's
// tags; explicitly configured algorithms win.
func (p *Processor) DecompressDirectory(ctx context.Context, inputDir, outputDir string) (Summary, error) {
	enc, comp, err := DetectTypes(inputDir, p.encryption, p.compression)
	if err != nil {
		return Summary{}, err
	}

	p.encryption, p.compression = enc, comp

	jobs, err := p.planDecompress(inputDir, outputDir)
	if err != nil {
		return Summary{}, err
	}

	if err := p.createDirs(outputDir, jobs); err != nil {
		return Summary{}, err
	}

	return p.run(ctx, jobs, p.decompressFile)
}

// compressFile runs one compress pipeline and reports its outcome.
func (p *Processor) compressFile(job Job) Result {
	pl, err := pipeline.New(pipeline.Config{
		Encryption:  p.encryption,
		Secret:      p.secret,
		Compression: p.compression,
		Level:       p.level,
		Signing:     p.signing,
		Source:      job.Input,
		Destination: job.Output,
	})
	if err != nil {
		return Result{Input: job.Input, Error: err}
	}

	signature, written, err := pl.Compress()
	if err != nil {
		return Result{Input: job.Input, Error: err}
	}

	return Result{Input: job.Input, Output: job.Output, OutputSize: written, Signature: signature}
}

// decompressFile runs one decompress pipeline and reports its outcome.
func (p *Processor) decompressFile(job Job) Result {
	pl, err := pipeline.New(pipeline.Config{
		Encryption:  p.encryption,
		Secret:      p.secret,
		Compression: p.compression,
		Level:       p.level,
		Signing:     p.signing,
		Source:      job.Input,
		Destination: job.Output,
	})
	if err != nil {
		return Result{Input: job.Input, Error: err}
	}

	signature, written, err := pl.Decompress()
	if err != nil {
		return Result{Input: job.Input, Error: err}
	}

	return Result{Input: job.Input, Output: job.Output, OutputSize: written, Signature: signature}
}

// ensureDir makes sure the operation's output root exists even when there
// are no jobs to create it as a parent.
func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("creating directory %q: %w", dir, err)
	}

	return nil
}

package processor

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/idelchi/zarc/internal/compression"
	"github.com/idelchi/zarc/internal/encryption"
	"github.com/idelchi/zarc/internal/extension"
)

const dirPerm = 0o755

// planCompress walks the input root and builds one job per regular file,
// encoding the algorithm suffix into each output path. Symlinks and other
// non-regular entries are skipped.
func (p *Processor) planCompress(inputDir, outputDir string) ([]Job, error) {
	suffix := extension.Encode(p.encryption, p.compression)

	var jobs []Job

	err := filepath.WalkDir(inputDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walking %q: %w", path, err)
		}

		if !entry.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(inputDir, path)
		if err != nil {
			return fmt.Errorf("resolving relative path for %q: %w", path, err)
		}

		jobs = append(jobs, Job{Input: path, Output: filepath.Join(outputDir, rel+suffix)})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return jobs, nil
}

// planDecompress walks the staged tree and builds one job per regular
// file, decoding each name back to the original relative path.
func (p *Processor) planDecompress(inputDir, outputDir string) ([]Job, error) {
	var jobs []Job

	err := filepath.WalkDir(inputDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walking %q: %w", path, err)
		}

		if !entry.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(inputDir, path)
		if err != nil {
			return fmt.Errorf("resolving relative path for %q: %w", path, err)
		}

		dir, base := filepath.Split(rel)

		decoded, err := extension.Decode(base)
		if err != nil {
			return fmt.Errorf("decoding %q: %w", rel, err)
		}

		jobs = append(jobs, Job{Input: path, Output: filepath.Join(outputDir, dir, decoded.Name)})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return jobs, nil
}

// DetectTypes reports the algorithms recorded in a staged tree's file
// names. Non-passthrough arguments are explicit overrides and win; a
// family left at passthrough takes the tag of the first regular file
// encountered, once for the whole operation.
func DetectTypes(
	dir string,
	enc encryption.Type,
	comp compression.Type,
) (encryption.Type, compression.Type, error) {
	if enc != encryption.Passthrough && comp != compression.Passthrough {
		return enc, comp, nil
	}

	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walking %q: %w", path, err)
		}

		if !entry.Type().IsRegular() {
			return nil
		}

		decoded, decodeErr := extension.Decode(filepath.Base(path))
		if decodeErr != nil {
			return fmt.Errorf("decoding %q: %w", path, decodeErr)
		}

		if enc == encryption.Passthrough {
			enc = decoded.Encryption
		}

		if comp == compression.Passthrough {
			comp = decoded.Compression
		}

		return fs.SkipAll
	})
	if err != nil {
		return enc, comp, err
	}

	return enc, comp, nil
}

// createDirs makes the output root and every distinct destination parent
// directory. The fan-out completes before any file job starts, so workers
// never race a file write against its directory's creation.
func (p *Processor) createDirs(outputDir string, jobs []Job) error {
	if err := ensureDir(outputDir); err != nil {
		return err
	}

	dirs := make(map[string]struct{}, len(jobs))
	for _, job := range jobs {
		dirs[filepath.Dir(job.Output)] = struct{}{}
	}

	group := errgroup.Group{}
	group.SetLimit(p.parallel)

	for dir := range dirs {
		dir := dir

		group.Go(func() error {
			if err := os.MkdirAll(dir, dirPerm); err != nil {
				return fmt.Errorf("creating directory %q: %w", dir, err)
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return fmt.Errorf("creating output directories: %w", err)
	}

	return nil
}

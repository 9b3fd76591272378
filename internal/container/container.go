// Package container packs a staged directory tree into a single tar stream
// and unpacks such a stream back into a directory. The container carries
// relative slash paths and file modes; it knows nothing about the per-file
// transforms applied to its members.
package container

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrInsecurePath is returned for a member name that would escape the
// unpack directory.
var ErrInsecurePath = errors.New("insecure path in archive")

// Pack writes every directory and regular file under dir to w as a tar
// stream with paths relative to dir. Non-regular entries are not archived.
func Pack(dir string, w io.Writer) error {
	tw := tar.NewWriter(w)

	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walking %q: %w", path, err)
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return fmt.Errorf("resolving relative path for %q: %w", path, err)
		}

		if rel == "." {
			return nil
		}

		if !entry.IsDir() && !entry.Type().IsRegular() {
			return nil
		}

		info, err := entry.Info()
		if err != nil {
			return fmt.Errorf("stat %q: %w", path, err)
		}

		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return fmt.Errorf("building tar header for %q: %w", rel, err)
		}

		header.Name = filepath.ToSlash(rel)
		if entry.IsDir() {
			header.Name += "/"
		}

		if err := tw.WriteHeader(header); err != nil {
			return fmt.Errorf("writing tar header for %q: %w", rel, err)
		}

		if entry.IsDir() {
			return nil
		}

		file, err := os.Open(filepath.Clean(path))
		if err != nil {
			return fmt.Errorf("opening %q: %w", path, err)
		}
		defer file.Close()

		if _, err := io.Copy(tw, file); err != nil {
			return fmt.Errorf("archiving %q: %w", rel, err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("closing tar writer: %w", err)
	}

	return nil
}

// Unpack restores a tar stream produced by Pack into dir. Member names
// must stay inside dir; absolute or escaping names are rejected. Only
// directories and regular files are materialized.
func Unpack(r io.Reader, dir string) error {
	tr := tar.NewReader(r)

	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return fmt.Errorf("reading tar header: %w", err)
		}

		name := filepath.FromSlash(header.Name)
		if !filepath.IsLocal(name) {
			return fmt.Errorf("%w: %q", ErrInsecurePath, header.Name)
		}

		target := filepath.Join(dir, name)

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, header.FileInfo().Mode().Perm()); err != nil {
				return fmt.Errorf("creating directory %q: %w", target, err)
			}
		case tar.TypeReg:
			if err := extractFile(tr, target, header); err != nil {
				return err
			}
		default:
			// Symlinks and special files are not restored.
		}
	}

	return nil
}

// extractFile writes one regular member to disk, restoring its mode and
// modification time.
func extractFile(tr *tar.Reader, target string, header *tar.Header) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("creating directory for %q: %w", target, err)
	}

	perm := header.FileInfo().Mode().Perm()

	file, err := os.OpenFile(filepath.Clean(target), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("creating %q: %w", target, err)
	}

	if _, err := io.Copy(file, tr); err != nil { //nolint:gosec // bounded by the tar stream
		file.Close()

		return fmt.Errorf("extracting %q: %w", target, err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %q: %w", target, err)
	}

	if err := os.Chtimes(target, header.ModTime, header.ModTime); err != nil {
		return fmt.Errorf("preserving timestamps for %q: %w", target, err)
	}

	return nil
}

package container_test

import (
	"archive/tar"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/idelchi/zarc/internal/container"
)

func writeFile(t *testing.T, root, name string, data []byte, perm os.FileMode) {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(name))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", name, err)
	}

	if err := os.WriteFile(path, data, perm); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

func TestPackUnpackRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")

	writeFile(t, src, "a.txt.lz4", []byte("member one"), 0o644)
	writeFile(t, src, "sub/deep/b.bin.lz4", []byte("member two"), 0o644)
	writeFile(t, src, "empty.lz4", nil, 0o644)
	writeFile(t, src, "tool.sh.lz4", []byte("#!/bin/sh\n"), 0o755)

	if err := os.MkdirAll(filepath.Join(src, "hollow"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	var archive bytes.Buffer

	if err := container.Pack(src, &archive); err != nil {
		t.Fatalf("Pack error: %v", err)
	}

	if err := container.Unpack(bytes.NewReader(archive.Bytes()), dst); err != nil {
		t.Fatalf("Unpack error: %v", err)
	}

	for name, want := range map[string]string{
		"a.txt.lz4":          "member one",
		"sub/deep/b.bin.lz4": "member two",
		"empty.lz4":          "",
	} {
		got, err := os.ReadFile(filepath.Join(dst, filepath.FromSlash(name))) //nolint:gosec // test path
		if err != nil {
			t.Errorf("reading %s: %v", name, err)

			continue
		}

		if string(got) != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}

	info, err := os.Stat(filepath.Join(dst, "tool.sh.lz4"))
	if err != nil {
		t.Fatalf("stat tool: %v", err)
	}

	if info.Mode()&0o111 == 0 {
		t.Error("executable bit lost through the container")
	}

	hollow, err := os.Stat(filepath.Join(dst, "hollow"))
	if err != nil {
		t.Fatalf("stat hollow: %v", err)
	}

	if !hollow.IsDir() {
		t.Error("empty directory not restored")
	}
}

// TestUnpackRestoresModTime checks member modification times survive the
// container round trip.
func TestUnpackRestoresModTime(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")

	writeFile(t, src, "dated.txt", []byte("x"), 0o644)

	want, err := os.Stat(filepath.Join(src, "dated.txt"))
	if err != nil {
		t.Fatalf("stat source: %v", err)
	}

	var archive bytes.Buffer

	if err := container.Pack(src, &archive); err != nil {
		t.Fatalf("Pack error: %v", err)
	}

	if err := container.Unpack(bytes.NewReader(archive.Bytes()), dst); err != nil {
		t.Fatalf("Unpack error: %v", err)
	}

	got, err := os.Stat(filepath.Join(dst, "dated.txt"))
	if err != nil {
		t.Fatalf("stat restored: %v", err)
	}

	// tar headers carry second precision.
	if got.ModTime().Unix() != want.ModTime().Unix() {
		t.Errorf("mod time = %v, want %v", got.ModTime(), want.ModTime())
	}
}

// TestUnpackRejectsEscapingNames checks members that would land outside
// the unpack directory are refused.
func TestUnpackRejectsEscapingNames(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"../evil", "/abs/evil", "a/../../evil"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			tw := tar.NewWriter(&buf)

			if err := tw.WriteHeader(&tar.Header{
				Typeflag: tar.TypeReg,
				Name:     name,
				Mode:     0o644,
				Size:     1,
			}); err != nil {
				t.Fatalf("writing header: %v", err)
			}

			if _, err := tw.Write([]byte("x")); err != nil {
				t.Fatalf("writing body: %v", err)
			}

			if err := tw.Close(); err != nil {
				t.Fatalf("closing writer: %v", err)
			}

			err := container.Unpack(bytes.NewReader(buf.Bytes()), t.TempDir())
			if !errors.Is(err, container.ErrInsecurePath) {
				t.Fatalf("Unpack error = %v, want ErrInsecurePath", err)
			}
		})
	}
}

// TestUnpackSkipsSymlinks checks link members are dropped rather than
// materialized.
func TestUnpackSkipsSymlinks(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	tw := tar.NewWriter(&buf)

	if err := tw.WriteHeader(&tar.Header{
		Typeflag: tar.TypeSymlink,
		Name:     "link",
		Linkname: "/etc/passwd",
		Mode:     0o777,
	}); err != nil {
		t.Fatalf("writing header: %v", err)
	}

	if err := tw.Close(); err != nil {
		t.Fatalf("closing writer: %v", err)
	}

	dst := t.TempDir()

	if err := container.Unpack(bytes.NewReader(buf.Bytes()), dst); err != nil {
		t.Fatalf("Unpack error: %v", err)
	}

	if _, err := os.Lstat(filepath.Join(dst, "link")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("symlink member was materialized: %v", err)
	}
}

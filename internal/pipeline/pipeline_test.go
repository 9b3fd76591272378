package pipeline_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/idelchi/zarc/internal/compression"
	"github.com/idelchi/zarc/internal/encryption"
	"github.com/idelchi/zarc/internal/pipeline"
	"github.com/idelchi/zarc/internal/signing"
)

// payload crosses the encryption chunk boundary so multi-chunk framing is
// exercised end to end.
func payload() []byte {
	return []byte(strings.Repeat("streaming pipeline payload\n", 3000))
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}

	return path
}

func newConfig(enc encryption.Type, secret *encryption.Secret, comp compression.Type, src, dst string) pipeline.Config {
	return pipeline.Config{
		Encryption:  enc,
		Secret:      secret,
		Compression: comp,
		Level:       compression.Fastest,
		Signing:     signing.Passthrough,
		Source:      src,
		Destination: dst,
	}
}

func testSecret(t *testing.T, password string) *encryption.Secret {
	t.Helper()

	secret, err := encryption.PasswordSecret([]byte(password))
	if err != nil {
		t.Fatalf("PasswordSecret error: %v", err)
	}

	return secret
}

// TestRoundTrip compresses and restores a file across algorithm
// combinations and checks the restored bytes match the source exactly.
func TestRoundTrip(t *testing.T) {
	t.Parallel()

	encs := []encryption.Type{encryption.Passthrough, encryption.XChaCha}
	comps := []compression.Type{
		compression.Passthrough, compression.LZ4, compression.Gzip, compression.Snappy,
	}

	for _, enc := range encs {
		for _, comp := range comps {
			t.Run(enc.String()+"_"+comp.String(), func(t *testing.T) {
				t.Parallel()

				dir := t.TempDir()
				data := payload()

				src := writeFile(t, dir, "input.bin", data)
				staged := filepath.Join(dir, "staged")
				restored := filepath.Join(dir, "restored.bin")

				secret := encryption.NoSecret()
				if enc != encryption.Passthrough {
					secret = testSecret(t, "round trip")
				}

				forward, err := pipeline.New(newConfig(enc, secret, comp, src, staged))
				if err != nil {
					t.Fatalf("New (compress) error: %v", err)
				}

				_, written, err := forward.Compress()
				if err != nil {
					t.Fatalf("Compress error: %v", err)
				}

				info, err := os.Stat(staged)
				if err != nil {
					t.Fatalf("staged file missing: %v", err)
				}

				if info.Size() != written {
					t.Errorf("Compress reported %d bytes, staged file has %d", written, info.Size())
				}

				backward, err := pipeline.New(newConfig(enc, secret, comp, staged, restored))
				if err != nil {
					t.Fatalf("New (decompress) error: %v", err)
				}

				if _, _, err := backward.Decompress(); err != nil {
					t.Fatalf("Decompress error: %v", err)
				}

				out, err := os.ReadFile(restored)
				if err != nil {
					t.Fatalf("reading restored file: %v", err)
				}

				if !bytes.Equal(out, data) {
					t.Errorf("round trip changed data: got %d bytes, want %d", len(out), len(data))
				}
			})
		}
	}
}

// TestIdentityByteIdentical checks the all-passthrough pipeline produces a
// byte-identical copy in both directions.
func TestIdentityByteIdentical(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	data := payload()

	src := writeFile(t, dir, "input.bin", data)
	staged := filepath.Join(dir, "staged")

	pl, err := pipeline.New(newConfig(
		encryption.Passthrough, encryption.NoSecret(), compression.Passthrough, src, staged,
	))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	if _, _, err := pl.Compress(); err != nil {
		t.Fatalf("Compress error: %v", err)
	}

	out, err := os.ReadFile(staged)
	if err != nil {
		t.Fatalf("reading staged file: %v", err)
	}

	if !bytes.Equal(out, data) {
		t.Error("identity pipeline changed bytes")
	}
}

// TestExecBitAndModTimeCarriedOver checks the source's executable bit and
// modification time survive into the output.
func TestExecBitAndModTimeCarriedOver(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	src := writeFile(t, dir, "tool.sh", []byte("#!/bin/sh\n"))
	if err := os.Chmod(src, 0o755); err != nil {
		t.Fatalf("chmod: %v", err)
	}

	modTime := time.Date(2024, 5, 17, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(src, modTime, modTime); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	staged := filepath.Join(dir, "staged")

	pl, err := pipeline.New(newConfig(
		encryption.Passthrough, encryption.NoSecret(), compression.LZ4, src, staged,
	))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	if _, _, err := pl.Compress(); err != nil {
		t.Fatalf("Compress error: %v", err)
	}

	info, err := os.Stat(staged)
	if err != nil {
		t.Fatalf("stat staged: %v", err)
	}

	if info.Mode()&0o111 == 0 {
		t.Error("executable bit lost")
	}

	if !info.ModTime().Equal(modTime) {
		t.Errorf("mod time = %v, want %v", info.ModTime(), modTime)
	}
}

// TestKeyfileFailureLeavesNothing checks a pipeline that cannot build its
// encryption layer reports the key file and leaves the destination
// directory untouched.
func TestKeyfileFailureLeavesNothing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	src := writeFile(t, dir, "input.bin", []byte("data"))

	outDir := filepath.Join(dir, "out")
	if err := os.Mkdir(outDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	pl, err := pipeline.New(newConfig(
		encryption.XChaCha,
		encryption.KeyfileSecret("ops/archive.key"),
		compression.LZ4,
		src,
		filepath.Join(outDir, "input.bin.xcha.lz4"),
	))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	_, _, err = pl.Compress()
	if !errors.Is(err, encryption.ErrKeyfileUnsupported) {
		t.Fatalf("Compress error = %v, want ErrKeyfileUnsupported", err)
	}

	if !strings.Contains(err.Error(), "ops/archive.key") {
		t.Errorf("error %q does not name the key file", err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("reading output dir: %v", err)
	}

	if len(entries) != 0 {
		t.Errorf("output directory not empty after failure: %v", entries)
	}
}

// TestWrongPasswordLeavesNothing checks a failed decompression removes its
// temporary file and never creates the destination.
func TestWrongPasswordLeavesNothing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	src := writeFile(t, dir, "input.bin", payload())
	staged := filepath.Join(dir, "staged")

	forward, err := pipeline.New(newConfig(
		encryption.XChaCha, testSecret(t, "right"), compression.Passthrough, src, staged,
	))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	if _, _, err := forward.Compress(); err != nil {
		t.Fatalf("Compress error: %v", err)
	}

	outDir := filepath.Join(dir, "out")
	if err := os.Mkdir(outDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	backward, err := pipeline.New(newConfig(
		encryption.XChaCha, testSecret(t, "wrong"), compression.Passthrough,
		staged, filepath.Join(outDir, "input.bin"),
	))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	if _, _, err := backward.Decompress(); err == nil {
		t.Fatal("decompressing with the wrong password succeeded")
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("reading output dir: %v", err)
	}

	if len(entries) != 0 {
		t.Errorf("output directory not empty after failure: %v", entries)
	}
}

func TestConfigValidation(t *testing.T) {
	t.Parallel()

	base := func() pipeline.Config {
		return newConfig(
			encryption.Passthrough, encryption.NoSecret(), compression.Passthrough, "src", "dst",
		)
	}

	t.Run("missing_source", func(t *testing.T) {
		t.Parallel()

		cfg := base()
		cfg.Source = ""

		if _, err := pipeline.New(cfg); !errors.Is(err, pipeline.ErrMissingField) {
			t.Errorf("error = %v, want ErrMissingField", err)
		}
	})

	t.Run("missing_destination", func(t *testing.T) {
		t.Parallel()

		cfg := base()
		cfg.Destination = ""

		if _, err := pipeline.New(cfg); !errors.Is(err, pipeline.ErrMissingField) {
			t.Errorf("error = %v, want ErrMissingField", err)
		}
	})

	t.Run("missing_secret", func(t *testing.T) {
		t.Parallel()

		cfg := base()
		cfg.Secret = nil

		if _, err := pipeline.New(cfg); !errors.Is(err, pipeline.ErrMissingField) {
			t.Errorf("error = %v, want ErrMissingField", err)
		}
	})

	t.Run("unknown_cipher", func(t *testing.T) {
		t.Parallel()

		cfg := base()
		cfg.Encryption = encryption.Type(99)

		if _, err := pipeline.New(cfg); !errors.Is(err, encryption.ErrUnknownType) {
			t.Errorf("error = %v, want encryption.ErrUnknownType", err)
		}
	})

	t.Run("invalid_level", func(t *testing.T) {
		t.Parallel()

		cfg := base()
		cfg.Level = compression.Level(42)

		if _, err := pipeline.New(cfg); !errors.Is(err, compression.ErrInvalidLevel) {
			t.Errorf("error = %v, want compression.ErrInvalidLevel", err)
		}
	})
}

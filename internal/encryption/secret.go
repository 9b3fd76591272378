package encryption

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"sync"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/hkdf"
)

// MaxPasswordLen bounds password secrets, interactive or configured.
const MaxPasswordLen = 256

const (
	saltSize = 16
	keySize  = 32

	argonTime    = 1
	argonMemory  = 64 * 1024 // KiB
	argonThreads = 4
)

type secretKind byte

const (
	secretNone secretKind = iota
	secretPassword
	secretKeyfile
)

// Secret supplies the key material consumed by the encryption layer. One
// Secret is resolved per directory operation and shared read-only by every
// worker; derived keys are cached per (cipher, salt) pair so the KDF runs
// once per operation rather than once per file.
type Secret struct {
	kind     secretKind
	password []byte
	keyfile  string

	mu   sync.Mutex
	salt []byte
	keys map[string][]byte
}

// NoSecret returns the absent secret.
func NoSecret() *Secret {
	return &Secret{kind: secretNone}
}

// PasswordSecret returns a secret backed by a copy of password.
func PasswordSecret(password []byte) (*Secret, error) {
	if len(password) == 0 {
		return nil, ErrPasswordEmpty
	}

	if len(password) > MaxPasswordLen {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrPasswordTooLong, len(password), MaxPasswordLen)
	}

	pw := make([]byte, len(password))
	copy(pw, password)

	return &Secret{kind: secretPassword, password: pw}, nil
}

// KeyfileSecret returns a secret referencing a key file. Consuming it fails
// until key files are supported; the path is kept for the error message.
func KeyfileSecret(path string) *Secret {
	return &Secret{kind: secretKeyfile, keyfile: path}
}

// IsNone reports whether the secret is absent.
func (s *Secret) IsNone() bool {
	return s == nil || s.kind == secretNone
}

// String identifies the secret kind without exposing material.
func (s *Secret) String() string {
	if s == nil {
		return "none"
	}

	switch s.kind {
	case secretPassword:
		return "password"
	case secretKeyfile:
		return "key file"
	default:
		return "none"
	}
}

// operationSalt returns the salt shared by every file written in one
// operation, generating it on first use. Each file's envelope carries the
// salt, so files remain independently decryptable.
func (s *Secret) operationSalt() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.salt == nil {
		salt := make([]byte, saltSize)
		if _, err := rand.Read(salt); err != nil {
			return nil, fmt.Errorf("generating salt: %w", err)
		}

		s.salt = salt
	}

	return s.salt, nil
}

// cipherKey derives the key for the cipher/salt pair, or returns the cached
// one. Holding the lock across derivation means concurrent workers wanting
// the same key wait for the first derivation instead of repeating it.
func (s *Secret) cipherKey(typ Type, salt []byte) ([]byte, error) {
	switch s.kind {
	case secretKeyfile:
		return nil, fmt.Errorf("%w: %q", ErrKeyfileUnsupported, s.keyfile)
	case secretNone:
		return nil, fmt.Errorf("%w: %s selected with no secret", ErrPasswordRequired, typ)
	case secretPassword:
	}

	cacheKey := string([]byte{byte(typ)}) + string(salt)

	s.mu.Lock()
	defer s.mu.Unlock()

	if key, ok := s.keys[cacheKey]; ok {
		return key, nil
	}

	key, err := deriveKey(s.password, salt, typ)
	if err != nil {
		return nil, err
	}

	if s.keys == nil {
		s.keys = make(map[string][]byte)
	}

	s.keys[cacheKey] = key

	return key, nil
}

// deriveKey stretches the password with Argon2id, then binds the cipher
// identity into the final key through HKDF expansion.
func deriveKey(password, salt []byte, typ Type) ([]byte, error) {
	master := argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, keySize)

	hkdfReader := hkdf.New(sha256.New, master, nil, []byte("zarc/v1/"+typ.Tag()))

	key := make([]byte, keySize)
	if _, err := io.ReadFull(hkdfReader, key); err != nil {
		return nil, fmt.Errorf("deriving cipher key: %w", err)
	}

	return key, nil
}

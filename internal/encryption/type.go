package encryption

import "fmt"

// Type represents the cipher applied to a file's byte stream.
type Type byte

const (
	// Passthrough performs no encryption.
	Passthrough Type = iota
	// ChaCha encrypts with ChaCha20-Poly1305.
	ChaCha
	// XChaCha encrypts with XChaCha20-Poly1305.
	XChaCha
	// AESGCM encrypts with AES-256-GCM.
	AESGCM
)

// ParseType converts a string to an encryption Type.
func ParseType(name string) (Type, error) {
	switch name {
	case "passthrough", "":
		return Passthrough, nil
	case "chacha":
		return ChaCha, nil
	case "xchacha":
		return XChaCha, nil
	case "aesgcm":
		return AESGCM, nil
	default:
		return Passthrough, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
}

// String returns the name used on the command line.
func (t Type) String() string {
	switch t {
	case Passthrough:
		return "passthrough"
	case ChaCha:
		return "chacha"
	case XChaCha:
		return "xchacha"
	case AESGCM:
		return "aesgcm"
	default:
		return "unknown"
	}
}

// Tag returns the filename suffix token recording this cipher.
// Passthrough contributes no tag.
func (t Type) Tag() string {
	switch t {
	case ChaCha:
		return "cha"
	case XChaCha:
		return "xcha"
	case AESGCM:
		return "aes"
	default:
		return ""
	}
}

// IsValid reports whether t is a member of the closed cipher set.
func (t Type) IsValid() bool {
	return t <= AESGCM
}

package encryption

import (
	"bytes"
	"fmt"
)

const (
	envelopeMagic   = "ZARC"
	envelopeVersion = byte(1)
)

// envelopeHeaderSize covers magic, version, cipher byte and salt.
const envelopeHeaderSize = len(envelopeMagic) + 2 + saltSize

// newEnvelopeHeader builds the plaintext header written ahead of the chunk
// stream. The header doubles as associated data for every chunk, binding
// the cipher choice and salt to the ciphertext.
func newEnvelopeHeader(typ Type, salt []byte) []byte {
	header := make([]byte, 0, envelopeHeaderSize)
	header = append(header, envelopeMagic...)
	header = append(header, envelopeVersion, byte(typ))
	header = append(header, salt...)

	return header
}

// parseEnvelopeHeader validates a header and returns the cipher and salt.
func parseEnvelopeHeader(header []byte) (Type, []byte, error) {
	if len(header) != envelopeHeaderSize {
		return 0, nil, fmt.Errorf("%w: envelope header too short", ErrProcessing)
	}

	if !bytes.Equal(header[:len(envelopeMagic)], []byte(envelopeMagic)) {
		return 0, nil, fmt.Errorf("%w: invalid envelope magic", ErrProcessing)
	}

	version := header[len(envelopeMagic)]
	if version != envelopeVersion {
		return 0, nil, fmt.Errorf("%w: unsupported envelope version %d", ErrProcessing, version)
	}

	typ := Type(header[len(envelopeMagic)+1])
	if typ == Passthrough || !typ.IsValid() {
		return 0, nil, fmt.Errorf("%w: unsupported cipher byte %d", ErrProcessing, byte(typ))
	}

	salt := header[len(envelopeMagic)+2:]

	return typ, salt, nil
}

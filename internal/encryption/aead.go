package encryption

import (
	"fmt"

	"github.com/tink-crypto/tink-go/v2/aead/subtle"
	"github.com/tink-crypto/tink-go/v2/tink"
)

// newAEAD constructs the tink primitive for a non-identity cipher from a
// derived key.
func newAEAD(typ Type, key []byte) (tink.AEAD, error) {
	switch typ {
	case ChaCha:
		primitive, err := subtle.NewChaCha20Poly1305(key)
		if err != nil {
			return nil, fmt.Errorf("creating chacha20-poly1305 primitive: %w", err)
		}

		return primitive, nil
	case XChaCha:
		primitive, err := subtle.NewXChaCha20Poly1305(key)
		if err != nil {
			return nil, fmt.Errorf("creating xchacha20-poly1305 primitive: %w", err)
		}

		return primitive, nil
	case AESGCM:
		primitive, err := subtle.NewAESGCM(key)
		if err != nil {
			return nil, fmt.Errorf("creating aes-gcm primitive: %w", err)
		}

		return primitive, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, typ)
	}
}

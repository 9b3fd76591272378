package encryption

import "errors"

var (
	// ErrUnknownType is returned for a cipher outside the supported set.
	ErrUnknownType = errors.New("unknown encryption algorithm")
	// ErrPasswordRequired is returned when a cipher is selected without a secret.
	ErrPasswordRequired = errors.New("password required")
	// ErrPasswordEmpty is returned for an empty password.
	ErrPasswordEmpty = errors.New("password is empty")
	// ErrPasswordTooLong is returned when a password exceeds MaxPasswordLen.
	ErrPasswordTooLong = errors.New("password too long")
	// ErrKeyfileUnsupported is returned when a key-file secret is requested.
	ErrKeyfileUnsupported = errors.New("key file secrets are not supported yet")
	// ErrProcessing indicates a malformed or foreign envelope header.
	ErrProcessing = errors.New("envelope processing error")
	// ErrCipherMismatch is returned when a file's header names a different
	// cipher than the one requested for the operation.
	ErrCipherMismatch = errors.New("cipher mismatch")
	// ErrChunkTooLarge guards against absurd chunk lengths in corrupt input.
	ErrChunkTooLarge = errors.New("encrypted chunk exceeds maximum size")
)

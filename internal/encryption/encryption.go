package encryption

import (
	"fmt"
	"io"
)

// NewWriter wraps w with an encrypting writer for the given cipher and
// secret. The envelope header is written immediately; Close flushes the
// final chunk but leaves w open. The passthrough variant writes no header
// and passes bytes through unchanged.
func NewWriter(w io.Writer, typ Type, secret *Secret) (io.WriteCloser, error) {
	if typ == Passthrough {
		return nopWriteCloser{w}, nil
	}

	if !typ.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, typ)
	}

	if secret.IsNone() {
		return nil, fmt.Errorf("%w: %s selected with no secret", ErrPasswordRequired, typ)
	}

	salt, err := secret.operationSalt()
	if err != nil {
		return nil, err
	}

	key, err := secret.cipherKey(typ, salt)
	if err != nil {
		return nil, err
	}

	primitive, err := newAEAD(typ, key)
	if err != nil {
		return nil, err
	}

	header := newEnvelopeHeader(typ, salt)

	if _, err := w.Write(header); err != nil {
		return nil, fmt.Errorf("writing envelope header: %w", err)
	}

	return newChunkWriter(w, primitive, header), nil
}

// NewReader wraps r with a decrypting reader for the given cipher and
// secret. The envelope header is consumed and validated immediately,
// including that the file was written with the requested cipher.
func NewReader(r io.Reader, typ Type, secret *Secret) (io.Reader, error) {
	if typ == Passthrough {
		return r, nil
	}

	if !typ.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, typ)
	}

	if secret.IsNone() {
		return nil, fmt.Errorf("%w: %s selected with no secret", ErrPasswordRequired, typ)
	}

	header := make([]byte, envelopeHeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("reading envelope header: %w", err)
	}

	fileType, salt, err := parseEnvelopeHeader(header)
	if err != nil {
		return nil, err
	}

	if fileType != typ {
		return nil, fmt.Errorf("%w: file uses %s, %s requested", ErrCipherMismatch, fileType, typ)
	}

	key, err := secret.cipherKey(typ, salt)
	if err != nil {
		return nil, err
	}

	primitive, err := newAEAD(typ, key)
	if err != nil {
		return nil, err
	}

	return newChunkReader(r, primitive, header), nil
}

// nopWriteCloser adapts a plain writer to the WriteCloser shape shared by
// all encrypting writers.
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

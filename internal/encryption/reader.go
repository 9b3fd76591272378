package encryption

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/tink-crypto/tink-go/v2/tink"
)

// chunkReader wraps an io.Reader with chunked authenticated decryption,
// mirroring chunkWriter's framing.
type chunkReader struct {
	r      io.Reader
	aead   tink.AEAD
	header []byte
	index  uint64
	plain  []byte
	offset int
	err    error
}

// newChunkReader creates a reader that decrypts the chunk stream following
// an already-consumed envelope header.
func newChunkReader(r io.Reader, aead tink.AEAD, header []byte) *chunkReader {
	hdrCopy := make([]byte, len(header))
	copy(hdrCopy, header)

	return &chunkReader{
		r:      r,
		aead:   aead,
		header: hdrCopy,
	}
}

// Read implements io.Reader, decrypting one chunk at a time.
func (cr *chunkReader) Read(p []byte) (int, error) {
	for {
		if cr.offset < len(cr.plain) {
			n := copy(p, cr.plain[cr.offset:])
			cr.offset += n

			return n, nil
		}

		if cr.err != nil {
			return 0, cr.err
		}

		if err := cr.nextChunk(); err != nil {
			cr.err = err

			return 0, err
		}
	}
}

// nextChunk reads and decrypts the next frame. A clean EOF at a frame
// boundary ends the stream; anything else is corruption or truncation.
func (cr *chunkReader) nextChunk() error {
	var size uint32

	if err := binary.Read(cr.r, binary.BigEndian, &size); err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF
		}

		return fmt.Errorf("reading chunk size: %w", err)
	}

	if size > maxChunkCiphertext {
		return fmt.Errorf("%w: %d bytes", ErrChunkTooLarge, size)
	}

	encrypted := make([]byte, size)
	if _, err := io.ReadFull(cr.r, encrypted); err != nil {
		return fmt.Errorf("reading encrypted chunk: %w", err)
	}

	ad := buildChunkAssociatedData(cr.header, cr.index)

	plain, err := cr.aead.Decrypt(encrypted, ad)
	if err != nil {
		return fmt.Errorf("decrypting chunk %d: %w", cr.index, err)
	}

	cr.index++
	cr.plain = plain
	cr.offset = 0

	return nil
}

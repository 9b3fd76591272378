package encryption

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/tink-crypto/tink-go/v2/tink"
)

// chunkSize is the plaintext size of one encrypted frame.
const chunkSize = 64 * 1024

// maxChunkCiphertext bounds a frame's ciphertext: chunk plus nonce and tag
// overhead. Anything larger marks a corrupt or foreign stream.
const maxChunkCiphertext = chunkSize + 64

// chunkWriter wraps an io.Writer with chunked authenticated encryption.
type chunkWriter struct {
	w      io.Writer
	aead   tink.AEAD
	buffer []byte
	header []byte
	index  uint64
}

// newChunkWriter creates a writer that encrypts data in chunks using the
// provided AEAD. The header must already have been written to w.
func newChunkWriter(w io.Writer, aead tink.AEAD, header []byte) *chunkWriter {
	hdrCopy := make([]byte, len(header))
	copy(hdrCopy, header)

	return &chunkWriter{
		w:      w,
		aead:   aead,
		buffer: make([]byte, 0, chunkSize),
		header: hdrCopy,
	}
}

// Write implements io.Writer, buffering data until a complete chunk can be
// encrypted.
func (cw *chunkWriter) Write(data []byte) (int, error) {
	cw.buffer = append(cw.buffer, data...)

	for len(cw.buffer) >= chunkSize {
		if err := cw.flushChunk(chunkSize); err != nil {
			return 0, err
		}
	}

	return len(data), nil
}

// Close implements io.Closer, encrypting any remaining buffered data.
// It does not close the underlying writer.
func (cw *chunkWriter) Close() error {
	if len(cw.buffer) > 0 {
		return cw.flushChunk(len(cw.buffer))
	}

	return nil
}

// flushChunk encrypts and writes a chunk of the specified size.
func (cw *chunkWriter) flushChunk(size int) error {
	chunk := make([]byte, size)
	copy(chunk, cw.buffer[:size])

	ad := buildChunkAssociatedData(cw.header, cw.index)

	encrypted, err := cw.aead.Encrypt(chunk, ad)
	if err != nil {
		return fmt.Errorf("encrypting chunk: %w", err)
	}

	// Write ciphertext length followed by ciphertext
	if err := binary.Write(cw.w, binary.BigEndian, uint32(len(encrypted))); err != nil { //nolint:gosec
		return fmt.Errorf("writing chunk size: %w", err)
	}

	if _, err := cw.w.Write(encrypted); err != nil {
		return fmt.Errorf("writing encrypted chunk: %w", err)
	}

	cw.buffer = cw.buffer[size:]
	cw.index++

	return nil
}

// buildChunkAssociatedData binds the envelope header and the chunk's
// position into its associated data, so chunks cannot be reordered or
// transplanted between files with different headers.
func buildChunkAssociatedData(header []byte, index uint64) []byte {
	const chunkIndexSize = 8

	ad := make([]byte, len(header)+chunkIndexSize)
	copy(ad, header)
	binary.BigEndian.PutUint64(ad[len(header):], index)

	return ad
}

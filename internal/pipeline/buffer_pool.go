package pipeline

import (
	"fmt"
	"io"
	"sync"
)

const copyBufferSize = 32 * 1024 // 32KB copy buffer

// bufferPool provides a pool of reusable byte slices for stream copies.
//
//nolint:gochecknoglobals
var bufferPool = sync.Pool{
	New: func() any {
		return make([]byte, copyBufferSize)
	},
}

// copyStream copies src to dst through a pooled buffer.
func copyStream(dst io.Writer, src io.Reader) error {
	buffer := bufferPool.Get().([]byte) //nolint:forcetypeassert
	defer bufferPool.Put(buffer)        //nolint:staticcheck

	if _, err := io.CopyBuffer(dst, src, buffer); err != nil {
		return fmt.Errorf("copying data: %w", err)
	}

	return nil
}

package static

import "sync"

// ChunkSize is the size of the buffer a file body is streamed through.
const ChunkSize = 16 << 10

var chunkPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, ChunkSize)
		return &buf
	},
}

func getChunk() *[]byte {
	return chunkPool.Get().(*[]byte)
}

func putChunk(buf *[]byte) {
	if cap(*buf) != ChunkSize {
		return
	}
	*buf = (*buf)[:ChunkSize]
	chunkPool.Put(buf)
}

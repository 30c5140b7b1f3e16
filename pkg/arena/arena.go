// Package arena provides a bump allocator with bulk release. The codec uses
// it for owned decode output: every allocation made while decoding a value
// lives until the caller resets or discards the arena, so decoded values can
// borrow from arena memory without tracking individual lifetimes.
//
// An Arena is not safe for concurrent use. Give each in-flight decode its own
// arena, or serialize access externally.
package arena

import "unsafe"

// DefaultChunkSize is the allocation chunk used by New.
const DefaultChunkSize = 64 * 1024

// Arena hands out byte regions from large chunks and frees them all at once.
type Arena struct {
	chunks    [][]byte
	cur       []byte
	off       int
	chunkSize int

	allocated int
}

// New creates an arena that grows in chunks of chunkSize bytes. A chunkSize
// of zero or less selects DefaultChunkSize.
func New(chunkSize int) *Arena {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Arena{chunkSize: chunkSize}
}

// Alloc returns a zeroed region of n bytes owned by the arena. Requests
// larger than the chunk size get a dedicated chunk.
func (a *Arena) Alloc(n int) []byte {
	if n == 0 {
		return nil
	}
	a.allocated += n
	if n > a.chunkSize {
		chunk := make([]byte, n)
		a.chunks = append(a.chunks, chunk)
		return chunk
	}
	if a.cur == nil || a.off+n > len(a.cur) {
		a.cur = make([]byte, a.chunkSize)
		a.chunks = append(a.chunks, a.cur)
		a.off = 0
	}
	region := a.cur[a.off : a.off+n : a.off+n]
	a.off += n
	return region
}

// Copy allocates a region and copies b into it.
func (a *Arena) Copy(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	region := a.Alloc(len(b))
	copy(region, b)
	return region
}

// NewString copies b into the arena and returns it as a string without an
// extra allocation. The string is valid until the arena is reset.
func (a *Arena) NewString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	region := a.Copy(b)
	return unsafe.String(unsafe.SliceData(region), len(region))
}

// Allocated returns the total bytes handed out since the last Reset.
func (a *Arena) Allocated() int {
	return a.allocated
}

// Reset releases everything the arena owns. Values previously allocated from
// the arena must not be used afterwards. The first chunk is kept for reuse.
func (a *Arena) Reset() {
	if len(a.chunks) > 0 {
		a.cur = a.chunks[0]
		clear(a.cur)
		a.chunks = a.chunks[:1]
	}
	a.off = 0
	a.allocated = 0
}

package pool

import "sync"

// Default sizes for the envelope pools. Device configurations are small, so
// buffers beyond the thresholds are dropped rather than retained.
const (
	FrameBufferDefaultSize  = 1024      // 1KiB
	FrameBufferMaxThreshold = 1024 * 64 // 64KiB
	TextBufferDefaultSize   = 2048      // 2KiB
	TextBufferMaxThreshold  = 1024 * 80 // 80KiB
)

// ByteBuffer is an append-only byte slice wrapper that can be recycled through a ByteBufferPool.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates an empty ByteBuffer with the given capacity.
func NewByteBuffer(capacity int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, capacity)}
}

// Bytes returns the written bytes. The slice aliases the buffer.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer but keeps its memory.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the number of written bytes.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the underlying slice.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// MustWrite appends data, growing the buffer if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// WriteString appends s.
func (bb *ByteBuffer) WriteString(s string) {
	bb.B = append(bb.B, s...)
}

// WriteZeros appends n zero bytes.
func (bb *ByteBuffer) WriteZeros(n int) {
	for range n {
		bb.B = append(bb.B, 0)
	}
}

// Grow ensures room for n more bytes without another allocation.
//
// Small buffers grow by at least the frame default size; larger ones by a quarter
// of their capacity.
func (bb *ByteBuffer) Grow(n int) {
	if cap(bb.B)-len(bb.B) >= n {
		return
	}

	growBy := FrameBufferDefaultSize
	if cap(bb.B) > 4*FrameBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < n {
		growBy = n
	}

	grown := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(grown, bb.B)
	bb.B = grown
}

// Extend lengthens the buffer by n bytes, growing it if needed, and returns the
// new n-byte tail for the caller to fill in place.
func (bb *ByteBuffer) Extend(n int) []byte {
	bb.Grow(n)
	start := len(bb.B)
	bb.B = bb.B[:start+n]

	return bb.B[start:]
}

// ByteBufferPool recycles ByteBuffers through a sync.Pool. Buffers whose capacity
// exceeds maxThreshold are discarded on Put.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool whose new buffers start with defaultSize capacity.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get returns an empty buffer.
func (p *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)
	return bb
}

// Put resets bb and returns it to the pool.
func (p *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if p.maxThreshold > 0 && cap(bb.B) > p.maxThreshold {
		return
	}

	bb.Reset()
	p.pool.Put(bb)
}

var (
	framePool = NewByteBufferPool(FrameBufferDefaultSize, FrameBufferMaxThreshold)
	textPool  = NewByteBufferPool(TextBufferDefaultSize, TextBufferMaxThreshold)
)

// GetFrameBuffer returns a buffer for assembling binary envelope frames.
func GetFrameBuffer() *ByteBuffer {
	return framePool.Get()
}

// PutFrameBuffer returns a frame buffer to its pool.
func PutFrameBuffer(bb *ByteBuffer) {
	framePool.Put(bb)
}

// GetTextBuffer returns a buffer for assembling envelope text.
func GetTextBuffer() *ByteBuffer {
	return textPool.Get()
}

// PutTextBuffer returns a text buffer to its pool.
func PutTextBuffer(bb *ByteBuffer) {
	textPool.Put(bb)
}

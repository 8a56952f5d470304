package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(128)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, 128, bb.Cap())
}

func TestByteBuffer_Writes(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.WriteString("3Z85")
	bb.MustWrite([]byte{0x01, 0x02})
	bb.WriteZeros(2)

	assert.Equal(t, []byte{'3', 'Z', '8', '5', 0x01, 0x02, 0x00, 0x00}, bb.Bytes())
	assert.Equal(t, 8, bb.Len())
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(64)
	bb.WriteString("some data")
	capBefore := bb.Cap()

	bb.Reset()

	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, capBefore, bb.Cap())
}

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("sufficient capacity", func(t *testing.T) {
		bb := NewByteBuffer(64)
		bb.Grow(32)
		assert.Equal(t, 64, bb.Cap())
	})

	t.Run("small buffer grows by default size", func(t *testing.T) {
		bb := NewByteBuffer(8)
		bb.WriteString("abcd")
		bb.Grow(16)
		assert.Equal(t, 4+FrameBufferDefaultSize, bb.Cap())
		assert.Equal(t, []byte("abcd"), bb.Bytes())
	})

	t.Run("large request", func(t *testing.T) {
		bb := NewByteBuffer(8)
		bb.Grow(FrameBufferDefaultSize * 3)
		assert.GreaterOrEqual(t, bb.Cap(), FrameBufferDefaultSize*3)
	})

	t.Run("large buffer grows by a quarter", func(t *testing.T) {
		bb := NewByteBuffer(8 * FrameBufferDefaultSize)
		bb.Extend(8 * FrameBufferDefaultSize)
		bb.Grow(1)
		assert.Equal(t, 10*FrameBufferDefaultSize, bb.Cap())
	})
}

func TestByteBuffer_Extend(t *testing.T) {
	bb := NewByteBuffer(2)
	bb.WriteString("ab")

	tail := bb.Extend(3)
	require.Len(t, tail, 3)
	copy(tail, "cde")

	assert.Equal(t, "abcde", string(bb.Bytes()))
}

func TestByteBufferPool(t *testing.T) {
	p := NewByteBufferPool(32, 64)

	bb := p.Get()
	require.NotNil(t, bb)
	bb.WriteString("payload")
	p.Put(bb)

	again := p.Get()
	assert.Equal(t, 0, again.Len(), "pooled buffers are handed out empty")

	p.Put(nil)
}

func TestByteBufferPool_DropsOversized(t *testing.T) {
	p := NewByteBufferPool(16, 32)

	bb := p.Get()
	bb.Extend(128)
	p.Put(bb)

	fresh := p.Get()
	assert.Equal(t, 0, fresh.Len())
	assert.LessOrEqual(t, fresh.Cap(), 32)
}

func TestDefaultPools_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			frame := GetFrameBuffer()
			defer PutFrameBuffer(frame)
			text := GetTextBuffer()
			defer PutTextBuffer(text)

			frame.WriteZeros(n)
			text.WriteString("3Z85")
			assert.Equal(t, n, frame.Len())
			assert.Equal(t, 4, text.Len())
		}(i)
	}
	wg.Wait()
}

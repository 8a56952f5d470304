package compress

import (
	"errors"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/thermofleet/thermowire/format"
)

// lz4CompressorPool pools lz4.Compressor instances, whose hash tables are
// expensive to zero for every call.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor provides LZ4 block compression.
//
// Blocks carry no length header; envelope frames record the raw length
// next to the compressed bytes.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Type returns format.CompressionLZ4.
func (c LZ4Compressor) Type() format.CompressionType {
	return format.CompressionLZ4
}

// Compress compresses the input data as a single LZ4 block.
//
// Returns:
//   - []byte: Compressed data (nil if input is empty)
//   - error: Compression error if any
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// Decompress decompresses a single LZ4 block.
//
// The block does not record its decoded size, so decoding starts with a buffer
// four times the input and doubles it on ErrInvalidSourceShortBuffer, up to
// MaxDecompressedSize.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	for bufSize := len(data) * 4; ; bufSize *= 2 {
		bufSize = min(bufSize, MaxDecompressedSize)
		buf := make([]byte, bufSize)

		n, err := lz4.UncompressBlock(data, buf)
		if err == nil {
			return buf[:n], nil
		}
		if !errors.Is(err, lz4.ErrInvalidSourceShortBuffer) || bufSize == MaxDecompressedSize {
			return nil, err
		}
	}
}

// DecompressSize decompresses a single LZ4 block whose decoded size is known,
// as it is inside an envelope frame.
func (c LZ4Compressor) DecompressSize(data []byte, size int) ([]byte, error) {
	if size == 0 {
		return nil, nil
	}
	if size < 0 || size > MaxDecompressedSize {
		return nil, errors.New("lz4 decompression failed: invalid decoded size")
	}

	buf := make([]byte, size)
	n, err := lz4.UncompressBlock(data, buf)
	if err != nil {
		return nil, err
	}

	return buf[:n], nil
}

package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"

	"github.com/thermofleet/thermowire/format"
)

// S2Compressor provides S2 block compression, a faster Snappy extension.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Type returns format.CompressionS2.
func (c S2Compressor) Type() format.CompressionType {
	return format.CompressionS2
}

// Compress compresses the input data using S2 compression.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decompresses S2 block data. The decoded length is read from the
// block header and checked against MaxDecompressedSize first.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}
	if n > MaxDecompressedSize {
		return nil, fmt.Errorf("s2 decompression failed: decoded length %d exceeds limit", n)
	}

	return s2.Decode(nil, data)
}

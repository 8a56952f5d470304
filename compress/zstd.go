package compress

import "github.com/thermofleet/thermowire/format"

// ZstdCompressor provides Zstandard compression.
//
// It gives the best ratio of the built-in codecs and suits configurations with
// many schedule entries, whose repeated tables compress well.
//
// The pure Go implementation from klauspost/compress is used by default.
// Building with the gozstd tag (and cgo) switches to the valyala/gozstd
// bindings; both produce standard zstd frames.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor.
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

// Type returns format.CompressionZstd.
func (c ZstdCompressor) Type() format.CompressionType {
	return format.CompressionZstd
}

package compress

import (
	"fmt"

	"github.com/thermofleet/thermowire/format"
)

// MaxDecompressedSize bounds the output of codecs that cannot learn the
// original size from their input. Device configurations are far smaller.
const MaxDecompressedSize = 16 * 1024 * 1024

// Compressor compresses a finished configuration buffer before it is text encoded.
type Compressor interface {
	// Compress returns the compressed form of data.
	//
	// The input slice is not modified. Implementations other than NoOpCompressor
	// return a newly allocated slice owned by the caller.
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor of the same type.
//
// Thread Safety: all built-in decompressors are safe for concurrent use.
type Decompressor interface {
	// Decompress returns the original bytes, or an error if data is corrupt or
	// was produced by a different algorithm.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions and reports which frame type it produces.
type Codec interface {
	Compressor
	Decompressor

	// Type returns the identifier written into envelope frames.
	Type() format.CompressionType
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves the built-in Codec for compressionType.
//
// Returns:
//   - Codec: shared codec instance, safe for concurrent use
//   - error: unsupported compression type
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}

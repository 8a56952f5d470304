// Package compress provides the codecs behind compressed envelope frames.
//
// A finished configuration buffer is usually sent as plain Z85 text. Large
// schedules can instead be compressed first; the envelope then records the
// codec in its frame header so the device knows how to inflate it.
//
// # Architecture
//
// Every codec implements Codec:
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	    Type() format.CompressionType
//	}
//
// GetCodec returns a shared, concurrency-safe instance per format.CompressionType.
//
// # Supported Algorithms
//
//   - None (format.CompressionNone): data passes through unchanged.
//   - Zstd (format.CompressionZstd): best ratio. Pure Go (klauspost/compress)
//     by default; build with -tags gozstd and cgo enabled to use valyala/gozstd.
//   - S2 (format.CompressionS2): fast block format with the decoded length in
//     its header.
//   - LZ4 (format.CompressionLZ4): single LZ4 block. The block carries no
//     length, so DecompressSize is preferred when the size is known.
//
// Repeated Setting tables compress well: a week of identical Scheduled entries
// typically shrinks by half with Zstd, while a single Hold entry is too small
// to gain anything and is best sent uncompressed.
//
// # Example
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	compressed, err := codec.Compress(buf)
//
// # Thread Safety
//
// All codecs are stateless values backed by sync.Pool caches and may be shared
// across goroutines.
package compress

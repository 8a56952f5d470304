// Package envelope turns a finished configuration buffer into the text string
// sent to a thermostat.
//
// Device functions accept a single string argument, so the binary buffer is
// written as Z85 text (the ZeroMQ base-85 alphabet, four bytes to five
// characters) behind a four character magic that names the format version:
//
//	3Z85<z85 of the buffer>
//
// Buffers are zero-padded to a multiple of four bytes. A finished FlatBuffers
// buffer is already a multiple of four long, so in practice nothing is added.
//
// With WithCompression or WithFraming the buffer is first wrapped in a frame:
//
//	3C85<z85 of frame>
//
//	frame: type u8 | 0 0 0 | raw length u32 | data length u32 | data | zero padding
//
// Lengths are little-endian. The type byte is a format.CompressionType.
//
// There is deliberately no decoder here; only firmware reads envelopes.
package envelope

// Package endian provides the byte order engines used by the thermowire encoders.
//
// The firmware wire format is little-endian throughout, so flatbuf.ByteBuffer is
// always driven by GetLittleEndianEngine. The Z85 text envelope reads its input
// as big-endian 32-bit words and uses GetBigEndianEngine.
//
//	engine := endian.GetLittleEndianEngine()
//	engine.PutUint32(buf[off:], v)
//	buf = engine.AppendUint16(buf, 0x1234)
//
// All functions in this package are safe for concurrent use. The returned
// engines are immutable and stateless.
package endian

import "encoding/binary"

// EndianEngine combines binary.ByteOrder and binary.AppendByteOrder so one value
// can serve both fixed-offset writes and append-style encoding.
//
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine used for the wire format.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// IsLittleEndian reports whether engine writes the least significant byte first.
func IsLittleEndian(engine EndianEngine) bool {
	var b [2]byte
	engine.PutUint16(b[:], 0x0102)

	return b[0] == 0x02
}

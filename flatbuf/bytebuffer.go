package flatbuf

import (
	"math"

	"github.com/thermofleet/thermowire/endian"
)

// Sizes of the wire scalar types in bytes.
const (
	SizeByte   = 1
	SizeInt16  = 2
	SizeInt32  = 4
	SizeInt64  = 8
	SizeOffset = SizeInt32

	// FileIdentifierLength is the length of an optional file identifier.
	FileIdentifierLength = 4
	// SizePrefixLength is the length of the optional size prefix.
	SizePrefixLength = SizeInt32
)

// ByteBuffer is a fixed-capacity byte array with little-endian typed accessors
// and a read/write position.
//
// Offsets passed to the accessors are absolute indexes into Bytes. They are not
// bounds-checked beyond Go's own slice indexing, so an out-of-range offset panics.
type ByteBuffer struct {
	bytes    []byte
	position int
	engine   endian.EndianEngine
}

// NewByteBuffer wraps b without copying it.
func NewByteBuffer(b []byte) *ByteBuffer {
	return &ByteBuffer{
		bytes:  b,
		engine: endian.GetLittleEndianEngine(),
	}
}

// AllocateByteBuffer creates a zero-filled ByteBuffer of the given capacity.
func AllocateByteBuffer(capacity int) *ByteBuffer {
	return NewByteBuffer(make([]byte, capacity))
}

// Reset rewinds the position to zero. The contents are left untouched.
func (bb *ByteBuffer) Reset() {
	bb.position = 0
}

// Bytes returns the whole underlying array.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.bytes
}

// Capacity returns the size of the underlying array.
func (bb *ByteBuffer) Capacity() int {
	return len(bb.bytes)
}

// Position returns the current position.
func (bb *ByteBuffer) Position() int {
	return bb.position
}

// SetPosition moves the position.
func (bb *ByteBuffer) SetPosition(position int) {
	bb.position = position
}

func (bb *ByteBuffer) ReadInt8(offset int) int8 {
	return int8(bb.bytes[offset]) //nolint:gosec
}

func (bb *ByteBuffer) ReadUint8(offset int) uint8 {
	return bb.bytes[offset]
}

func (bb *ByteBuffer) ReadBool(offset int) bool {
	return bb.bytes[offset] != 0
}

func (bb *ByteBuffer) ReadInt16(offset int) int16 {
	return int16(bb.engine.Uint16(bb.bytes[offset:])) //nolint:gosec
}

func (bb *ByteBuffer) ReadUint16(offset int) uint16 {
	return bb.engine.Uint16(bb.bytes[offset:])
}

func (bb *ByteBuffer) ReadInt32(offset int) int32 {
	return int32(bb.engine.Uint32(bb.bytes[offset:])) //nolint:gosec
}

func (bb *ByteBuffer) ReadUint32(offset int) uint32 {
	return bb.engine.Uint32(bb.bytes[offset:])
}

// ReadInt64 reads a 64-bit value as a Long, low word first.
func (bb *ByteBuffer) ReadInt64(offset int) Long {
	return NewLong(bb.ReadUint32(offset), bb.ReadUint32(offset+SizeInt32))
}

// ReadUint64 is ReadInt64; the two words carry no sign of their own.
func (bb *ByteBuffer) ReadUint64(offset int) Long {
	return bb.ReadInt64(offset)
}

// ReadFloat32 reinterprets 4 bytes as an IEEE-754 single.
func (bb *ByteBuffer) ReadFloat32(offset int) float32 {
	return math.Float32frombits(bb.ReadUint32(offset))
}

// ReadFloat64 reinterprets 8 bytes as an IEEE-754 double.
func (bb *ByteBuffer) ReadFloat64(offset int) float64 {
	return math.Float64frombits(bb.engine.Uint64(bb.bytes[offset:]))
}

func (bb *ByteBuffer) WriteInt8(offset int, value int8) {
	bb.bytes[offset] = byte(value)
}

func (bb *ByteBuffer) WriteUint8(offset int, value uint8) {
	bb.bytes[offset] = value
}

func (bb *ByteBuffer) WriteBool(offset int, value bool) {
	if value {
		bb.bytes[offset] = 1
	} else {
		bb.bytes[offset] = 0
	}
}

func (bb *ByteBuffer) WriteInt16(offset int, value int16) {
	bb.engine.PutUint16(bb.bytes[offset:], uint16(value)) //nolint:gosec
}

func (bb *ByteBuffer) WriteUint16(offset int, value uint16) {
	bb.engine.PutUint16(bb.bytes[offset:], value)
}

func (bb *ByteBuffer) WriteInt32(offset int, value int32) {
	bb.engine.PutUint32(bb.bytes[offset:], uint32(value)) //nolint:gosec
}

func (bb *ByteBuffer) WriteUint32(offset int, value uint32) {
	bb.engine.PutUint32(bb.bytes[offset:], value)
}

// WriteInt64 writes the low word at offset and the high word right after it.
func (bb *ByteBuffer) WriteInt64(offset int, value Long) {
	bb.WriteUint32(offset, value.Low())
	bb.WriteUint32(offset+SizeInt32, value.High())
}

// WriteUint64 is WriteInt64.
func (bb *ByteBuffer) WriteUint64(offset int, value Long) {
	bb.WriteInt64(offset, value)
}

func (bb *ByteBuffer) WriteFloat32(offset int, value float32) {
	bb.WriteUint32(offset, math.Float32bits(value))
}

func (bb *ByteBuffer) WriteFloat64(offset int, value float64) {
	bb.engine.PutUint64(bb.bytes[offset:], math.Float64bits(value))
}

// Offset looks up a field in the vtable of the table at tablePos.
//
// vtableFieldOffset is the byte offset of the field entry inside the vtable,
// i.e. 4 + 2*slot. The vtable lives at tablePos - ReadInt32(tablePos). The result
// is the field's offset relative to tablePos, or 0 when the field was omitted or
// lies beyond the vtable's declared length. A zero result means the reader must
// use the field's default value.
func (bb *ByteBuffer) Offset(tablePos, vtableFieldOffset int) int {
	vtable := tablePos - int(bb.ReadInt32(tablePos))
	if vtableFieldOffset < int(bb.ReadInt16(vtable)) {
		return int(bb.ReadInt16(vtable + vtableFieldOffset))
	}

	return 0
}

// Indirect follows the relative offset stored at offset.
func (bb *ByteBuffer) Indirect(offset int) int {
	return offset + int(bb.ReadInt32(offset))
}

// Vector returns the position of the first element of the vector referenced at offset.
func (bb *ByteBuffer) Vector(offset int) int {
	return bb.Indirect(offset) + SizeInt32
}

// VectorLen returns the element count of the vector referenced at offset.
func (bb *ByteBuffer) VectorLen(offset int) int {
	return int(bb.ReadInt32(bb.Indirect(offset)))
}

// String returns the string referenced at offset.
func (bb *ByteBuffer) String(offset int) string {
	start := bb.Indirect(offset)
	n := int(bb.ReadInt32(start))
	start += SizeInt32

	return string(bb.bytes[start : start+n])
}

// FieldPos resolves slot of the table at tablePos to an absolute position.
// ok is false when the field is absent.
func (bb *ByteBuffer) FieldPos(tablePos, slot int) (pos int, ok bool) {
	off := bb.Offset(tablePos, VtableFieldOffset(slot))
	if off == 0 {
		return 0, false
	}

	return tablePos + off, true
}

// HasIdentifier reports whether the finished buffer starting at Position carries ident.
func (bb *ByteBuffer) HasIdentifier(ident string) bool {
	if len(ident) != FileIdentifierLength {
		return false
	}
	start := bb.position + SizeOffset
	if start+FileIdentifierLength > len(bb.bytes) {
		return false
	}

	return string(bb.bytes[start:start+FileIdentifierLength]) == ident
}

// RootTable returns the absolute position of the root table of a finished buffer
// starting at Position.
func (bb *ByteBuffer) RootTable() int {
	return bb.position + int(bb.ReadInt32(bb.position))
}

// VtableFieldOffset converts a field slot index to its byte offset inside a vtable.
func VtableFieldOffset(slot int) int {
	return (slot + vtableMetadataFields) * SizeInt16
}

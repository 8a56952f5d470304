// Package flatbuf implements the FlatBuffers binary table encoding used by the
// thermostat firmware configuration protocol.
//
// The package is write-oriented: Builder produces buffers, and ByteBuffer offers
// the little-endian accessors and the vtable lookup (ByteBuffer.Offset) that a
// decoder uses to read them back.
//
// # Layout
//
// A Builder fills its buffer from the end toward the start. Every reference is
// stored as a signed 32-bit distance from the reference's own location, so the
// finished bytes can be relocated freely. A table begins with a reference to its
// vtable; the vtable lists, per field slot, where the field lives inside the
// table, or 0 when the field is absent and the reader must use its default.
// Tables that populate the same fields at the same positions share one vtable.
//
// # Usage
//
//	b, _ := flatbuf.NewBuilder(256)
//	name, _ := b.CreateString("kitchen")
//	_ = b.StartObject(2)
//	b.AddFieldUint16(0, 50, 0)
//	b.AddFieldOffset(1, name, 0)
//	root, _ := b.EndObject()
//	_ = b.Finish(root)
//	data, _ := b.FinishedBytes()
//
// Scalars equal to their default are omitted unless WithForceDefaults is set, so
// encoder and decoder must agree on every default value.
//
// # 64-bit values
//
// Long carries 64-bit integers as a pair of 32-bit words, low word first, the
// way 32-bit firmware reads them.
package flatbuf

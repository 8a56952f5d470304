package flatbuf

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/thermofleet/thermowire/internal/options"
)

const (
	// DefaultInitialSize is the capacity used when NewBuilder is given a non-positive size.
	DefaultInitialSize = 1024
	// MaxBufferSize is the largest buffer whose offsets fit in a signed 32-bit integer.
	MaxBufferSize = math.MaxInt32

	// vtableMetadataFields counts the vtable length and object size entries
	// that precede the field entries.
	vtableMetadataFields = 2
)

// Offset is the distance in bytes from the end of the buffer to an object,
// vector or string that has already been written. Offsets stay valid when the
// buffer grows, because growth keeps the written bytes at the back.
type Offset uint32

type builderConfig struct {
	forceDefaults bool
	maxSize       int
}

// BuilderOption configures a Builder.
type BuilderOption = options.Option[*builderConfig]

// WithForceDefaults makes the Add*Field scalar methods write values even when
// they equal the field default. Offset fields are never forced.
func WithForceDefaults(force bool) BuilderOption {
	return options.NoError(func(c *builderConfig) {
		c.forceDefaults = force
	})
}

// WithMaxSize caps the buffer capacity. Growth past it fails with ErrBufferOverflow.
func WithMaxSize(size int) BuilderOption {
	return options.New(func(c *builderConfig) error {
		if size <= 0 || size > MaxBufferSize {
			return fmt.Errorf("invalid max buffer size %d, must be in (0, %d]", size, MaxBufferSize)
		}
		c.maxSize = size

		return nil
	})
}

// Builder constructs a FlatBuffers-compatible buffer back to front.
//
// A Builder belongs to one encoding session and is not safe for concurrent use.
// Only one object or vector may be open at a time.
//
// Lifecycle methods (StartObject, EndObject, StartVector, EndVector, Create*,
// Finish*) return errors. Scalar and field writes do not: their failures are
// recorded and returned by the next lifecycle call and by Err. After the first
// failure every further write is a no-op.
type Builder struct {
	bb    *ByteBuffer
	space int

	minalign int

	vtable      []int
	vtableInUse int
	vtables     []int

	nested      bool
	objectStart int

	vectorOpen     bool
	vectorNumElems int

	sharedStrings map[string]Offset

	forceDefaults bool
	maxSize       int
	finished      bool
	err           error
}

// NewBuilder creates a Builder with the given initial capacity guess.
func NewBuilder(initialSize int, opts ...BuilderOption) (*Builder, error) {
	cfg := &builderConfig{maxSize: MaxBufferSize}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if initialSize <= 0 {
		initialSize = DefaultInitialSize
	}
	if initialSize > cfg.maxSize {
		initialSize = cfg.maxSize
	}

	return &Builder{
		bb:            AllocateByteBuffer(initialSize),
		space:         initialSize,
		minalign:      1,
		forceDefaults: cfg.forceDefaults,
		maxSize:       cfg.maxSize,
	}, nil
}

// Reset prepares the Builder for a new buffer, keeping its allocated memory.
// Options given to NewBuilder stay in effect.
func (b *Builder) Reset() {
	b.bb.Reset()
	b.space = b.bb.Capacity()
	b.minalign = 1
	b.vtable = b.vtable[:0]
	b.vtableInUse = 0
	b.vtables = b.vtables[:0]
	b.nested = false
	b.objectStart = 0
	b.vectorOpen = false
	b.vectorNumElems = 0
	b.sharedStrings = nil
	b.finished = false
	b.err = nil
}

// Err returns the first error recorded by the Builder.
func (b *Builder) Err() error {
	return b.err
}

// Offset returns the number of bytes written so far.
func (b *Builder) Offset() Offset {
	return Offset(b.offset()) //nolint:gosec
}

// MinAlign returns the largest alignment requested so far.
func (b *Builder) MinAlign() int {
	return b.minalign
}

// ByteBuffer returns the underlying buffer. After Finish, its Position marks the
// start of the finished data.
func (b *Builder) ByteBuffer() *ByteBuffer {
	return b.bb
}

// FinishedBytes returns the finished buffer: Bytes()[Position() : Position()+Offset()].
// The slice aliases the Builder's memory.
func (b *Builder) FinishedBytes() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	if !b.finished {
		return nil, ErrNotFinished
	}

	start := b.bb.Position()

	return b.bb.bytes[start : start+b.offset()], nil
}

func (b *Builder) offset() int {
	return b.bb.Capacity() - b.space
}

func (b *Builder) fail(err error) error {
	if b.err == nil {
		b.err = err
	}

	return b.err
}

// Prep pads the buffer so that a value of size bytes, followed by additionalBytes
// more bytes, ends up aligned to size. size must be a power of two.
func (b *Builder) Prep(size, additionalBytes int) {
	b.prep(size, additionalBytes)
}

func (b *Builder) prep(size, additionalBytes int) bool {
	if b.err != nil {
		return false
	}
	if b.finished {
		b.fail(ErrFinished)
		return false
	}

	if size > b.minalign {
		b.minalign = size
	}

	alignSize := (^(b.bb.Capacity() - b.space + additionalBytes) + 1) & (size - 1)

	for b.space < alignSize+size+additionalBytes {
		oldSize := b.bb.Capacity()
		if err := b.grow(); err != nil {
			b.fail(err)
			return false
		}
		b.space += b.bb.Capacity() - oldSize
	}

	b.pad(alignSize)

	return true
}

// grow doubles the capacity and moves the written bytes to the back of the new array.
func (b *Builder) grow() error {
	oldSize := b.bb.Capacity()
	if oldSize >= b.maxSize {
		return fmt.Errorf("%w: capacity %d, max %d", ErrBufferOverflow, oldSize, b.maxSize)
	}

	newSize := oldSize << 1
	if newSize == 0 {
		newSize = 1
	}
	if newSize > b.maxSize {
		newSize = b.maxSize
	}

	grown := AllocateByteBuffer(newSize)
	copy(grown.bytes[newSize-oldSize:], b.bb.bytes)
	grown.SetPosition(newSize - oldSize)
	b.bb = grown

	return nil
}

func (b *Builder) pad(n int) {
	for range n {
		b.space--
		b.bb.WriteUint8(b.space, 0)
	}
}

func (b *Builder) AddBool(v bool) {
	if b.prep(SizeByte, 0) {
		b.space -= SizeByte
		b.bb.WriteBool(b.space, v)
	}
}

func (b *Builder) AddInt8(v int8) {
	if b.prep(SizeByte, 0) {
		b.space -= SizeByte
		b.bb.WriteInt8(b.space, v)
	}
}

func (b *Builder) AddUint8(v uint8) {
	if b.prep(SizeByte, 0) {
		b.space -= SizeByte
		b.bb.WriteUint8(b.space, v)
	}
}

func (b *Builder) AddInt16(v int16) {
	if b.prep(SizeInt16, 0) {
		b.space -= SizeInt16
		b.bb.WriteInt16(b.space, v)
	}
}

func (b *Builder) AddUint16(v uint16) {
	if b.prep(SizeInt16, 0) {
		b.space -= SizeInt16
		b.bb.WriteUint16(b.space, v)
	}
}

func (b *Builder) AddInt32(v int32) {
	if b.prep(SizeInt32, 0) {
		b.space -= SizeInt32
		b.bb.WriteInt32(b.space, v)
	}
}

func (b *Builder) AddUint32(v uint32) {
	if b.prep(SizeInt32, 0) {
		b.space -= SizeInt32
		b.bb.WriteUint32(b.space, v)
	}
}

func (b *Builder) AddInt64(v Long) {
	if b.prep(SizeInt64, 0) {
		b.space -= SizeInt64
		b.bb.WriteInt64(b.space, v)
	}
}

func (b *Builder) AddUint64(v Long) {
	b.AddInt64(v)
}

func (b *Builder) AddFloat32(v float32) {
	if b.prep(SizeInt32, 0) {
		b.space -= SizeInt32
		b.bb.WriteFloat32(b.space, v)
	}
}

func (b *Builder) AddFloat64(v float64) {
	if b.prep(SizeInt64, 0) {
		b.space -= SizeInt64
		b.bb.WriteFloat64(b.space, v)
	}
}

// AddOffset writes off as a signed distance from the storage location itself:
// Offset() - off + 4, after aligning to 4 bytes.
func (b *Builder) AddOffset(off Offset) {
	if !b.prep(SizeOffset, 0) {
		return
	}
	if int(off) > b.offset() {
		b.fail(fmt.Errorf("%w: %d > %d", ErrInvalidOffset, off, b.offset()))
		return
	}

	rel := b.offset() - int(off) + SizeOffset
	b.space -= SizeOffset
	b.bb.WriteInt32(b.space, int32(rel)) //nolint:gosec
}

// wantField reports whether a field should be written, validating slot when it is.
func (b *Builder) wantField(slot int, differs bool) bool {
	if !differs && !b.forceDefaults {
		return false
	}

	return b.checkSlot(slot)
}

func (b *Builder) checkSlot(slot int) bool {
	if b.err != nil {
		return false
	}
	if !b.nested || b.vectorOpen {
		b.fail(ErrNotInObject)
		return false
	}
	if slot < 0 || slot >= b.vtableInUse {
		b.fail(fmt.Errorf("%w: slot %d, object has %d fields", ErrInvalidSlot, slot, b.vtableInUse))
		return false
	}

	return true
}

// slot records that the field in slot starts at the current offset.
func (b *Builder) slot(slot int) {
	if b.err == nil {
		b.vtable[slot] = b.offset()
	}
}

func (b *Builder) AddFieldBool(slot int, value, defaultValue bool) {
	if b.wantField(slot, value != defaultValue) {
		b.AddBool(value)
		b.slot(slot)
	}
}

func (b *Builder) AddFieldInt8(slot int, value, defaultValue int8) {
	if b.wantField(slot, value != defaultValue) {
		b.AddInt8(value)
		b.slot(slot)
	}
}

func (b *Builder) AddFieldUint8(slot int, value, defaultValue uint8) {
	if b.wantField(slot, value != defaultValue) {
		b.AddUint8(value)
		b.slot(slot)
	}
}

func (b *Builder) AddFieldInt16(slot int, value, defaultValue int16) {
	if b.wantField(slot, value != defaultValue) {
		b.AddInt16(value)
		b.slot(slot)
	}
}

func (b *Builder) AddFieldUint16(slot int, value, defaultValue uint16) {
	if b.wantField(slot, value != defaultValue) {
		b.AddUint16(value)
		b.slot(slot)
	}
}

func (b *Builder) AddFieldInt32(slot int, value, defaultValue int32) {
	if b.wantField(slot, value != defaultValue) {
		b.AddInt32(value)
		b.slot(slot)
	}
}

func (b *Builder) AddFieldUint32(slot int, value, defaultValue uint32) {
	if b.wantField(slot, value != defaultValue) {
		b.AddUint32(value)
		b.slot(slot)
	}
}

func (b *Builder) AddFieldInt64(slot int, value, defaultValue Long) {
	if b.wantField(slot, !value.Equal(defaultValue)) {
		b.AddInt64(value)
		b.slot(slot)
	}
}

func (b *Builder) AddFieldUint64(slot int, value, defaultValue Long) {
	b.AddFieldInt64(slot, value, defaultValue)
}

func (b *Builder) AddFieldFloat32(slot int, value, defaultValue float32) {
	if b.wantField(slot, value != defaultValue) {
		b.AddFloat32(value)
		b.slot(slot)
	}
}

func (b *Builder) AddFieldFloat64(slot int, value, defaultValue float64) {
	if b.wantField(slot, value != defaultValue) {
		b.AddFloat64(value)
		b.slot(slot)
	}
}

// AddFieldOffset stores a reference to an already written object, vector or string.
func (b *Builder) AddFieldOffset(slot int, value, defaultValue Offset) {
	if value == defaultValue {
		return
	}
	if b.checkSlot(slot) {
		b.AddOffset(value)
		b.slot(slot)
	}
}

// AddFieldStruct records a struct that was just written inline. value must equal Offset().
func (b *Builder) AddFieldStruct(slot int, value, defaultValue Offset) {
	if value == defaultValue || !b.checkSlot(slot) {
		return
	}
	if int(value) != b.offset() {
		b.fail(ErrStructNotInline)
		return
	}
	b.slot(slot)
}

func (b *Builder) notNested() error {
	if b.err != nil {
		return b.err
	}
	if b.finished {
		return b.fail(ErrFinished)
	}
	if b.nested || b.vectorOpen {
		return b.fail(ErrNestedObject)
	}

	return nil
}

// StartObject begins a table with numFields field slots, all initially omitted.
func (b *Builder) StartObject(numFields int) error {
	if err := b.notNested(); err != nil {
		return err
	}
	if numFields < 0 {
		return b.fail(fmt.Errorf("%w: %d fields", ErrInvalidSlot, numFields))
	}

	if cap(b.vtable) < numFields {
		b.vtable = make([]int, numFields)
	} else {
		b.vtable = b.vtable[:numFields]
		clear(b.vtable)
	}
	b.vtableInUse = numFields
	b.nested = true
	b.objectStart = b.offset()

	return nil
}

// EndObject writes the table's vtable, or reuses an equivalent earlier one, and
// returns the table's offset.
//
// The vtable holds, in order: its own length in bytes, the object length in
// bytes, and one int16 per slot up to the last populated one. Each slot entry is
// the field's distance from the start of the table, or 0 if the field was omitted.
func (b *Builder) EndObject() (Offset, error) {
	if b.err != nil {
		return 0, b.err
	}
	if !b.nested {
		return 0, b.fail(ErrNotNested)
	}

	// Placeholder for the vtable reference, patched below.
	b.AddInt32(0)
	vtableloc := b.offset()

	i := b.vtableInUse - 1
	for ; i >= 0 && b.vtable[i] == 0; i-- {
	}
	trimmedSize := i + 1

	for ; i >= 0; i-- {
		off := 0
		if b.vtable[i] != 0 {
			off = vtableloc - b.vtable[i]
		}
		if off > math.MaxInt16 {
			return 0, b.fail(fmt.Errorf("%w: field %d at distance %d", ErrObjectTooLarge, i, off))
		}
		b.AddInt16(int16(off)) //nolint:gosec
	}

	objectSize := vtableloc - b.objectStart
	if objectSize > math.MaxInt16 {
		return 0, b.fail(fmt.Errorf("%w: object size %d", ErrObjectTooLarge, objectSize))
	}
	b.AddInt16(int16(objectSize)) //nolint:gosec

	vtableLen := (trimmedSize + vtableMetadataFields) * SizeInt16
	b.AddInt16(int16(vtableLen)) //nolint:gosec
	if b.err != nil {
		return 0, b.err
	}

	existing := b.findVtable(vtableLen)
	if existing != 0 {
		// Drop the vtable just written and point the table at the earlier copy.
		b.space = b.bb.Capacity() - vtableloc
		b.bb.WriteInt32(b.space, int32(existing-vtableloc)) //nolint:gosec
	} else {
		b.vtables = append(b.vtables, b.offset())
		b.bb.WriteInt32(b.bb.Capacity()-vtableloc, int32(b.offset()-vtableloc)) //nolint:gosec
	}

	b.nested = false

	return Offset(vtableloc), nil //nolint:gosec
}

// findVtable returns the offset of an emitted vtable with the same length and
// the same field entries as the one at the current write position, or 0 if
// there is none. The object size entry is not compared: it also counts the
// alignment padding in front of the first field, which varies with position.
func (b *Builder) findVtable(vtableLen int) int {
	buf := b.bb.bytes
	const fieldsStart = vtableMetadataFields * SizeInt16
	current := buf[b.space+fieldsStart : b.space+vtableLen]

	for _, vt := range b.vtables {
		start := b.bb.Capacity() - vt
		if int(b.bb.ReadInt16(start)) != vtableLen {
			continue
		}
		if bytes.Equal(current, buf[start+fieldsStart:start+vtableLen]) {
			return vt
		}
	}

	return 0
}

// RequiredField checks that the table at table has field set. field is the
// vtable byte offset of the field (see VtableFieldOffset).
func (b *Builder) RequiredField(table Offset, field int) error {
	tableStart := b.bb.Capacity() - int(table)
	vtableStart := tableStart - int(b.bb.ReadInt32(tableStart))

	ok := field < int(b.bb.ReadInt16(vtableStart)) && b.bb.ReadInt16(vtableStart+field) != 0
	if !ok {
		return fmt.Errorf("%w: vtable offset %d", ErrMissingField, field)
	}

	return nil
}

// StartVector begins a vector of numElems elements of elemSize bytes each.
// Elements are then added back to front, last element first.
func (b *Builder) StartVector(elemSize, numElems, alignment int) error {
	if err := b.notNested(); err != nil {
		return err
	}

	b.vectorNumElems = numElems
	b.vectorOpen = true
	b.prep(SizeInt32, elemSize*numElems)
	b.prep(alignment, elemSize*numElems)

	return b.err
}

// EndVector writes the element count and returns the vector's offset.
func (b *Builder) EndVector() (Offset, error) {
	if b.err != nil {
		return 0, b.err
	}
	if !b.vectorOpen {
		return 0, b.fail(ErrNotNested)
	}

	// StartVector already reserved and aligned room for the count.
	b.space -= SizeInt32
	b.bb.WriteInt32(b.space, int32(b.vectorNumElems)) //nolint:gosec
	b.vectorOpen = false

	return b.Offset(), nil
}

// CreateString writes s as a NUL-terminated UTF-8 byte vector. Invalid UTF-8
// sequences are replaced with U+FFFD.
func (b *Builder) CreateString(s string) (Offset, error) {
	if err := b.notNested(); err != nil {
		return 0, err
	}
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, string(utf8.RuneError))
	}

	b.AddUint8(0)
	if err := b.StartVector(SizeByte, len(s), SizeByte); err != nil {
		return 0, err
	}
	b.space -= len(s)
	copy(b.bb.bytes[b.space:], s)

	return b.EndVector()
}

// CreateSharedString is CreateString, but identical strings are written once.
func (b *Builder) CreateSharedString(s string) (Offset, error) {
	if off, ok := b.sharedStrings[s]; ok {
		return off, nil
	}

	off, err := b.CreateString(s)
	if err != nil {
		return 0, err
	}
	if b.sharedStrings == nil {
		b.sharedStrings = make(map[string]Offset)
	}
	b.sharedStrings[s] = off

	return off, nil
}

// CreateByteVector writes data as a byte vector.
func (b *Builder) CreateByteVector(data []byte) (Offset, error) {
	if err := b.StartVector(SizeByte, len(data), SizeByte); err != nil {
		return 0, err
	}
	b.space -= len(data)
	copy(b.bb.bytes[b.space:], data)

	return b.EndVector()
}

// CreateOffsetVector writes a vector of references in the given order.
func (b *Builder) CreateOffsetVector(offsets []Offset) (Offset, error) {
	if err := b.StartVector(SizeOffset, len(offsets), SizeOffset); err != nil {
		return 0, err
	}
	for i := len(offsets) - 1; i >= 0; i-- {
		b.AddOffset(offsets[i])
	}

	return b.EndVector()
}

// Finish aligns the buffer to MinAlign and writes the root table reference.
// The Builder accepts no further writes afterwards.
func (b *Builder) Finish(root Offset) error {
	return b.finish(root, "", false)
}

// FinishWithIdentifier is Finish with a 4-byte file identifier after the root reference.
func (b *Builder) FinishWithIdentifier(root Offset, identifier string) error {
	return b.finish(root, identifier, false)
}

// FinishSizePrefixed is Finish with the buffer length written in front of the root reference.
func (b *Builder) FinishSizePrefixed(root Offset) error {
	return b.finish(root, "", true)
}

func (b *Builder) finish(root Offset, identifier string, sizePrefix bool) error {
	if err := b.notNested(); err != nil {
		return err
	}

	prefix := 0
	if sizePrefix {
		prefix = SizePrefixLength
	}

	if identifier != "" {
		if len(identifier) != FileIdentifierLength {
			return b.fail(fmt.Errorf("%w: %q", ErrInvalidIdentifier, identifier))
		}
		b.prep(b.minalign, SizeOffset+FileIdentifierLength+prefix)
		for i := FileIdentifierLength - 1; i >= 0; i-- {
			b.AddUint8(identifier[i])
		}
	}

	b.prep(b.minalign, SizeOffset+prefix)
	b.AddOffset(root)
	if sizePrefix {
		b.AddInt32(int32(b.offset())) //nolint:gosec
	}
	if b.err != nil {
		return b.err
	}

	b.bb.SetPosition(b.space)
	b.finished = true

	return nil
}

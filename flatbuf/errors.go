package flatbuf

import "errors"

var (
	// ErrNestedObject is returned when an object or vector is started while another one is still open.
	ErrNestedObject = errors.New("flatbuf: object serialization must not be nested")
	// ErrNotNested is returned by EndObject/EndVector without a matching start.
	ErrNotNested = errors.New("flatbuf: end called without a matching start")
	// ErrNotInObject is returned when a field is added outside of StartObject/EndObject.
	ErrNotInObject = errors.New("flatbuf: field added outside of an object")
	// ErrInvalidSlot is returned when a field slot is outside the range declared by StartObject.
	ErrInvalidSlot = errors.New("flatbuf: field slot out of range")
	// ErrBufferOverflow is returned when the buffer would grow past the addressable offset range.
	ErrBufferOverflow = errors.New("flatbuf: cannot grow buffer beyond the maximum size")
	// ErrObjectTooLarge is returned when a table field lies beyond the reach of a 16-bit vtable entry.
	ErrObjectTooLarge = errors.New("flatbuf: object too large for vtable offsets")
	// ErrStructNotInline is returned when a struct field is not written immediately before its slot.
	ErrStructNotInline = errors.New("flatbuf: struct must be serialized inline")
	// ErrFinished is returned when the builder is used after Finish.
	ErrFinished = errors.New("flatbuf: builder already finished")
	// ErrNotFinished is returned when finished bytes are requested before Finish.
	ErrNotFinished = errors.New("flatbuf: builder not finished")
	// ErrInvalidIdentifier is returned for file identifiers that are not exactly 4 bytes.
	ErrInvalidIdentifier = errors.New("flatbuf: file identifier must be 4 bytes")
	// ErrMissingField is returned by RequiredField when the field is absent.
	ErrMissingField = errors.New("flatbuf: required field missing")
	// ErrInvalidOffset is returned when an offset refers to data not yet written.
	ErrInvalidOffset = errors.New("flatbuf: offset refers past the written region")
	// ErrLongOutOfRange is returned when a value cannot be represented as an unsigned 64-bit Long.
	ErrLongOutOfRange = errors.New("flatbuf: value out of range for Long")
)

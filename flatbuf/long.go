package flatbuf

import (
	"fmt"
	"math"
	"strconv"
)

// Long is a 64-bit integer stored as two 32-bit words: Low() + High()·2^32.
//
// The wire format writes the low word first, followed by the high word, which
// is the same byte sequence as a little-endian uint64.
type Long struct {
	low  uint32
	high uint32
}

// ZeroLong is the Long with both words zero. It is the default for 64-bit fields.
var ZeroLong = Long{}

// twoTo64 is 2^64 as a float64; it is exactly representable.
const twoTo64 = float64(1<<63) * 2

// NewLong creates a Long from its two words.
func NewLong(low, high uint32) Long {
	return Long{low: low, high: high}
}

// LongFromUint64 splits v into its low and high words.
func LongFromUint64(v uint64) Long {
	return Long{low: uint32(v & 0xFFFFFFFF), high: uint32(v >> 32)}
}

// LongFromInt64 converts a non-negative v. Negative values are rejected with ErrLongOutOfRange.
func LongFromInt64(v int64) (Long, error) {
	if v < 0 {
		return Long{}, fmt.Errorf("%w: %d is negative", ErrLongOutOfRange, v)
	}

	return LongFromUint64(uint64(v)), nil
}

// LongFromFloat64 converts a host numeric value such as a millisecond timestamp.
//
// v must be a whole number in [0, 2^64). NaN, infinities, negative and
// fractional values are rejected with ErrLongOutOfRange.
func LongFromFloat64(v float64) (Long, error) {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return Long{}, fmt.Errorf("%w: %v is not finite", ErrLongOutOfRange, v)
	case v < 0:
		return Long{}, fmt.Errorf("%w: %v is negative", ErrLongOutOfRange, v)
	case v >= twoTo64:
		return Long{}, fmt.Errorf("%w: %v exceeds 64 bits", ErrLongOutOfRange, v)
	case v != math.Trunc(v):
		return Long{}, fmt.Errorf("%w: %v is not an integer", ErrLongOutOfRange, v)
	}

	return LongFromUint64(uint64(v)), nil
}

// Low returns the low 32 bits.
func (l Long) Low() uint32 { return l.low }

// High returns the high 32 bits.
func (l Long) High() uint32 { return l.high }

// Uint64 returns the value as an unsigned 64-bit integer.
func (l Long) Uint64() uint64 {
	return uint64(l.high)<<32 | uint64(l.low)
}

// Int64 returns the value reinterpreted as a two's complement signed integer.
func (l Long) Int64() int64 {
	return int64(l.Uint64()) //nolint:gosec
}

// IsZero reports whether both words are zero.
func (l Long) IsZero() bool {
	return l.low == 0 && l.high == 0
}

// Equal reports whether l and other hold the same words.
func (l Long) Equal(other Long) bool {
	return l == other
}

// String returns the unsigned decimal representation.
func (l Long) String() string {
	return strconv.FormatUint(l.Uint64(), 10)
}

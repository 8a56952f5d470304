package envelope

import "errors"

var (
	// ErrUnalignedInput is returned by EncodeZ85 for input that is not a multiple of 4 bytes.
	ErrUnalignedInput = errors.New("envelope: z85 input length must be a multiple of 4")
	// ErrShortBuffer is returned by EncodeZ85 when dst cannot hold the encoded text.
	ErrShortBuffer = errors.New("envelope: destination buffer too small")
	// ErrEmptyInput is returned when there is no buffer to wrap.
	ErrEmptyInput = errors.New("envelope: empty input")
	// ErrPayloadTooLarge is returned when a length does not fit the frame header.
	ErrPayloadTooLarge = errors.New("envelope: payload too large")
	// ErrTextTooLong is returned when the text exceeds the configured maximum length.
	ErrTextTooLong = errors.New("envelope: text exceeds maximum length")
)

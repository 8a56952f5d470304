package envelope

import (
	"fmt"

	"github.com/thermofleet/thermowire/endian"
)

// Z85Alphabet is the ZeroMQ base-85 alphabet. It avoids quotes and backslash,
// so the text survives JSON and shell quoting unescaped.
const Z85Alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ.-:+=^!/*?&<>()[]{}@%$#"

const (
	z85WordSize  = 4
	z85GroupSize = 5
	z85Base      = 85
)

// EncodedLen returns the Z85 text length for n input bytes. n must be a multiple of 4.
func EncodedLen(n int) int {
	return n / z85WordSize * z85GroupSize
}

// EncodeZ85 writes the Z85 encoding of src to dst and returns the number of
// bytes written. Each 4-byte group is read as a big-endian word and written
// as five digits, most significant first.
func EncodeZ85(dst, src []byte) (int, error) {
	if len(src)%z85WordSize != 0 {
		return 0, fmt.Errorf("%w: got %d bytes", ErrUnalignedInput, len(src))
	}
	n := EncodedLen(len(src))
	if len(dst) < n {
		return 0, fmt.Errorf("%w: need %d bytes, have %d", ErrShortBuffer, n, len(dst))
	}

	engine := endian.GetBigEndianEngine()
	for i, j := 0, 0; i < len(src); i, j = i+z85WordSize, j+z85GroupSize {
		v := engine.Uint32(src[i:])
		for k := z85GroupSize - 1; k >= 0; k-- {
			dst[j+k] = Z85Alphabet[v%z85Base]
			v /= z85Base
		}
	}

	return n, nil
}

// AppendZ85 appends the Z85 encoding of src to dst.
func AppendZ85(dst, src []byte) ([]byte, error) {
	if len(src)%z85WordSize != 0 {
		return dst, fmt.Errorf("%w: got %d bytes", ErrUnalignedInput, len(src))
	}

	start := len(dst)
	dst = append(dst, make([]byte, EncodedLen(len(src)))...)
	if _, err := EncodeZ85(dst[start:], src); err != nil {
		return dst[:start], err
	}

	return dst, nil
}

// EncodeZ85String returns the Z85 encoding of src as a string.
func EncodeZ85String(src []byte) (string, error) {
	out, err := AppendZ85(nil, src)
	if err != nil {
		return "", err
	}

	return string(out), nil
}

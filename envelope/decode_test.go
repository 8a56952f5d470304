package envelope

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// decodeZ85 is the inverse of EncodeZ85, as implemented by the firmware.
func decodeZ85(text string) ([]byte, error) {
	if len(text)%z85GroupSize != 0 {
		return nil, fmt.Errorf("z85 text length %d is not a multiple of 5", len(text))
	}

	out := make([]byte, 0, len(text)/z85GroupSize*z85WordSize)
	for i := 0; i < len(text); i += z85GroupSize {
		var v uint64
		for _, c := range []byte(text[i : i+z85GroupSize]) {
			d := strings.IndexByte(Z85Alphabet, c)
			if d < 0 {
				return nil, fmt.Errorf("invalid z85 character %q", c)
			}
			v = v*z85Base + uint64(d)
		}
		if v > 0xFFFFFFFF {
			return nil, fmt.Errorf("z85 group %q overflows", text[i:i+z85GroupSize])
		}
		out = binary.BigEndian.AppendUint32(out, uint32(v))
	}

	return out, nil
}

type frame struct {
	typ        byte
	reserved   []byte
	rawLen     uint32
	dataLen    uint32
	data       []byte
	paddingLen int
}

func parseFrame(b []byte) (frame, error) {
	if len(b) < FrameHeaderSize {
		return frame{}, fmt.Errorf("frame too short: %d", len(b))
	}

	f := frame{
		typ:      b[0],
		reserved: b[1:4],
		rawLen:   binary.LittleEndian.Uint32(b[4:]),
		dataLen:  binary.LittleEndian.Uint32(b[8:]),
	}
	end := FrameHeaderSize + int(f.dataLen)
	if end > len(b) {
		return frame{}, fmt.Errorf("frame data length %d exceeds frame", f.dataLen)
	}
	f.data = b[FrameHeaderSize:end]
	f.paddingLen = len(b) - end

	return f, nil
}

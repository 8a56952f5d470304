package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetLittleEndianEngine(t *testing.T) {
	engine := GetLittleEndianEngine()
	require.Equal(t, binary.LittleEndian, engine)
	require.True(t, IsLittleEndian(engine))

	buf := make([]byte, 4)
	engine.PutUint32(buf, 0x01020304)
	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, buf)
}

func TestGetBigEndianEngine(t *testing.T) {
	engine := GetBigEndianEngine()
	require.Equal(t, binary.BigEndian, engine)
	require.False(t, IsLittleEndian(engine))

	buf := engine.AppendUint32(nil, 0x01020304)
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, buf)
}

func TestEngines_RoundTrip(t *testing.T) {
	for _, engine := range []EndianEngine{GetLittleEndianEngine(), GetBigEndianEngine()} {
		buf := engine.AppendUint16(nil, 0xBEEF)
		buf = engine.AppendUint64(buf, 0x0102030405060708)

		require.Equal(t, uint16(0xBEEF), engine.Uint16(buf))
		require.Equal(t, uint64(0x0102030405060708), engine.Uint64(buf[2:]))
	}
}

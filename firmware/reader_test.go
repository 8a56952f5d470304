package firmware

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thermofleet/thermowire/flatbuf"
)

// table is a minimal reader over an encoded buffer, the way firmware walks it.
type table struct {
	bb  *flatbuf.ByteBuffer
	pos int
}

func rootTable(t *testing.T, data []byte) table {
	t.Helper()
	require.NotEmpty(t, data)

	bb := flatbuf.NewByteBuffer(data)

	return table{bb: bb, pos: bb.RootTable()}
}

func (tb table) field(slot int) (int, bool) {
	return tb.bb.FieldPos(tb.pos, slot)
}

func (tb table) has(slot int) bool {
	_, ok := tb.field(slot)
	return ok
}

func (tb table) vtable() int {
	return tb.pos - int(tb.bb.ReadInt32(tb.pos))
}

func (tb table) uint8(slot int) uint8 {
	if pos, ok := tb.field(slot); ok {
		return tb.bb.ReadUint8(pos)
	}

	return 0
}

func (tb table) uint16(slot int) uint16 {
	if pos, ok := tb.field(slot); ok {
		return tb.bb.ReadUint16(pos)
	}

	return 0
}

func (tb table) int32(slot int) int32 {
	if pos, ok := tb.field(slot); ok {
		return tb.bb.ReadInt32(pos)
	}

	return 0
}

func (tb table) uint32(slot int) uint32 {
	if pos, ok := tb.field(slot); ok {
		return tb.bb.ReadUint32(pos)
	}

	return 0
}

func (tb table) float32(slot int) float32 {
	if pos, ok := tb.field(slot); ok {
		return tb.bb.ReadFloat32(pos)
	}

	return 0
}

func (tb table) long(slot int) flatbuf.Long {
	if pos, ok := tb.field(slot); ok {
		return tb.bb.ReadUint64(pos)
	}

	return flatbuf.ZeroLong
}

func (tb table) string(slot int) string {
	if pos, ok := tb.field(slot); ok {
		return tb.bb.String(pos)
	}

	return ""
}

func (tb table) settings() []table {
	pos, ok := tb.field(configThermostatSettings)
	if !ok {
		return nil
	}

	n := tb.bb.VectorLen(pos)
	start := tb.bb.Vector(pos)
	out := make([]table, n)
	for i := range out {
		out[i] = table{bb: tb.bb, pos: tb.bb.Indirect(start + i*flatbuf.SizeOffset)}
	}

	return out
}

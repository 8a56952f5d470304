package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint(t *testing.T) {
	tests := []struct {
		name string
		data string
		want uint64
	}{
		{"empty", "", 0xef46db3751d8e999},
		{"short", "test", 0x4fdcca5ddb678139},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fingerprint([]byte(tt.data)))
			assert.Equal(t, tt.want, FingerprintString(tt.data))
		})
	}
}

func TestFingerprint_Deterministic(t *testing.T) {
	payload := []byte{0x0c, 0x00, 0x00, 0x00, 0x08, 0x00, 0x0c, 0x00}
	first := Fingerprint(payload)
	for range 10 {
		assert.Equal(t, first, Fingerprint(payload))
	}

	payload[0] ^= 0xff
	assert.NotEqual(t, first, Fingerprint(payload))
}

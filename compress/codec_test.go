package compress

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thermofleet/thermowire/format"
)

// scheduleLikeData imitates a buffer of repeated Setting tables.
func scheduleLikeData(size int) []byte {
	entry := []byte{
		0x0c, 0x00, 0x00, 0x00, 0x00, 0x00, 0x90, 0x41, 0x00, 0x00, 0xb4, 0x41,
		0xc2, 0x01, 0x06, 0x01, 0x1f, 0x00, 0x00, 0x00,
	}
	data := make([]byte, size)
	for i := range data {
		data[i] = entry[i%len(entry)] ^ byte(i/len(entry))
	}

	return data
}

func allCodecs() []Codec {
	return []Codec{NewNoOpCompressor(), NewZstdCompressor(), NewS2Compressor(), NewLZ4Compressor()}
}

func TestGetCodec(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4,
	} {
		codec, err := GetCodec(ct)
		require.NoError(t, err)
		require.Equal(t, ct, codec.Type())
	}

	_, err := GetCodec(format.CompressionType(0x7f))
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported compression type")
}

func TestAllCodecs_EmptyData(t *testing.T) {
	for _, codec := range allCodecs() {
		t.Run(codec.Type().String(), func(t *testing.T) {
			compressed, err := codec.Compress(nil)
			require.NoError(t, err)
			require.Empty(t, compressed)

			out, err := codec.Decompress(nil)
			require.NoError(t, err)
			require.Empty(t, out)
		})
	}
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	for _, codec := range allCodecs() {
		for _, size := range []int{1, 4, 64, 1000, 64 * 1024} {
			t.Run(fmt.Sprintf("%s/%d", codec.Type(), size), func(t *testing.T) {
				data := scheduleLikeData(size)
				orig := bytes.Clone(data)

				compressed, err := codec.Compress(data)
				require.NoError(t, err)
				require.Equal(t, orig, data, "input must not be modified")

				out, err := codec.Decompress(compressed)
				require.NoError(t, err)
				require.Equal(t, orig, out)
			})
		}
	}
}

func TestAllCodecs_Compresses(t *testing.T) {
	data := bytes.Repeat(scheduleLikeData(20), 200)

	for _, codec := range allCodecs()[1:] {
		compressed, err := codec.Compress(data)
		require.NoError(t, err)
		require.Less(t, len(compressed), len(data)/4, codec.Type().String())
	}
}

func TestNoOpCompressor_Aliases(t *testing.T) {
	data := []byte{1, 2, 3}
	codec := NewNoOpCompressor()

	out, err := codec.Compress(data)
	require.NoError(t, err)
	require.Same(t, &data[0], &out[0])

	out, err = codec.Decompress(data)
	require.NoError(t, err)
	require.Same(t, &data[0], &out[0])
}

func TestAllCodecs_InvalidData(t *testing.T) {
	garbage := []byte{0xff, 0xfe, 0xfd, 0xfc, 0xfb, 0xfa, 0xf9, 0xf8, 0xf7}

	for _, codec := range allCodecs()[1:] {
		t.Run(codec.Type().String(), func(t *testing.T) {
			_, err := codec.Decompress(garbage)
			require.Error(t, err)
		})
	}
}

func TestLZ4Compressor_DecompressSize(t *testing.T) {
	codec := NewLZ4Compressor()
	data := scheduleLikeData(4096)

	compressed, err := codec.Compress(data)
	require.NoError(t, err)

	out, err := codec.DecompressSize(compressed, len(data))
	require.NoError(t, err)
	require.Equal(t, data, out)

	_, err = codec.DecompressSize(compressed, len(data)/2)
	require.Error(t, err)

	_, err = codec.DecompressSize(compressed, -1)
	require.Error(t, err)

	out, err = codec.DecompressSize(nil, 0)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestLZ4Compressor_LargeExpansion(t *testing.T) {
	codec := NewLZ4Compressor()
	data := make([]byte, 256*1024)

	compressed, err := codec.Compress(data)
	require.NoError(t, err)
	require.Less(t, len(compressed)*4, len(data))

	out, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestAllCodecs_ConcurrentUsage(t *testing.T) {
	for _, codec := range allCodecs() {
		t.Run(codec.Type().String(), func(t *testing.T) {
			var wg sync.WaitGroup
			errs := make(chan error, 16)

			for g := range 16 {
				wg.Add(1)
				go func() {
					defer wg.Done()

					data := scheduleLikeData(512 + g*37)
					compressed, err := codec.Compress(data)
					if err != nil {
						errs <- err
						return
					}
					out, err := codec.Decompress(compressed)
					if err != nil {
						errs <- err
						return
					}
					if !bytes.Equal(data, out) {
						errs <- fmt.Errorf("goroutine %d: round trip mismatch", g)
					}
				}()
			}
			wg.Wait()
			close(errs)

			for err := range errs {
				require.NoError(t, err)
			}
		})
	}
}

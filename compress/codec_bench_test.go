package compress

import (
	"fmt"
	"testing"
)

func BenchmarkAllCodecs_Compress(b *testing.B) {
	for _, codec := range allCodecs() {
		for _, size := range []int{256, 4096, 65536} {
			data := scheduleLikeData(size)

			b.Run(fmt.Sprintf("%s/%dB", codec.Type(), size), func(b *testing.B) {
				b.SetBytes(int64(size))
				b.ReportAllocs()

				for b.Loop() {
					if _, err := codec.Compress(data); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkAllCodecs_Decompress(b *testing.B) {
	for _, codec := range allCodecs() {
		for _, size := range []int{256, 4096, 65536} {
			data := scheduleLikeData(size)
			compressed, err := codec.Compress(data)
			if err != nil {
				b.Fatal(err)
			}

			b.Run(fmt.Sprintf("%s/%dB", codec.Type(), size), func(b *testing.B) {
				b.SetBytes(int64(size))
				b.ReportAllocs()

				for b.Loop() {
					if _, err := codec.Decompress(compressed); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkZstdCompress_Parallel(b *testing.B) {
	codec := NewZstdCompressor()
	data := scheduleLikeData(4096)

	b.SetBytes(int64(len(data)))
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := codec.Compress(data); err != nil {
				b.Error(err)
				return
			}
		}
	})
}

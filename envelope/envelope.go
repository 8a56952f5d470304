package envelope

import (
	"fmt"
	"math"

	"github.com/thermofleet/thermowire/compress"
	"github.com/thermofleet/thermowire/endian"
	"github.com/thermofleet/thermowire/format"
	"github.com/thermofleet/thermowire/internal/hash"
	"github.com/thermofleet/thermowire/internal/options"
	"github.com/thermofleet/thermowire/internal/pool"
)

const (
	// Magic prefixes plain envelopes: version 3, Z85 text.
	Magic = "3Z85"
	// FramedMagic prefixes envelopes carrying a frame: version 3, compressed, Z85 text.
	FramedMagic = "3C85"
	// MagicLength is the length of both magics.
	MagicLength = 4

	// FrameHeaderSize is the size of the frame header before the data.
	FrameHeaderSize = 12
)

// Payload is an encoded envelope.
type Payload struct {
	// Text is the string handed to the device.
	Text string
	// Size is the length of the buffer before padding and compression.
	Size int
	// Compression is the frame codec, or CompressionNone for plain and
	// uncompressed framed envelopes.
	Compression format.CompressionType
	// Framed reports whether Text starts with FramedMagic.
	Framed bool
	// Fingerprint is the xxHash64 of the buffer before padding and compression.
	Fingerprint uint64
}

// String returns p.Text.
func (p *Payload) String() string {
	return p.Text
}

type config struct {
	compression format.CompressionType
	framed      bool
	maxText     int
}

// Option configures Encode.
type Option = options.Option[*config]

// WithCompression compresses the buffer and wraps it in a frame.
// CompressionNone leaves the envelope plain unless WithFraming is also given.
func WithCompression(c format.CompressionType) Option {
	return options.New(func(cfg *config) error {
		if !c.Valid() {
			return fmt.Errorf("envelope: invalid compression type 0x%x", uint8(c))
		}
		cfg.compression = c
		if c != format.CompressionNone {
			cfg.framed = true
		}

		return nil
	})
}

// WithFraming wraps the buffer in a frame even when it is not compressed, so
// the device can check the length before decoding.
func WithFraming() Option {
	return options.NoError(func(cfg *config) {
		cfg.framed = true
	})
}

// WithMaxTextLength rejects envelopes whose text, magic included, is longer
// than n characters. Zero means no limit.
func WithMaxTextLength(n int) Option {
	return options.New(func(cfg *config) error {
		if n < 0 {
			return fmt.Errorf("envelope: invalid max text length %d", n)
		}
		cfg.maxText = n

		return nil
	})
}

// Encode wraps data in an envelope. data is not modified or retained.
func Encode(data []byte, opts ...Option) (*Payload, error) {
	cfg := &config{compression: format.CompressionNone}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}
	if uint64(len(data)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, len(data))
	}

	frame := pool.GetFrameBuffer()
	defer pool.PutFrameBuffer(frame)

	magic := Magic
	if cfg.framed {
		magic = FramedMagic
		if err := writeFrame(frame, data, cfg.compression); err != nil {
			return nil, err
		}
	} else {
		frame.MustWrite(data)
	}
	frame.WriteZeros(padding(frame.Len()))

	textLen := MagicLength + EncodedLen(frame.Len())
	if cfg.maxText > 0 && textLen > cfg.maxText {
		return nil, fmt.Errorf("%w: %d > %d", ErrTextTooLong, textLen, cfg.maxText)
	}

	text := pool.GetTextBuffer()
	defer pool.PutTextBuffer(text)

	text.Grow(textLen)
	text.WriteString(magic)
	if _, err := EncodeZ85(text.Extend(EncodedLen(frame.Len())), frame.Bytes()); err != nil {
		return nil, err
	}

	return &Payload{
		Text:        string(text.Bytes()),
		Size:        len(data),
		Compression: cfg.compression,
		Framed:      cfg.framed,
		Fingerprint: hash.Fingerprint(data),
	}, nil
}

// writeFrame appends the frame header and the compressed data to frame.
func writeFrame(frame *pool.ByteBuffer, data []byte, c format.CompressionType) error {
	codec, err := compress.GetCodec(c)
	if err != nil {
		return err
	}

	compressed, err := codec.Compress(data)
	if err != nil {
		return fmt.Errorf("envelope: %s compression failed: %w", c, err)
	}
	if uint64(len(compressed)) > math.MaxUint32 {
		return fmt.Errorf("%w: %d compressed bytes", ErrPayloadTooLarge, len(compressed))
	}

	engine := endian.GetLittleEndianEngine()
	header := frame.Extend(FrameHeaderSize)
	header[0] = byte(codec.Type())
	header[1], header[2], header[3] = 0, 0, 0
	engine.PutUint32(header[4:], uint32(len(data)))       //nolint:gosec
	engine.PutUint32(header[8:], uint32(len(compressed))) //nolint:gosec
	frame.MustWrite(compressed)

	return nil
}

// padding returns the zero bytes needed to round n up to a multiple of 4.
func padding(n int) int {
	return (z85WordSize - n%z85WordSize) % z85WordSize
}

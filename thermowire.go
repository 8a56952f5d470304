// Package thermowire encodes thermostat configurations into the text strings
// pushed to thermostat firmware.
//
// Encoding runs in two stages:
//
//  1. firmware packs a Configuration and its Settings into a FlatBuffers
//     buffer (built by the flatbuf package),
//  2. envelope writes that buffer as Z85 text behind a version magic.
//
// # Basic Usage
//
//	payload, err := thermowire.Encode(&firmware.Configuration{
//	    Threshold: 0.5,
//	    Cadence:   120,
//	}, []firmware.Setting{{
//	    Type:           firmware.SettingHold,
//	    SetPointHeat:   18,
//	    SetPointCool:   22.5,
//	    AllowedActions: []firmware.Action{firmware.ActionCool, firmware.ActionCirculate},
//	    HoldUntil:      time.Now().Add(time.Hour),
//	}})
//	if err != nil {
//	    return err
//	}
//	invokeDeviceFunction(deviceID, "config", payload.Text)
//
// For repeated use, or to set a clock, zone source or compression, create an
// Encoder:
//
//	enc, err := thermowire.NewEncoder(
//	    thermowire.WithFirmwareOptions(firmware.WithLogger(logger)),
//	    thermowire.WithEnvelopeOptions(envelope.WithCompression(format.CompressionZstd)),
//	)
//
// # Package Structure
//
// This package wires the firmware and envelope packages together. Use them
// directly for finer control, or flatbuf to build other FlatBuffers tables.
package thermowire

import (
	"github.com/thermofleet/thermowire/envelope"
	"github.com/thermofleet/thermowire/firmware"
	"github.com/thermofleet/thermowire/internal/hash"
	"github.com/thermofleet/thermowire/internal/options"
)

// Encoder runs both encoding stages with fixed options. It is safe for concurrent use.
type Encoder struct {
	firmwareOpts []firmware.EncoderOption
	envelopeOpts []envelope.Option

	fw *firmware.Encoder
}

// Option configures an Encoder.
type Option = options.Option[*Encoder]

// WithFirmwareOptions adds options for the firmware stage.
func WithFirmwareOptions(opts ...firmware.EncoderOption) Option {
	return options.NoError(func(e *Encoder) {
		e.firmwareOpts = append(e.firmwareOpts, opts...)
	})
}

// WithEnvelopeOptions adds options for the envelope stage.
func WithEnvelopeOptions(opts ...envelope.Option) Option {
	return options.NoError(func(e *Encoder) {
		e.envelopeOpts = append(e.envelopeOpts, opts...)
	})
}

// NewEncoder creates an Encoder. Invalid firmware options are reported here;
// invalid envelope options are reported by the first Encode call.
func NewEncoder(opts ...Option) (*Encoder, error) {
	e := &Encoder{}
	if err := options.Apply(e, opts...); err != nil {
		return nil, err
	}

	fw, err := firmware.NewEncoder(e.firmwareOpts...)
	if err != nil {
		return nil, err
	}
	e.fw = fw

	return e, nil
}

// EncodeBinary returns the finished FlatBuffers buffer without the envelope.
func (e *Encoder) EncodeBinary(cfg *firmware.Configuration, settings []firmware.Setting) ([]byte, error) {
	return e.fw.Encode(cfg, settings)
}

// Encode returns the envelope for cfg and settings.
func (e *Encoder) Encode(cfg *firmware.Configuration, settings []firmware.Setting) (*envelope.Payload, error) {
	buf, err := e.fw.Encode(cfg, settings)
	if err != nil {
		return nil, err
	}

	return envelope.Encode(buf, e.envelopeOpts...)
}

// Encode encodes cfg and settings with default options and the system clock.
func Encode(cfg *firmware.Configuration, settings []firmware.Setting) (*envelope.Payload, error) {
	enc, err := NewEncoder()
	if err != nil {
		return nil, err
	}

	return enc.Encode(cfg, settings)
}

// TextID returns the xxHash64 of an envelope text, for deduplicating pushes
// of configurations already sent as text.
func TextID(text string) uint64 {
	return hash.FingerprintString(text)
}

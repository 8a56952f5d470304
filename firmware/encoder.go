package firmware

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/thermofleet/thermowire/flatbuf"
	"github.com/thermofleet/thermowire/internal/options"
)

// DefaultInitialBufferSize is the starting Builder capacity. A configuration
// with a handful of settings fits without growing.
const DefaultInitialBufferSize = 256

// Encoder turns a Configuration and its Settings into a finished FlatBuffers buffer.
//
// Each Encode call owns its own Builder, so an Encoder is safe for concurrent use.
type Encoder struct {
	now           func() time.Time
	zones         ZoneSource
	logger        *slog.Logger
	initialSize   int
	forceDefaults bool
}

// EncoderOption configures an Encoder.
type EncoderOption = options.Option[*Encoder]

// WithClock sets the clock used to pick the next timezone transition.
func WithClock(now func() time.Time) EncoderOption {
	return options.New(func(e *Encoder) error {
		if now == nil {
			return errors.New("firmware: clock must not be nil")
		}
		e.now = now

		return nil
	})
}

// WithZoneSource sets how timezone names are resolved. Defaults to SystemZones.
func WithZoneSource(zones ZoneSource) EncoderOption {
	return options.New(func(e *Encoder) error {
		if zones == nil {
			return errors.New("firmware: zone source must not be nil")
		}
		e.zones = zones

		return nil
	})
}

// WithLogger sets the logger for fields dropped during encoding. Nil discards.
func WithLogger(logger *slog.Logger) EncoderOption {
	return options.NoError(func(e *Encoder) {
		if logger == nil {
			logger = slog.New(slog.DiscardHandler)
		}
		e.logger = logger
	})
}

// WithInitialBufferSize sets the starting Builder capacity in bytes.
func WithInitialBufferSize(size int) EncoderOption {
	return options.New(func(e *Encoder) error {
		if size < 0 {
			return fmt.Errorf("firmware: invalid initial buffer size %d", size)
		}
		e.initialSize = size

		return nil
	})
}

// WithForceDefaults writes scalar fields even when they hold their default value.
func WithForceDefaults(force bool) EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.forceDefaults = force
	})
}

// NewEncoder creates an Encoder.
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	e := &Encoder{
		now:         time.Now,
		zones:       SystemZones,
		logger:      slog.New(slog.DiscardHandler),
		initialSize: DefaultInitialBufferSize,
	}
	if err := options.Apply(e, opts...); err != nil {
		return nil, err
	}

	return e, nil
}

// Encode builds the buffer for cfg and settings. Settings keep their order.
//
// The returned slice is owned by the caller. cfg and settings are not modified.
func (e *Encoder) Encode(cfg *Configuration, settings []Setting) ([]byte, error) {
	if cfg == nil {
		return nil, ErrNilConfiguration
	}

	b, err := flatbuf.NewBuilder(e.initialSize, flatbuf.WithForceDefaults(e.forceDefaults))
	if err != nil {
		return nil, err
	}

	root, err := e.encodeConfiguration(b, cfg, settings)
	if err != nil {
		return nil, err
	}
	if err := b.Finish(root); err != nil {
		return nil, err
	}

	return b.FinishedBytes()
}

func (e *Encoder) encodeConfiguration(b *flatbuf.Builder, cfg *Configuration, settings []Setting) (flatbuf.Offset, error) {
	threshold, err := ThresholdX100(cfg.Threshold)
	if err != nil {
		return 0, err
	}
	available, err := ActionsMask(cfg.AvailableActions)
	if err != nil {
		return 0, fmt.Errorf("available actions: %w", err)
	}

	offsets := make([]flatbuf.Offset, len(settings))
	for i := range settings {
		if offsets[i], err = encodeSetting(b, &settings[i]); err != nil {
			return 0, fmt.Errorf("setting %d: %w", i, err)
		}
	}
	settingsVec, err := b.CreateOffsetVector(offsets)
	if err != nil {
		return 0, err
	}

	var sensorID flatbuf.Offset
	if cfg.ExternalSensorID != "" {
		if sensorID, err = b.CreateString(cfg.ExternalSensorID); err != nil {
			return 0, err
		}
	}

	tr, hasTransition := e.transition(cfg.Timezone)

	if err := b.StartObject(configNumFields); err != nil {
		return 0, err
	}
	b.AddFieldOffset(configThermostatSettings, settingsVec, 0)
	b.AddFieldOffset(configExternalSensorID, sensorID, 0)
	b.AddFieldUint32(configCadence, cfg.Cadence, 0)
	if hasTransition {
		at, _ := transitionSeconds(tr)
		b.AddFieldInt32(configCurrentUtcOffset, tr.CurrentOffset, 0)
		b.AddFieldInt32(configNextUtcOffset, tr.NextOffset, 0)
		b.AddFieldUint32(configNextTransition, at, 0)
	}
	b.AddFieldUint16(configThresholdX100, threshold, 0)
	b.AddFieldUint8(configAvailableActions, available, 0)

	return b.EndObject()
}

// transition looks up the next offset change of the named zone. Failures are
// not errors: the device simply receives no timezone fields.
func (e *Encoder) transition(zone string) (Transition, bool) {
	if zone == "" {
		return Transition{}, false
	}

	loc, err := e.zones.Location(zone)
	if err != nil {
		e.logger.Debug("omitting timezone fields", "zone", zone, "error", err)
		return Transition{}, false
	}

	now := e.now()
	tr, ok := NextTransition(loc, now)
	if !ok {
		e.logger.Debug("omitting timezone fields", "zone", zone, "reason", "no upcoming transition", "now", now)
		return Transition{}, false
	}
	if _, err := transitionSeconds(tr); err != nil {
		e.logger.Debug("omitting timezone fields", "zone", zone, "error", err)
		return Transition{}, false
	}

	return tr, true
}

// encodeSetting writes one Setting table. Fields are added largest first so
// the layout, and with it the vtable, only depends on which fields are present.
func encodeSetting(b *flatbuf.Builder, s *Setting) (flatbuf.Offset, error) {
	typ, err := s.Type.Value()
	if err != nil {
		return 0, fmt.Errorf("%w: %q", err, string(s.Type))
	}
	heat, err := setPoint(s.SetPointHeat)
	if err != nil {
		return 0, fmt.Errorf("heat: %w", err)
	}
	cool, err := setPoint(s.SetPointCool)
	if err != nil {
		return 0, fmt.Errorf("cool: %w", err)
	}
	allowed, err := ActionsMask(s.AllowedActions)
	if err != nil {
		return 0, fmt.Errorf("allowed actions: %w", err)
	}

	holdUntil := flatbuf.ZeroLong
	var days uint8
	var minutes uint16

	switch typ {
	case TypeHold:
		if holdUntil, err = holdUntilLong(s.HoldUntil); err != nil {
			return 0, err
		}
	case TypeScheduled:
		if days, err = DaysMask(s.DaysOfWeek); err != nil {
			return 0, err
		}
		if s.AtMinutesSinceMidnight >= MinutesPerDay {
			return 0, fmt.Errorf("%w: %d", ErrMinutesOutOfRange, s.AtMinutesSinceMidnight)
		}
		minutes = s.AtMinutesSinceMidnight
	}

	if err := b.StartObject(settingNumFields); err != nil {
		return 0, err
	}
	b.AddFieldUint64(settingHoldUntil, holdUntil, flatbuf.ZeroLong)
	b.AddFieldFloat32(settingSetPointHeat, heat, 0)
	b.AddFieldFloat32(settingSetPointCool, cool, 0)
	b.AddFieldUint16(settingAtMinutesSinceMidnight, minutes, 0)
	b.AddFieldUint8(settingAllowedActions, allowed, 0)
	b.AddFieldUint8(settingType, typ, TypeHold)
	b.AddFieldUint8(settingDaysOfWeek, days, 0)

	return b.EndObject()
}

// holdUntilLong converts t to milliseconds since the unix epoch. The zero
// time means no hold deadline.
func holdUntilLong(t time.Time) (flatbuf.Long, error) {
	if t.IsZero() {
		return flatbuf.ZeroLong, nil
	}

	l, err := flatbuf.LongFromInt64(t.UnixMilli())
	if err != nil {
		return flatbuf.ZeroLong, fmt.Errorf("hold until %s: %w", t.Format(time.RFC3339), err)
	}

	return l, nil
}

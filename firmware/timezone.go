package firmware

import (
	"fmt"
	"math"
	"time"

	// Embedded zone data so transitions resolve on hosts without a zoneinfo database.
	_ "time/tzdata"
)

// ZoneSource resolves IANA zone names.
type ZoneSource interface {
	Location(name string) (*time.Location, error)
}

// ZoneSourceFunc adapts a function to ZoneSource.
type ZoneSourceFunc func(name string) (*time.Location, error)

// Location calls f(name).
func (f ZoneSourceFunc) Location(name string) (*time.Location, error) {
	return f(name)
}

// SystemZones resolves names with time.LoadLocation, falling back to the
// embedded tzdata.
var SystemZones ZoneSource = ZoneSourceFunc(time.LoadLocation)

// Transition is the next UTC offset change of a zone.
type Transition struct {
	// CurrentOffset is the offset in seconds east of UTC in effect until At.
	CurrentOffset int32
	// NextOffset is the offset in seconds east of UTC from At on.
	NextOffset int32
	// At is the instant of the change.
	At time.Time
}

// NextTransition returns the first transition of loc strictly after now.
// ok is false when the zone has no further transitions, as for UTC or zones
// that stopped observing daylight saving time.
func NextTransition(loc *time.Location, now time.Time) (tr Transition, ok bool) {
	if loc == nil {
		return Transition{}, false
	}

	local := now.In(loc)
	_, end := local.ZoneBounds()
	if end.IsZero() || !end.After(now) {
		return Transition{}, false
	}

	_, current := local.Zone()
	_, next := end.In(loc).Zone()

	return Transition{
		CurrentOffset: int32(current), //nolint:gosec
		NextOffset:    int32(next),    //nolint:gosec
		At:            end,
	}, true
}

// transitionSeconds returns tr.At as unix seconds for the uint32 NextTransition field.
func transitionSeconds(tr Transition) (uint32, error) {
	secs := tr.At.Unix()
	if secs <= 0 || secs > math.MaxUint32 {
		return 0, fmt.Errorf("transition %s outside the uint32 seconds range", tr.At.UTC().Format(time.RFC3339))
	}

	return uint32(secs), nil
}

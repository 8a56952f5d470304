package firmware

import (
	"fmt"
	"math"
)

// MinutesPerDay bounds AtMinutesSinceMidnight.
const MinutesPerDay = 24 * 60

// ThresholdX100 converts a threshold in degrees to hundredths of a degree.
//
// The product is rounded half away from zero, so 0.125 becomes 13 and 0.124
// becomes 12. Results outside the uint16 range are rejected.
func ThresholdX100(threshold float64) (uint16, error) {
	v := math.Round(threshold * 100)
	if math.IsNaN(v) || v < 0 || v > math.MaxUint16 {
		return 0, fmt.Errorf("%w: %v", ErrThresholdOutOfRange, threshold)
	}

	return uint16(v), nil
}

// setPoint narrows a temperature to the float32 carried on the wire.
func setPoint(v float64) (float32, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > math.MaxFloat32 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidSetPoint, v)
	}

	return float32(v), nil
}

package firmware

import "errors"

var (
	// ErrUnknownAction is returned for an action without a bit in the action mask.
	ErrUnknownAction = errors.New("firmware: unknown action")
	// ErrUnknownDay is returned for a day without a bit in the days-of-week mask.
	ErrUnknownDay = errors.New("firmware: unknown day of week")
	// ErrUnknownSettingType is returned for a setting that is neither Hold nor Scheduled.
	ErrUnknownSettingType = errors.New("firmware: unknown setting type")
	// ErrThresholdOutOfRange is returned when the threshold does not fit ThresholdX100.
	ErrThresholdOutOfRange = errors.New("firmware: threshold out of range")
	// ErrInvalidSetPoint is returned for a set point that is NaN or infinite.
	ErrInvalidSetPoint = errors.New("firmware: set point must be finite")
	// ErrMinutesOutOfRange is returned when a scheduled time is not within a single day.
	ErrMinutesOutOfRange = errors.New("firmware: minutes since midnight out of range")
	// ErrNilConfiguration is returned when Encode is called without a configuration.
	ErrNilConfiguration = errors.New("firmware: configuration is nil")
)

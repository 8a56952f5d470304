package firmware

import "time"

// Action is an HVAC action a thermostat may take.
type Action string

const (
	ActionHeat      Action = "Heat"
	ActionCool      Action = "Cool"
	ActionCirculate Action = "Circulate"
)

// Day is a day of the week as named in schedule settings.
type Day string

const (
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
	Saturday  Day = "Saturday"
	Sunday    Day = "Sunday"
)

// SettingType discriminates schedule settings.
type SettingType string

const (
	// SettingHold keeps its set points until HoldUntil.
	SettingHold SettingType = "Hold"
	// SettingScheduled applies on DaysOfWeek at AtMinutesSinceMidnight.
	SettingScheduled SettingType = "Scheduled"
)

// Wire values of the Setting.Type field.
const (
	TypeHold      uint8 = 0
	TypeScheduled uint8 = 1
)

// Value returns the wire value of t.
func (t SettingType) Value() (uint8, error) {
	switch t {
	case SettingHold:
		return TypeHold, nil
	case SettingScheduled:
		return TypeScheduled, nil
	default:
		return 0, ErrUnknownSettingType
	}
}

// Configuration is the device-wide part of a thermostat configuration.
type Configuration struct {
	// Threshold is the temperature hysteresis in degrees, sent with two decimals.
	Threshold float64 `json:"threshold" yaml:"threshold"`
	// Cadence is the sensor reporting interval in seconds.
	Cadence uint32 `json:"cadence" yaml:"cadence"`
	// ExternalSensorID is the hex id of a paired sensor. Empty means none.
	ExternalSensorID string `json:"externalSensorId,omitempty" yaml:"externalSensorId,omitempty"`
	// Timezone is an IANA zone name. Empty means no timezone fields are sent.
	Timezone         string   `json:"timezone,omitempty" yaml:"timezone,omitempty"`
	AvailableActions []Action `json:"availableActions,omitempty" yaml:"availableActions,omitempty"`
}

// Setting is one schedule entry.
type Setting struct {
	Type SettingType `json:"type" yaml:"type"`

	// HoldUntil is only sent for Hold settings.
	HoldUntil time.Time `json:"holdUntil,omitempty" yaml:"holdUntil,omitempty"`

	// DaysOfWeek and AtMinutesSinceMidnight are only sent for Scheduled settings.
	DaysOfWeek             []Day  `json:"daysOfWeek,omitempty" yaml:"daysOfWeek,omitempty"`
	AtMinutesSinceMidnight uint16 `json:"atMinutesSinceMidnight,omitempty" yaml:"atMinutesSinceMidnight,omitempty"`

	SetPointHeat   float64  `json:"setPointHeat" yaml:"setPointHeat"`
	SetPointCool   float64  `json:"setPointCool" yaml:"setPointCool"`
	AllowedActions []Action `json:"allowedActions,omitempty" yaml:"allowedActions,omitempty"`
}

package firmware

// Configuration table slots.
const (
	configThresholdX100 = iota
	configCadence
	configExternalSensorID
	configCurrentUtcOffset
	configNextUtcOffset
	configNextTransition
	configAvailableActions
	configThermostatSettings

	configNumFields
)

// Setting table slots. Slots 4 and 7 are reserved and never written.
const (
	settingSetPointHeat = iota
	settingSetPointCool
	settingAllowedActions
	settingType
	_
	settingHoldUntil
	settingDaysOfWeek
	_
	settingAtMinutesSinceMidnight

	settingNumFields
)

// Package firmware packs thermostat configuration and schedule settings into
// the FlatBuffers tables read by the thermostat firmware.
//
// The root of every buffer is a Configuration table. Its ThermostatSettings
// field holds a vector of Setting tables, one per schedule entry, in the order
// the caller supplied them. Field numbers are fixed:
//
//	Configuration                     Setting
//	  0 ThresholdX100      uint16       0 SetPointHeat            float32
//	  1 Cadence            uint32       1 SetPointCool            float32
//	  2 ExternalSensorId   string       2 AllowedActions          uint8
//	  3 CurrentUtcOffset   int32        3 Type                    uint8
//	  4 NextUtcOffset      int32        4 (reserved)
//	  5 NextTransition     uint32       5 HoldUntil               uint64
//	  6 AvailableActions   uint8        6 DaysOfWeek              uint8
//	  7 ThermostatSettings [Setting]    7 (reserved)
//	                                    8 AtMinutesSinceMidnight  uint16
//
// Every scalar defaults to zero and is omitted from the buffer when it holds
// its default. Firmware must read an absent field as zero.
//
// # Usage
//
//	enc, err := firmware.NewEncoder()
//	if err != nil {
//	    return err
//	}
//
//	buf, err := enc.Encode(&firmware.Configuration{
//	    Threshold: 0.5,
//	    Cadence:   120,
//	    Timezone:  "Europe/Berlin",
//	}, []firmware.Setting{{
//	    Type:           firmware.SettingHold,
//	    SetPointHeat:   18,
//	    SetPointCool:   22.5,
//	    AllowedActions: []firmware.Action{firmware.ActionCool},
//	    HoldUntil:      time.Now().Add(time.Hour),
//	}})
//
// Encoding is deterministic: the same input, clock and zone data always give
// the same bytes.
package firmware

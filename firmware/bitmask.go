package firmware

import "fmt"

// Action mask bits.
const (
	HeatBit      uint8 = 1 << 0
	CoolBit      uint8 = 1 << 1
	CirculateBit uint8 = 1 << 2
)

var actionBits = [...]struct {
	action Action
	bit    uint8
}{
	{ActionHeat, HeatBit},
	{ActionCool, CoolBit},
	{ActionCirculate, CirculateBit},
}

var dayBits = [...]struct {
	day Day
	bit uint8
}{
	{Monday, 1 << 0},
	{Tuesday, 1 << 1},
	{Wednesday, 1 << 2},
	{Thursday, 1 << 3},
	{Friday, 1 << 4},
	{Saturday, 1 << 5},
	{Sunday, 1 << 6},
}

// Bit returns the mask bit of a.
func (a Action) Bit() (uint8, error) {
	for _, e := range actionBits {
		if e.action == a {
			return e.bit, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownAction, string(a))
}

// Bit returns the mask bit of d.
func (d Day) Bit() (uint8, error) {
	for _, e := range dayBits {
		if e.day == d {
			return e.bit, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownDay, string(d))
}

// ActionsMask ORs the bits of actions together. An empty set gives 0.
func ActionsMask(actions []Action) (uint8, error) {
	var mask uint8
	for _, a := range actions {
		bit, err := a.Bit()
		if err != nil {
			return 0, err
		}
		mask |= bit
	}

	return mask, nil
}

// DaysMask ORs the bits of days together. An empty set gives 0.
func DaysMask(days []Day) (uint8, error) {
	var mask uint8
	for _, d := range days {
		bit, err := d.Bit()
		if err != nil {
			return 0, err
		}
		mask |= bit
	}

	return mask, nil
}

// ActionsFromMask lists the actions set in mask in Heat, Cool, Circulate order.
// Bits without an action are ignored.
func ActionsFromMask(mask uint8) []Action {
	var actions []Action
	for _, e := range actionBits {
		if mask&e.bit != 0 {
			actions = append(actions, e.action)
		}
	}

	return actions
}

// DaysFromMask lists the days set in mask from Monday to Sunday.
// Bits without a day are ignored.
func DaysFromMask(mask uint8) []Day {
	var days []Day
	for _, e := range dayBits {
		if mask&e.bit != 0 {
			days = append(days, e.day)
		}
	}

	return days
}

package firmware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionsMask(t *testing.T) {
	tests := []struct {
		name    string
		actions []Action
		want    uint8
	}{
		{"empty", nil, 0},
		{"heat", []Action{ActionHeat}, HeatBit},
		{"heat and cool", []Action{ActionHeat, ActionCool}, HeatBit | CoolBit},
		{"order independent", []Action{ActionCirculate, ActionHeat}, HeatBit | CirculateBit},
		{"duplicates", []Action{ActionCool, ActionCool}, CoolBit},
		{"all", []Action{ActionHeat, ActionCool, ActionCirculate}, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ActionsMask(tt.actions)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestActionsMask_Unknown(t *testing.T) {
	_, err := ActionsMask([]Action{ActionHeat, "Dehumidify"})
	require.ErrorIs(t, err, ErrUnknownAction)
	assert.Contains(t, err.Error(), "Dehumidify")

	_, err = ActionsMask([]Action{"heat"})
	require.ErrorIs(t, err, ErrUnknownAction)
}

func TestActionsFromMask(t *testing.T) {
	for mask := range uint8(8) {
		actions := ActionsFromMask(mask)
		got, err := ActionsMask(actions)
		require.NoError(t, err)
		assert.Equal(t, mask, got)
	}

	assert.Equal(t, []Action{ActionCool, ActionCirculate}, ActionsFromMask(0xFE))
	assert.Nil(t, ActionsFromMask(0))
}

func TestDaysMask(t *testing.T) {
	all := []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
	for i, d := range all {
		got, err := DaysMask([]Day{d})
		require.NoError(t, err)
		assert.Equal(t, uint8(1)<<i, got, d)
	}

	got, err := DaysMask(all)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x7F), got)

	got, err = DaysMask([]Day{Sunday, Saturday})
	require.NoError(t, err)
	assert.Equal(t, uint8(0x60), got)

	got, err = DaysMask(nil)
	require.NoError(t, err)
	assert.Zero(t, got)

	_, err = DaysMask([]Day{Monday, "Funday"})
	require.ErrorIs(t, err, ErrUnknownDay)
}

func TestDaysFromMask(t *testing.T) {
	assert.Equal(t, []Day{Monday, Wednesday, Friday}, DaysFromMask(0x15))
	assert.Len(t, DaysFromMask(0xFF), 7)
	assert.Nil(t, DaysFromMask(0))
}

func TestSettingTypeValue(t *testing.T) {
	v, err := SettingHold.Value()
	require.NoError(t, err)
	assert.Equal(t, TypeHold, v)

	v, err = SettingScheduled.Value()
	require.NoError(t, err)
	assert.Equal(t, TypeScheduled, v)

	_, err = SettingType("").Value()
	require.ErrorIs(t, err, ErrUnknownSettingType)
}

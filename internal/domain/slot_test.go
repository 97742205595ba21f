package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonbook/SalonBook-BookingService/pkg/types"
)

func TestDefaultSlotGridGenerateSlots(t *testing.T) {
	slots, err := DefaultSlotGrid().GenerateSlots()
	require.NoError(t, err)

	// 10:00 through 17:30 inclusive with a 30-minute step is 16 slots
	require.Len(t, slots, 16)
	assert.Equal(t, "10:00", slots[0].String())
	assert.Equal(t, "10:30", slots[1].String())
	assert.Equal(t, "17:00", slots[14].String())
	assert.Equal(t, "17:30", slots[15].String())

	// Strictly ascending, no duplicates
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].IsBefore(slots[i]))
	}
}

func TestSlotGridGenerateSlotsOffGridClose(t *testing.T) {
	// Close time not on the grid: last slot is the one before it
	open, _ := types.NewTimeStringFromString("10:00")
	close, _ := types.NewTimeStringFromString("11:15")
	grid := SlotGrid{OpenTime: open, CloseTime: close, StepMinutes: 30}

	slots, err := grid.GenerateSlots()
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, "11:00", slots[2].String())
}

func TestSlotIndexContains(t *testing.T) {
	index, err := DefaultSlotGrid().Index()
	require.NoError(t, err)
	require.Len(t, index, 16)

	on, _ := types.NewTimeStringFromString("17:30")
	assert.True(t, index.Contains(on))

	off, _ := types.NewTimeStringFromString("10:15")
	assert.False(t, index.Contains(off))

	early, _ := types.NewTimeStringFromString("09:30")
	assert.False(t, index.Contains(early))

	late, _ := types.NewTimeStringFromString("18:00")
	assert.False(t, index.Contains(late))
}

func TestSlotIndexNilRejectsEverything(t *testing.T) {
	var index SlotIndex

	slot, _ := types.NewTimeStringFromString("10:00")
	assert.False(t, index.Contains(slot))
}

func TestSlotGridNearMidnightTerminates(t *testing.T) {
	// A grid running into midnight: the last step crosses the day
	// boundary and generation must stop instead of looping.
	open, _ := types.NewTimeStringFromString("23:00")
	closeTime, _ := types.NewTimeStringFromString("23:45")
	grid := SlotGrid{OpenTime: open, CloseTime: closeTime, StepMinutes: 30}

	done := make(chan struct{})
	var slots []types.TimeString
	var err error
	go func() {
		slots, err = grid.GenerateSlots()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("GenerateSlots did not finish on a grid reaching midnight")
	}

	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "23:00", slots[0].String())
	assert.Equal(t, "23:30", slots[1].String())
}

func TestSlotGridRejectsNonPositiveStep(t *testing.T) {
	grid := DefaultSlotGrid()
	grid.StepMinutes = 0

	_, err := grid.GenerateSlots()
	require.Error(t, err)
}

func TestFirstFreeSlot(t *testing.T) {
	catalog, err := DefaultSlotGrid().GenerateSlots()
	require.NoError(t, err)

	// Empty occupancy: the first slot of the day wins
	slot, ok := FirstFreeSlot(catalog, map[types.TimeString]bool{})
	require.True(t, ok)
	assert.Equal(t, "10:00", slot.String())

	// First two taken: reassignment is deterministic, 11:00 every time
	occupied := map[types.TimeString]bool{
		catalog[0]: true,
		catalog[1]: true,
	}
	slot, ok = FirstFreeSlot(catalog, occupied)
	require.True(t, ok)
	assert.Equal(t, "11:00", slot.String())

	// Fully booked day
	full := make(map[types.TimeString]bool, len(catalog))
	for _, s := range catalog {
		full[s] = true
	}
	_, ok = FirstFreeSlot(catalog, full)
	assert.False(t, ok)
}

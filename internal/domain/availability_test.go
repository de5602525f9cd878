package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeDay_SynthesizesMissingSlots(t *testing.T) {
	date := mustDate(t, "2024-06-10")
	morning := NewAvailabilitySlot(date, TimeSlotMorning, 30)
	morning.Reserved = 5

	day := ComposeDay(date, []*AvailabilitySlot{morning})

	assert.Equal(t, SlotView{Available: true, Capacity: 30, Reserved: 5}, day.Morning)
	assert.Equal(t, ClosedSlotView(), day.Afternoon)
}

func TestComposeDay_NoSlots(t *testing.T) {
	day := ComposeDay(mustDate(t, "2024-06-11"), nil)

	assert.Equal(t, SlotView{Available: false, Capacity: 0, Reserved: 0}, day.Morning)
	assert.Equal(t, SlotView{Available: false, Capacity: 0, Reserved: 0}, day.Afternoon)
}

func TestComposeDay_IgnoresOtherDates(t *testing.T) {
	other := NewAvailabilitySlot(mustDate(t, "2024-06-12"), TimeSlotMorning, 30)

	day := ComposeDay(mustDate(t, "2024-06-11"), []*AvailabilitySlot{other})
	assert.Equal(t, ClosedSlotView(), day.Morning)
}

func TestGroupByDay_SortedOnePerDate(t *testing.T) {
	slots := []*AvailabilitySlot{
		NewAvailabilitySlot(mustDate(t, "2024-06-12"), TimeSlotAfternoon, 10),
		NewAvailabilitySlot(mustDate(t, "2024-06-10"), TimeSlotMorning, 10),
		NewAvailabilitySlot(mustDate(t, "2024-06-12"), TimeSlotMorning, 10),
		NewAvailabilitySlot(mustDate(t, "2024-06-10"), TimeSlotAfternoon, 10),
	}

	days := GroupByDay(slots)
	require.Len(t, days, 2)
	assert.Equal(t, mustDate(t, "2024-06-10"), days[0].Date)
	assert.Equal(t, mustDate(t, "2024-06-12"), days[1].Date)
	assert.True(t, days[1].Morning.Available)
	assert.True(t, days[1].Afternoon.Available)
}

func TestGroupByDay_Empty(t *testing.T) {
	assert.Empty(t, GroupByDay(nil))
}

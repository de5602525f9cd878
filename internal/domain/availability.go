package domain

import (
	"sort"
	"time"
)

// SlotView состояние слота, отдаваемое календарю
type SlotView struct {
	Available bool
	Capacity  int
	Reserved  int
}

// ClosedSlotView представление отсутствующего слота
func ClosedSlotView() SlotView {
	return SlotView{Available: false, Capacity: 0, Reserved: 0}
}

// DayAvailability оба слота одной даты
type DayAvailability struct {
	Date      time.Time
	Morning   SlotView
	Afternoon SlotView
}

// ComposeDay собирает DayAvailability из слотов даты
// Отсутствующий слот заменяется на ClosedSlotView
func ComposeDay(date time.Time, slots []*AvailabilitySlot) DayAvailability {
	day := DayAvailability{
		Date:      NormalizeDate(date),
		Morning:   ClosedSlotView(),
		Afternoon: ClosedSlotView(),
	}

	for _, slot := range slots {
		if slot == nil || !NormalizeDate(slot.Date).Equal(day.Date) {
			continue
		}
		switch slot.TimeSlot {
		case TimeSlotMorning:
			day.Morning = slot.View()
		case TimeSlotAfternoon:
			day.Afternoon = slot.View()
		}
	}

	return day
}

// GroupByDay группирует слоты по датам, по одному DayAvailability на дату
// Результат отсортирован по возрастанию даты
func GroupByDay(slots []*AvailabilitySlot) []DayAvailability {
	byDate := make(map[time.Time][]*AvailabilitySlot)
	for _, slot := range slots {
		date := NormalizeDate(slot.Date)
		byDate[date] = append(byDate[date], slot)
	}

	dates := make([]time.Time, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	days := make([]DayAvailability, 0, len(dates))
	for _, date := range dates {
		days = append(days, ComposeDay(date, byDate[date]))
	}
	return days
}

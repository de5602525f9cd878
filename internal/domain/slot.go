package domain

import (
	"fmt"
	"time"
)

// TimeSlot половина дня, на которую можно забронировать посещение
type TimeSlot string

const (
	TimeSlotMorning   TimeSlot = "morning"
	TimeSlotAfternoon TimeSlot = "afternoon"
)

// AllTimeSlots все слоты дня в порядке следования
var AllTimeSlots = []TimeSlot{TimeSlotMorning, TimeSlotAfternoon}

// ParseTimeSlot конвертирует строку в TimeSlot с валидацией
func ParseTimeSlot(s string) (TimeSlot, error) {
	ts := TimeSlot(s)
	if !ts.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeSlot, s)
	}
	return ts, nil
}

func (ts TimeSlot) IsValid() bool {
	return ts == TimeSlotMorning || ts == TimeSlotAfternoon
}

func (ts TimeSlot) String() string {
	return string(ts)
}

// SlotKey составной ключ слота (дата, половина дня)
type SlotKey struct {
	Date     time.Time
	TimeSlot TimeSlot
}

// NewSlotKey создает ключ с нормализованной датой
func NewSlotKey(date time.Time, ts TimeSlot) SlotKey {
	return SlotKey{Date: NormalizeDate(date), TimeSlot: ts}
}

// String "2024-06-10/morning"
func (k SlotKey) String() string {
	return k.Date.Format(DateFormat) + "/" + string(k.TimeSlot)
}

// AvailabilitySlot вместимость и занятость одной половины дня
type AvailabilitySlot struct {
	Date      time.Time
	TimeSlot  TimeSlot
	Capacity  int
	Reserved  int  // сумма участников всех бронирований слота
	Available bool // флаг администратора, закрывает слот независимо от остатка мест
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAvailabilitySlot создает открытый слот без бронирований
func NewAvailabilitySlot(date time.Time, ts TimeSlot, capacity int) *AvailabilitySlot {
	return &AvailabilitySlot{
		Date:      NormalizeDate(date),
		TimeSlot:  ts,
		Capacity:  capacity,
		Reserved:  0,
		Available: true,
	}
}

// Key возвращает составной ключ слота
func (s *AvailabilitySlot) Key() SlotKey {
	return NewSlotKey(s.Date, s.TimeSlot)
}

// Validate проверяет инварианты слота
func (s *AvailabilitySlot) Validate() error {
	if !s.TimeSlot.IsValid() {
		return fmt.Errorf("%w: time slot %q", ErrInvalidSlot, s.TimeSlot)
	}
	if s.Capacity < 0 {
		return fmt.Errorf("%w: capacity must be non-negative, got %d", ErrInvalidSlot, s.Capacity)
	}
	if s.Reserved < 0 {
		return fmt.Errorf("%w: reserved must be non-negative, got %d", ErrInvalidSlot, s.Reserved)
	}
	return nil
}

// Remaining остаток мест (не меньше нуля)
func (s *AvailabilitySlot) Remaining() int {
	if s.Reserved >= s.Capacity {
		return 0
	}
	return s.Capacity - s.Reserved
}

// View представление слота для календаря
func (s *AvailabilitySlot) View() SlotView {
	return SlotView{
		Available: s.Available,
		Capacity:  s.Capacity,
		Reserved:  s.Reserved,
	}
}

// SlotMutator чистое преобразование слота, применяемое под блокировкой записи хранилища
type SlotMutator func(slot AvailabilitySlot) (AvailabilitySlot, error)

// Book занимает participants мест
// Слот должен быть открыт и вмещать participants сверх уже занятых
func Book(participants int) SlotMutator {
	return func(slot AvailabilitySlot) (AvailabilitySlot, error) {
		if participants <= 0 {
			return slot, fmt.Errorf("%w: %d", ErrInvalidParticipants, participants)
		}
		if !slot.Available {
			return slot, ErrSlotClosed
		}
		if slot.Reserved+participants > slot.Capacity {
			return slot, fmt.Errorf("%w: %d reserved, %d requested, capacity %d",
				ErrCapacityExceeded, slot.Reserved, participants, slot.Capacity)
		}
		slot.Reserved += participants
		return slot, nil
	}
}

// Release освобождает participants мест, не опуская Reserved ниже нуля
func Release(participants int) SlotMutator {
	return func(slot AvailabilitySlot) (AvailabilitySlot, error) {
		slot.Reserved -= participants
		if slot.Reserved < 0 {
			slot.Reserved = 0
		}
		return slot, nil
	}
}

// Configure перезаписывает вместимость и флаг доступности
func Configure(capacity int, available bool) SlotMutator {
	return func(slot AvailabilitySlot) (AvailabilitySlot, error) {
		if capacity < 0 {
			return slot, fmt.Errorf("%w: capacity must be non-negative, got %d", ErrInvalidSlot, capacity)
		}
		slot.Capacity = capacity
		slot.Available = available
		return slot, nil
	}
}

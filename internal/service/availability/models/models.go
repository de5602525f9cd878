package models

import (
	"github.com/m04kA/ForestReservationService/internal/domain"
)

// Request модели

// UpdateAvailabilityRequest запрос на настройку слота администратором
type UpdateAvailabilityRequest struct {
	Date      string `json:"date"`
	TimeSlot  string `json:"timeSlot"`
	Capacity  int    `json:"capacity"`
	Available bool   `json:"available"`
}

// Response модели

// SlotResponse состояние слота
type SlotResponse struct {
	Date      string `json:"date"`
	TimeSlot  string `json:"timeSlot"`
	Capacity  int    `json:"capacity"`
	Reserved  int    `json:"reserved"`
	Available bool   `json:"available"`
}

// SlotViewResponse слот внутри дня
type SlotViewResponse struct {
	Available bool `json:"available"`
	Capacity  int  `json:"capacity"`
	Reserved  int  `json:"reserved"`
}

// DayResponse доступность одной даты
type DayResponse struct {
	Date      string           `json:"date"`
	Morning   SlotViewResponse `json:"morning"`
	Afternoon SlotViewResponse `json:"afternoon"`
}

// MonthResponse доступность месяца: только даты, для которых есть слоты
type MonthResponse struct {
	YearMonth string        `json:"yearMonth"`
	Days      []DayResponse `json:"days"`
}

// Конвертеры из domain моделей

// FromDomainSlot конвертирует domain.AvailabilitySlot в SlotResponse
func FromDomainSlot(slot *domain.AvailabilitySlot) *SlotResponse {
	if slot == nil {
		return nil
	}
	return &SlotResponse{
		Date:      slot.Date.Format(domain.DateFormat),
		TimeSlot:  string(slot.TimeSlot),
		Capacity:  slot.Capacity,
		Reserved:  slot.Reserved,
		Available: slot.Available,
	}
}

// FromDomainDay конвертирует domain.DayAvailability в DayResponse
func FromDomainDay(day domain.DayAvailability) DayResponse {
	return DayResponse{
		Date:      day.Date.Format(domain.DateFormat),
		Morning:   fromView(day.Morning),
		Afternoon: fromView(day.Afternoon),
	}
}

func fromView(v domain.SlotView) SlotViewResponse {
	return SlotViewResponse{
		Available: v.Available,
		Capacity:  v.Capacity,
		Reserved:  v.Reserved,
	}
}

package availability

import (
	"time"

	"github.com/m04kA/ForestReservationService/internal/domain"
)

// cachedSlot представление слота в кэше
type cachedSlot struct {
	Date      string    `json:"date"`
	TimeSlot  string    `json:"timeSlot"`
	Capacity  int       `json:"capacity"`
	Reserved  int       `json:"reserved"`
	Available bool      `json:"available"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toCached(slots []*domain.AvailabilitySlot) []cachedSlot {
	result := make([]cachedSlot, 0, len(slots))
	for _, s := range slots {
		result = append(result, cachedSlot{
			Date:      s.Date.Format(domain.DateFormat),
			TimeSlot:  string(s.TimeSlot),
			Capacity:  s.Capacity,
			Reserved:  s.Reserved,
			Available: s.Available,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		})
	}
	return result
}

func fromCached(cached []cachedSlot) ([]*domain.AvailabilitySlot, error) {
	result := make([]*domain.AvailabilitySlot, 0, len(cached))
	for _, c := range cached {
		date, err := domain.ParseDate(c.Date)
		if err != nil {
			return nil, err
		}
		ts, err := domain.ParseTimeSlot(c.TimeSlot)
		if err != nil {
			return nil, err
		}
		result = append(result, &domain.AvailabilitySlot{
			Date:      date,
			TimeSlot:  ts,
			Capacity:  c.Capacity,
			Reserved:  c.Reserved,
			Available: c.Available,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		})
	}
	return result, nil
}

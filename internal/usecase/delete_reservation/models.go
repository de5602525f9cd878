package delete_reservation

import (
	"time"

	"github.com/m04kA/ForestReservationService/internal/domain"
)

// Response результат удаления бронирования
type Response struct {
	ID           string
	Date         time.Time
	TimeSlot     domain.TimeSlot
	Participants int  // сколько мест освобождено
	SlotReleased bool // false, если слот уже отсутствовал
}

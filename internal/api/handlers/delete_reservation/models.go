package delete_reservation

import (
	"github.com/m04kA/ForestReservationService/internal/domain"
	deleteReservation "github.com/m04kA/ForestReservationService/internal/usecase/delete_reservation"
)

// DeleteReservationResponse HTTP модель ответа
type DeleteReservationResponse struct {
	ID             string `json:"id"`
	Date           string `json:"date"`
	TimeSlot       string `json:"timeSlot"`
	ReleasedPlaces int    `json:"releasedPlaces"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *deleteReservation.Response) *DeleteReservationResponse {
	released := 0
	if resp.SlotReleased {
		released = resp.Participants
	}
	return &DeleteReservationResponse{
		ID:             resp.ID,
		Date:           resp.Date.Format(domain.DateFormat),
		TimeSlot:       string(resp.TimeSlot),
		ReleasedPlaces: released,
	}
}

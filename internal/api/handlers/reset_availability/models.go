package reset_availability

import (
	resetAvailability "github.com/m04kA/ForestReservationService/internal/usecase/reset_availability"
)

// ResetResponse HTTP модель ответа
type ResetResponse struct {
	DeletedReservations int64 `json:"deletedReservations"`
	DeletedSlots        int64 `json:"deletedSlots"`
	CreatedSlots        int64 `json:"createdSlots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *resetAvailability.Response) *ResetResponse {
	return &ResetResponse{
		DeletedReservations: resp.DeletedReservations,
		DeletedSlots:        resp.DeletedSlots,
		CreatedSlots:        resp.CreatedSlots,
	}
}

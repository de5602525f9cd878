package update_availability

import (
	"github.com/m04kA/ForestReservationService/internal/service/availability/models"
)

// UpdateAvailabilityRequest HTTP модель запроса, все поля обязательны
type UpdateAvailabilityRequest struct {
	Date      string `json:"date" validate:"required,date"`
	TimeSlot  string `json:"timeSlot" validate:"required,oneof=morning afternoon"`
	Capacity  *int   `json:"capacity" validate:"required,min=0"`
	Available *bool  `json:"available" validate:"required"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateAvailabilityRequest) ToServiceRequest() *models.UpdateAvailabilityRequest {
	return &models.UpdateAvailabilityRequest{
		Date:      r.Date,
		TimeSlot:  r.TimeSlot,
		Capacity:  *r.Capacity,
		Available: *r.Available,
	}
}

package update_availability

import (
	"context"

	"github.com/m04kA/ForestReservationService/internal/service/availability/models"
)

type AvailabilityService interface {
	UpdateAvailability(ctx context.Context, req *models.UpdateAvailabilityRequest) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package get_day_availability

import (
	"context"
	"time"

	"github.com/m04kA/ForestReservationService/internal/service/availability/models"
)

type AvailabilityService interface {
	GetDay(ctx context.Context, date time.Time) (*models.DayResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package get_month_availability

import (
	"context"
	"time"

	"github.com/m04kA/ForestReservationService/internal/service/availability/models"
)

type AvailabilityService interface {
	GetMonth(ctx context.Context, month time.Time) (*models.MonthResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package reset_availability

import (
	"context"

	resetAvailability "github.com/m04kA/ForestReservationService/internal/usecase/reset_availability"
)

type ResetAvailabilityUseCase interface {
	Execute(ctx context.Context) (*resetAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package delete_reservation

import (
	"context"

	deleteReservation "github.com/m04kA/ForestReservationService/internal/usecase/delete_reservation"
)

type DeleteReservationUseCase interface {
	Execute(ctx context.Context, id string) (*deleteReservation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

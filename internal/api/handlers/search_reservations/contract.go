package search_reservations

import (
	"context"

	"github.com/m04kA/ForestReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	Search(ctx context.Context, req *models.SearchRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package health

import (
	"context"

	"github.com/m04kA/ForestReservationService/internal/service/seeding"
)

type Seeder interface {
	State() seeding.State
}

// Pinger проверка доступности хранилища, для memory адаптера не задается
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

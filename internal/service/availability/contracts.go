package availability

import (
	"context"
	"time"

	"github.com/m04kA/ForestReservationService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория слотов
type AvailabilityRepository interface {
	Get(ctx context.Context, key domain.SlotKey) (*domain.AvailabilitySlot, error)
	Create(ctx context.Context, slot *domain.AvailabilitySlot) error
	Update(ctx context.Context, key domain.SlotKey, mutate domain.SlotMutator) (*domain.AvailabilitySlot, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.AvailabilitySlot, error)
}

// Metrics учет изменений слотов
type Metrics interface {
	ObserveSlotMutation(operation string, err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

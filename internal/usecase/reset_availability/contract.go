package reset_availability

import "context"

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	DeleteAll(ctx context.Context) (int64, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	DeleteAll(ctx context.Context) (int64, error)
}

// Seeder засев календаря
type Seeder interface {
	Seed(ctx context.Context) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package availability

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/ForestReservationService/internal/domain"
)

// Repository декорируемый репозиторий слотов
type Repository interface {
	Get(ctx context.Context, key domain.SlotKey) (*domain.AvailabilitySlot, error)
	Create(ctx context.Context, slot *domain.AvailabilitySlot) error
	CreateManyIfAbsent(ctx context.Context, slots []*domain.AvailabilitySlot) (int64, error)
	Update(ctx context.Context, key domain.SlotKey, mutate domain.SlotMutator) (*domain.AvailabilitySlot, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.AvailabilitySlot, error)
	DeleteAll(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// Cache подмножество команд redis, используемых кэшем (*redis.Client)
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
}

// Metrics учет попаданий в кэш
type Metrics interface {
	ObserveCache(hit bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

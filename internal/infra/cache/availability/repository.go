package availability

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/m04kA/ForestReservationService/internal/domain"
	"github.com/m04kA/ForestReservationService/pkg/txmanager"
)

const (
	monthKeyPrefix = "availability:month:"

	// DefaultTTL время жизни закэшированного месяца
	DefaultTTL = 5 * time.Minute

	scanBatchSize = 100
)

// CachedRepository кэширует в redis выборку слотов за календарный месяц
// Любое изменение слота сбрасывает кэш его месяца сразу и повторно после коммита транзакции
type CachedRepository struct {
	repo    Repository
	cache   Cache
	ttl     time.Duration
	metrics Metrics
	logger  Logger

	// поколения ключей: сброс увеличивает поколение, выборка, прочитанная
	// до сброса, в кэш не записывается
	genMu       sync.Mutex
	epoch       uint64
	generations map[string]uint64
}

type generation struct {
	epoch uint64
	key   uint64
}

// NewCachedRepository создает новый кэширующий репозиторий
func NewCachedRepository(repo Repository, cache Cache, ttl time.Duration, metrics Metrics, logger Logger) *CachedRepository {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CachedRepository{
		repo:        repo,
		cache:       cache,
		ttl:         ttl,
		metrics:     metrics,
		logger:      logger,
		generations: make(map[string]uint64),
	}
}

// Get читает слот мимо кэша
func (r *CachedRepository) Get(ctx context.Context, key domain.SlotKey) (*domain.AvailabilitySlot, error) {
	return r.repo.Get(ctx, key)
}

// Create создает слот и сбрасывает кэш месяца
func (r *CachedRepository) Create(ctx context.Context, slot *domain.AvailabilitySlot) error {
	if err := r.repo.Create(ctx, slot); err != nil {
		return err
	}
	r.invalidate(ctx, monthKey(slot.Date))
	return nil
}

// CreateManyIfAbsent создает слоты и сбрасывает кэш затронутых месяцев
func (r *CachedRepository) CreateManyIfAbsent(ctx context.Context, slots []*domain.AvailabilitySlot) (int64, error) {
	created, err := r.repo.CreateManyIfAbsent(ctx, slots)
	if err != nil {
		return created, err
	}
	if created > 0 {
		r.invalidate(ctx, monthKeys(slots)...)
	}
	return created, nil
}

// Update изменяет слот и сбрасывает кэш месяца
func (r *CachedRepository) Update(ctx context.Context, key domain.SlotKey, mutate domain.SlotMutator) (*domain.AvailabilitySlot, error) {
	slot, err := r.repo.Update(ctx, key, mutate)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, monthKey(key.Date))
	return slot, nil
}

// ListByDateRange для ровно одного календарного месяца читает через кэш
func (r *CachedRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.AvailabilitySlot, error) {
	if !domain.IsMonthRange(from, to) {
		return r.repo.ListByDateRange(ctx, from, to)
	}

	key := monthKey(from)

	cached, err := r.cache.Get(ctx, key).Result()
	if err == nil && cached != "" {
		var stored []cachedSlot
		if err := json.Unmarshal([]byte(cached), &stored); err == nil {
			if slots, err := fromCached(stored); err == nil {
				r.metrics.ObserveCache(true)
				return slots, nil
			}
		}
		r.logger.Warn("AvailabilityCache: corrupted entry key=%s, reloading", key)
	}
	r.metrics.ObserveCache(false)

	gen := r.generation(key)

	slots, err := r.repo.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	// внутри транзакции могут быть незакоммиченные данные
	if !txmanager.HasHooks(ctx) {
		r.store(ctx, key, gen, slots)
	}

	return slots, nil
}

// DeleteAll удаляет слоты и сбрасывает кэш всех месяцев
func (r *CachedRepository) DeleteAll(ctx context.Context) (int64, error) {
	deleted, err := r.repo.DeleteAll(ctx)
	if err != nil {
		return deleted, err
	}

	r.invalidateAll(ctx)
	if txmanager.HasHooks(ctx) {
		txmanager.AfterCommit(ctx, func() { r.invalidateAll(context.WithoutCancel(ctx)) })
	}

	return deleted, nil
}

// Count считает слоты мимо кэша
func (r *CachedRepository) Count(ctx context.Context) (int64, error) {
	return r.repo.Count(ctx)
}

// store записывает выборку, если с момента gen ключ не сбрасывался
// Проверка и запись идут под genMu: сброс, случившийся позже, удалит уже записанное значение
func (r *CachedRepository) store(ctx context.Context, key string, gen generation, slots []*domain.AvailabilitySlot) {
	data, err := json.Marshal(toCached(slots))
	if err != nil {
		r.logger.Warn("AvailabilityCache: failed to marshal key=%s: %v", key, err)
		return
	}

	r.genMu.Lock()
	defer r.genMu.Unlock()

	if r.epoch != gen.epoch || r.generations[key] != gen.key {
		r.logger.Info("AvailabilityCache: key=%s invalidated during read, not cached", key)
		return
	}
	if err := r.cache.Set(ctx, key, string(data), r.ttl).Err(); err != nil {
		r.logger.Warn("AvailabilityCache: failed to set key=%s: %v", key, err)
	}
}

func (r *CachedRepository) generation(key string) generation {
	r.genMu.Lock()
	defer r.genMu.Unlock()
	return generation{epoch: r.epoch, key: r.generations[key]}
}

func (r *CachedRepository) bump(keys ...string) {
	r.genMu.Lock()
	defer r.genMu.Unlock()
	for _, key := range keys {
		r.generations[key]++
	}
}

func (r *CachedRepository) bumpAll() {
	r.genMu.Lock()
	defer r.genMu.Unlock()
	r.epoch++
	r.generations = make(map[string]uint64)
}

// invalidate удаляет ключи сейчас и еще раз после коммита текущей транзакции
func (r *CachedRepository) invalidate(ctx context.Context, keys ...string) {
	r.bump(keys...)
	r.del(ctx, keys...)
	if txmanager.HasHooks(ctx) {
		txmanager.AfterCommit(ctx, func() {
			r.bump(keys...)
			r.del(context.WithoutCancel(ctx), keys...)
		})
	}
}

func (r *CachedRepository) del(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := r.cache.Del(ctx, keys...).Err(); err != nil {
		r.logger.Warn("AvailabilityCache: failed to delete keys=%v: %v", keys, err)
	}
}

func (r *CachedRepository) invalidateAll(ctx context.Context) {
	r.bumpAll()

	var cursor uint64
	for {
		keys, next, err := r.cache.Scan(ctx, cursor, monthKeyPrefix+"*", scanBatchSize).Result()
		if err != nil {
			r.logger.Warn("AvailabilityCache: failed to scan keys: %v", err)
			return
		}
		r.del(ctx, keys...)

		cursor = next
		if cursor == 0 {
			return
		}
	}
}

func monthKey(date time.Time) string {
	return monthKeyPrefix + date.Format(domain.MonthFormat)
}

func monthKeys(slots []*domain.AvailabilitySlot) []string {
	seen := make(map[string]struct{})
	keys := make([]string, 0)
	for _, slot := range slots {
		key := monthKey(slot.Date)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return keys
}

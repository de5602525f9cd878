package memory

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/ForestReservationService/internal/domain"
	"github.com/m04kA/ForestReservationService/internal/infra/storage"
)

// AvailabilityRepository слоты доступности в памяти
type AvailabilityRepository struct {
	store *Store
}

// Get возвращает копию слота или storage.ErrSlotNotFound
func (r *AvailabilityRepository) Get(_ context.Context, key domain.SlotKey) (*domain.AvailabilitySlot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	slot, ok := r.store.slots[key.String()]
	if !ok {
		return nil, storage.ErrSlotNotFound
	}
	return &slot, nil
}

// Create создает слот или возвращает storage.ErrDuplicateSlot
func (r *AvailabilityRepository) Create(ctx context.Context, slot *domain.AvailabilitySlot) error {
	if err := slot.Validate(); err != nil {
		return err
	}

	key := slot.Key()
	now := time.Now()

	return r.store.write(ctx, func() error {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()

		if _, exists := r.store.slots[key.String()]; exists {
			return storage.ErrDuplicateSlot
		}

		slot.Date = key.Date
		slot.CreatedAt = now
		slot.UpdatedAt = now
		r.store.slots[key.String()] = *slot

		journal(ctx, func() { r.restore(key, nil) })
		return nil
	})
}

// CreateManyIfAbsent создает слоты, которых еще нет
func (r *AvailabilityRepository) CreateManyIfAbsent(ctx context.Context, slots []*domain.AvailabilitySlot) (int64, error) {
	for _, slot := range slots {
		if err := slot.Validate(); err != nil {
			return 0, err
		}
	}

	now := time.Now()

	var created int64
	err := r.store.write(ctx, func() error {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()

		for _, slot := range slots {
			key := slot.Key()
			if _, exists := r.store.slots[key.String()]; exists {
				continue
			}

			stored := *slot
			stored.Date = key.Date
			stored.CreatedAt = now
			stored.UpdatedAt = now
			r.store.slots[key.String()] = stored
			created++

			journal(ctx, func() { r.restore(key, nil) })
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return created, nil
}

// Update применяет mutate к слоту
// Чтение и запись выполняются под блокировкой записи хранилища и не пересекаются с другими изменениями
func (r *AvailabilityRepository) Update(ctx context.Context, key domain.SlotKey, mutate domain.SlotMutator) (*domain.AvailabilitySlot, error) {
	var updated domain.AvailabilitySlot

	err := r.store.write(ctx, func() error {
		current, err := r.Get(ctx, key)
		if err != nil {
			return err
		}

		next, err := mutate(*current)
		if err != nil {
			return err
		}
		if err := next.Validate(); err != nil {
			return err
		}

		r.store.mu.Lock()
		defer r.store.mu.Unlock()

		next.Date = key.Date
		next.TimeSlot = key.TimeSlot
		next.UpdatedAt = time.Now()
		r.store.slots[key.String()] = next
		updated = next

		previous := *current
		journal(ctx, func() { r.restore(key, &previous) })
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// ListByDateRange возвращает слоты с датой в [from, to), по дате и слоту
func (r *AvailabilityRepository) ListByDateRange(_ context.Context, from, to time.Time) ([]*domain.AvailabilitySlot, error) {
	from, to = domain.NormalizeDate(from), domain.NormalizeDate(to)

	r.store.mu.RLock()
	slots := make([]*domain.AvailabilitySlot, 0)
	for _, slot := range r.store.slots {
		if slot.Date.Before(from) || !slot.Date.Before(to) {
			continue
		}
		s := slot
		slots = append(slots, &s)
	}
	r.store.mu.RUnlock()

	sort.Slice(slots, func(i, j int) bool {
		if !slots[i].Date.Equal(slots[j].Date) {
			return slots[i].Date.Before(slots[j].Date)
		}
		return slotOrder(slots[i].TimeSlot) < slotOrder(slots[j].TimeSlot)
	})

	return slots, nil
}

// DeleteAll удаляет все слоты
func (r *AvailabilityRepository) DeleteAll(ctx context.Context) (int64, error) {
	var removed map[string]domain.AvailabilitySlot

	_ = r.store.write(ctx, func() error {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()

		removed = r.store.slots
		r.store.slots = make(map[string]domain.AvailabilitySlot)

		journal(ctx, func() {
			r.store.mu.Lock()
			defer r.store.mu.Unlock()
			for k, v := range removed {
				r.store.slots[k] = v
			}
		})
		return nil
	})

	return int64(len(removed)), nil
}

// Count возвращает количество слотов
func (r *AvailabilityRepository) Count(_ context.Context) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return int64(len(r.store.slots)), nil
}

// restore возвращает ключ к прежнему состоянию (nil: слота не было)
func (r *AvailabilityRepository) restore(key domain.SlotKey, previous *domain.AvailabilitySlot) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if previous == nil {
		delete(r.store.slots, key.String())
		return
	}
	r.store.slots[key.String()] = *previous
}

func slotOrder(ts domain.TimeSlot) int {
	if ts == domain.TimeSlotMorning {
		return 0
	}
	return 1
}

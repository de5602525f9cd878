package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/ForestReservationService/internal/domain"
	"github.com/m04kA/ForestReservationService/internal/infra/storage"
)

// ReservationRepository бронирования в памяти
type ReservationRepository struct {
	store *Store
}

// Create сохраняет бронирование
// Как и внешний ключ в PostgreSQL, требует существования слота
func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	return r.store.write(ctx, func() error {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()

		if _, exists := r.store.reservations[res.ID]; exists {
			return storage.ErrDuplicateReservation
		}
		if _, exists := r.store.slots[res.SlotKey().String()]; !exists {
			return storage.ErrSlotNotFound
		}

		res.Date = domain.NormalizeDate(res.Date)
		res.CreatedAt = time.Now()
		r.store.reservations[res.ID] = *res

		id := res.ID
		journal(ctx, func() {
			r.store.mu.Lock()
			defer r.store.mu.Unlock()
			delete(r.store.reservations, id)
		})
		return nil
	})
}

// NextSequence возвращает следующий порядковый номер бронирования за день
func (r *ReservationRepository) NextSequence(ctx context.Context, day time.Time) (int, error) {
	key := day.Format(domain.DateFormat)

	var seq int
	_ = r.store.write(ctx, func() error {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()

		r.store.counters[key]++
		seq = r.store.counters[key]

		journal(ctx, func() {
			r.store.mu.Lock()
			defer r.store.mu.Unlock()
			r.store.counters[key]--
		})
		return nil
	})
	return seq, nil
}

// GetByID возвращает копию бронирования или storage.ErrReservationNotFound
func (r *ReservationRepository) GetByID(_ context.Context, id string) (*domain.Reservation, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	res, ok := r.store.reservations[id]
	if !ok {
		return nil, storage.ErrReservationNotFound
	}
	return &res, nil
}

// Search ищет бронирования по фильтру
func (r *ReservationRepository) Search(_ context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	query := strings.ToLower(strings.TrimSpace(filter.Query))

	var monthFrom, monthTo time.Time
	if filter.Month != nil {
		monthFrom, monthTo = domain.MonthRange(*filter.Month)
	}

	r.store.mu.RLock()
	result := make([]*domain.Reservation, 0)
	for _, res := range r.store.reservations {
		if filter.Date != nil && !res.Date.Equal(domain.NormalizeDate(*filter.Date)) {
			continue
		}
		if filter.Month != nil && (res.Date.Before(monthFrom) || !res.Date.Before(monthTo)) {
			continue
		}
		if filter.TimeSlot != nil && res.TimeSlot != *filter.TimeSlot {
			continue
		}
		if query != "" && !matches(res, query) {
			continue
		}
		found := res
		result = append(result, &found)
	}
	r.store.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.TimeSlot != b.TimeSlot {
			return slotOrder(a.TimeSlot) < slotOrder(b.TimeSlot)
		}
		return a.ID < b.ID
	})

	return result, nil
}

// Delete удаляет бронирование
func (r *ReservationRepository) Delete(ctx context.Context, id string) error {
	return r.store.write(ctx, func() error {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()

		res, ok := r.store.reservations[id]
		if !ok {
			return storage.ErrReservationNotFound
		}
		delete(r.store.reservations, id)

		journal(ctx, func() {
			r.store.mu.Lock()
			defer r.store.mu.Unlock()
			r.store.reservations[id] = res
		})
		return nil
	})
}

// DeleteAll удаляет все бронирования, счетчики идентификаторов сохраняются
func (r *ReservationRepository) DeleteAll(ctx context.Context) (int64, error) {
	var removed map[string]domain.Reservation

	_ = r.store.write(ctx, func() error {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()

		removed = r.store.reservations
		r.store.reservations = make(map[string]domain.Reservation)

		journal(ctx, func() {
			r.store.mu.Lock()
			defer r.store.mu.Unlock()
			for k, v := range removed {
				r.store.reservations[k] = v
			}
		})
		return nil
	})

	return int64(len(removed)), nil
}

func matches(res domain.Reservation, query string) bool {
	return strings.Contains(strings.ToLower(res.OrganizationName), query) ||
		strings.Contains(strings.ToLower(res.ContactName), query) ||
		strings.Contains(strings.ToLower(res.Phone), query)
}

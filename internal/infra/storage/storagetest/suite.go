// Package storagetest общий набор проверок для адаптеров хранилища
package storagetest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ForestReservationService/internal/domain"
	"github.com/m04kA/ForestReservationService/internal/infra/storage"
	"github.com/m04kA/ForestReservationService/pkg/ptr"
)

// AvailabilityRepository проверяемый репозиторий слотов
type AvailabilityRepository interface {
	Get(ctx context.Context, key domain.SlotKey) (*domain.AvailabilitySlot, error)
	Create(ctx context.Context, slot *domain.AvailabilitySlot) error
	CreateManyIfAbsent(ctx context.Context, slots []*domain.AvailabilitySlot) (int64, error)
	Update(ctx context.Context, key domain.SlotKey, mutate domain.SlotMutator) (*domain.AvailabilitySlot, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.AvailabilitySlot, error)
	DeleteAll(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// ReservationRepository проверяемый репозиторий бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) error
	NextSequence(ctx context.Context, day time.Time) (int, error)
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	Search(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}

// TxManager менеджер транзакций адаптера
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Adapter набор зависимостей одного адаптера
type Adapter struct {
	Availability AvailabilityRepository
	Reservations ReservationRepository
	TxManager    TxManager
}

// Factory создает адаптер с пустым хранилищем
type Factory func(t *testing.T) Adapter

var errAbort = errors.New("storagetest: abort transaction")

// Run запускает общий набор проверок для адаптера
func Run(t *testing.T, newAdapter Factory) {
	tests := []struct {
		name string
		fn   func(t *testing.T, a Adapter)
	}{
		{"CreateAndGetSlot", testCreateAndGetSlot},
		{"UpdateMissingSlot", testUpdateMissingSlot},
		{"UpdateMutatorErrorKeepsSlot", testUpdateMutatorErrorKeepsSlot},
		{"ConcurrentIncrements", testConcurrentIncrements},
		{"CreateManyIfAbsentIdempotent", testCreateManyIfAbsent},
		{"ListByDateRange", testListByDateRange},
		{"DeleteAllSlots", testDeleteAllSlots},
		{"TransactionRollback", testTransactionRollback},
		{"ReservationLifecycle", testReservationLifecycle},
		{"NextSequencePerDay", testNextSequence},
		{"SearchReservations", testSearchReservations},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, newAdapter(t))
		})
	}
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

func createSlot(t *testing.T, a Adapter, day string, ts domain.TimeSlot, capacity int) domain.SlotKey {
	t.Helper()
	slot := domain.NewAvailabilitySlot(date(t, day), ts, capacity)
	require.NoError(t, a.Availability.Create(context.Background(), slot))
	return slot.Key()
}

func testCreateAndGetSlot(t *testing.T, a Adapter) {
	ctx := context.Background()
	key := createSlot(t, a, "2030-06-10", domain.TimeSlotMorning, 30)

	got, err := a.Availability.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, key.Date, got.Date)
	assert.Equal(t, domain.TimeSlotMorning, got.TimeSlot)
	assert.Equal(t, 30, got.Capacity)
	assert.Equal(t, 0, got.Reserved)
	assert.True(t, got.Available)

	err = a.Availability.Create(ctx, domain.NewAvailabilitySlot(key.Date, key.TimeSlot, 10))
	assert.ErrorIs(t, err, storage.ErrDuplicateSlot)

	_, err = a.Availability.Get(ctx, domain.NewSlotKey(key.Date, domain.TimeSlotAfternoon))
	assert.ErrorIs(t, err, storage.ErrSlotNotFound)
}

func testUpdateMissingSlot(t *testing.T, a Adapter) {
	key := domain.NewSlotKey(date(t, "2030-06-10"), domain.TimeSlotMorning)

	_, err := a.Availability.Update(context.Background(), key, domain.Book(1))
	assert.ErrorIs(t, err, storage.ErrSlotNotFound)
}

func testUpdateMutatorErrorKeepsSlot(t *testing.T, a Adapter) {
	ctx := context.Background()
	key := createSlot(t, a, "2030-06-10", domain.TimeSlotMorning, 5)

	updated, err := a.Availability.Update(ctx, key, domain.Book(4))
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Reserved)

	_, err = a.Availability.Update(ctx, key, domain.Book(2))
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)

	_, err = a.Availability.Update(ctx, key, domain.Configure(5, false))
	require.NoError(t, err)
	_, err = a.Availability.Update(ctx, key, domain.Book(1))
	assert.ErrorIs(t, err, domain.ErrSlotClosed)

	got, err := a.Availability.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Reserved)
	assert.False(t, got.Available)
}

func testConcurrentIncrements(t *testing.T, a Adapter) {
	ctx := context.Background()
	key := createSlot(t, a, "2030-06-10", domain.TimeSlotMorning, domain.DefaultSlotCapacity)

	var wg sync.WaitGroup
	for _, n := range []int{3, 4} {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := a.Availability.Update(ctx, key, domain.Book(n))
			assert.NoError(t, err)
		}(n)
	}
	wg.Wait()

	got, err := a.Availability.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Reserved)

	const workers = 100
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := a.Availability.Update(ctx, key, domain.Book(1))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err = a.Availability.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 7+workers, got.Reserved)
}

func testCreateManyIfAbsent(t *testing.T, a Adapter) {
	ctx := context.Background()
	createSlot(t, a, "2030-06-10", domain.TimeSlotMorning, 7)

	var slots []*domain.AvailabilitySlot
	for _, day := range []string{"2030-06-10", "2030-06-11"} {
		for _, ts := range domain.AllTimeSlots {
			slots = append(slots, domain.NewAvailabilitySlot(date(t, day), ts, domain.DefaultSlotCapacity))
		}
	}

	created, err := a.Availability.CreateManyIfAbsent(ctx, slots)
	require.NoError(t, err)
	assert.Equal(t, int64(3), created)

	created, err = a.Availability.CreateManyIfAbsent(ctx, slots)
	require.NoError(t, err)
	assert.Equal(t, int64(0), created)

	count, err := a.Availability.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)

	existing, err := a.Availability.Get(ctx, domain.NewSlotKey(date(t, "2030-06-10"), domain.TimeSlotMorning))
	require.NoError(t, err)
	assert.Equal(t, 7, existing.Capacity)
}

func testListByDateRange(t *testing.T, a Adapter) {
	ctx := context.Background()
	createSlot(t, a, "2030-05-31", domain.TimeSlotMorning, 1)
	createSlot(t, a, "2030-06-15", domain.TimeSlotAfternoon, 1)
	createSlot(t, a, "2030-06-01", domain.TimeSlotAfternoon, 1)
	createSlot(t, a, "2030-06-01", domain.TimeSlotMorning, 1)
	createSlot(t, a, "2030-07-01", domain.TimeSlotMorning, 1)

	from, to := domain.MonthRange(date(t, "2030-06-01"))
	slots, err := a.Availability.ListByDateRange(ctx, from, to)
	require.NoError(t, err)
	require.Len(t, slots, 3)

	assert.Equal(t, "2030-06-01/morning", slots[0].Key().String())
	assert.Equal(t, "2030-06-01/afternoon", slots[1].Key().String())
	assert.Equal(t, "2030-06-15/afternoon", slots[2].Key().String())

	empty, err := a.Availability.ListByDateRange(ctx, date(t, "2031-01-01"), date(t, "2031-02-01"))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func testDeleteAllSlots(t *testing.T, a Adapter) {
	ctx := context.Background()
	createSlot(t, a, "2030-06-10", domain.TimeSlotMorning, 1)
	createSlot(t, a, "2030-06-10", domain.TimeSlotAfternoon, 1)

	deleted, err := a.Availability.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	count, err := a.Availability.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func testTransactionRollback(t *testing.T, a Adapter) {
	ctx := context.Background()
	key := createSlot(t, a, "2030-06-10", domain.TimeSlotMorning, 10)

	err := a.TxManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := a.Availability.Update(txCtx, key, domain.Book(5)); err != nil {
			return err
		}
		if _, err := a.Reservations.NextSequence(txCtx, date(t, "2030-06-01")); err != nil {
			return err
		}
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)

	got, err := a.Availability.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Reserved)

	seq, err := a.Reservations.NextSequence(ctx, date(t, "2030-06-01"))
	require.NoError(t, err)
	assert.Equal(t, 1, seq)
}

func newReservation(t *testing.T, id, day string, ts domain.TimeSlot, org, contact, phone string) *domain.Reservation {
	return &domain.Reservation{
		ID:                  id,
		Date:                date(t, day),
		TimeSlot:            ts,
		OrganizationName:    org,
		ContactName:         contact,
		Phone:               phone,
		Participants:        5,
		DesiredActivity:     domain.ActivityForestWalk,
		ParentParticipation: domain.ParentUndecided,
	}
}

func testReservationLifecycle(t *testing.T, a Adapter) {
	ctx := context.Background()
	createSlot(t, a, "2030-06-10", domain.TimeSlotMorning, 10)

	res := newReservation(t, "AR-300601-0001", "2030-06-10", domain.TimeSlotMorning, "Kodomo Nursery", "Tanaka", "090-1234-5678")
	res.Notes = ptr.Ptr("allergy: nuts")
	require.NoError(t, a.Reservations.Create(ctx, res))
	assert.False(t, res.CreatedAt.IsZero())

	err := a.Reservations.Create(ctx, newReservation(t, "AR-300601-0001", "2030-06-10", domain.TimeSlotMorning, "x", "y", "z"))
	assert.ErrorIs(t, err, storage.ErrDuplicateReservation)

	got, err := a.Reservations.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, res.ID, got.ID)
	assert.Equal(t, res.Date, got.Date)
	assert.Equal(t, "Kodomo Nursery", got.OrganizationName)
	assert.Equal(t, 5, got.Participants)
	assert.Equal(t, domain.ActivityForestWalk, got.DesiredActivity)
	require.NotNil(t, got.Notes)
	assert.Equal(t, "allergy: nuts", *got.Notes)

	require.NoError(t, a.Reservations.Delete(ctx, res.ID))
	assert.ErrorIs(t, a.Reservations.Delete(ctx, res.ID), storage.ErrReservationNotFound)

	_, err = a.Reservations.GetByID(ctx, res.ID)
	assert.ErrorIs(t, err, storage.ErrReservationNotFound)
}

func testNextSequence(t *testing.T, a Adapter) {
	ctx := context.Background()
	june1, june2 := date(t, "2030-06-01"), date(t, "2030-06-02")

	for want := 1; want <= 3; want++ {
		seq, err := a.Reservations.NextSequence(ctx, june1)
		require.NoError(t, err)
		assert.Equal(t, want, seq)
	}

	seq, err := a.Reservations.NextSequence(ctx, june2)
	require.NoError(t, err)
	assert.Equal(t, 1, seq)
}

func testSearchReservations(t *testing.T, a Adapter) {
	ctx := context.Background()
	createSlot(t, a, "2030-06-10", domain.TimeSlotMorning, 100)
	createSlot(t, a, "2030-06-10", domain.TimeSlotAfternoon, 100)
	createSlot(t, a, "2030-07-01", domain.TimeSlotMorning, 100)

	for _, res := range []*domain.Reservation{
		newReservation(t, "AR-300501-0002", "2030-06-10", domain.TimeSlotAfternoon, "Sunflower Kindergarten", "Sato", "03-1111-2222"),
		newReservation(t, "AR-300501-0001", "2030-06-10", domain.TimeSlotMorning, "Kodomo Nursery", "Tanaka", "090-1234-5678"),
		newReservation(t, "AR-300501-0003", "2030-07-01", domain.TimeSlotMorning, "Forest Friends", "Suzuki", "080-9999-0000"),
	} {
		require.NoError(t, a.Reservations.Create(ctx, res))
	}

	ids := func(list []*domain.Reservation) []string {
		out := make([]string, 0, len(list))
		for _, r := range list {
			out = append(out, r.ID)
		}
		return out
	}

	all, err := a.Reservations.Search(ctx, domain.ReservationFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"AR-300501-0001", "AR-300501-0002", "AR-300501-0003"}, ids(all))

	byDate, err := a.Reservations.Search(ctx, domain.ReservationFilter{Date: ptr.Ptr(date(t, "2030-06-10"))})
	require.NoError(t, err)
	assert.Equal(t, []string{"AR-300501-0001", "AR-300501-0002"}, ids(byDate))

	byMonth, err := a.Reservations.Search(ctx, domain.ReservationFilter{Month: ptr.Ptr(date(t, "2030-07-01"))})
	require.NoError(t, err)
	assert.Equal(t, []string{"AR-300501-0003"}, ids(byMonth))

	bySlot, err := a.Reservations.Search(ctx, domain.ReservationFilter{TimeSlot: ptr.Ptr(domain.TimeSlotAfternoon)})
	require.NoError(t, err)
	assert.Equal(t, []string{"AR-300501-0002"}, ids(bySlot))

	byQuery, err := a.Reservations.Search(ctx, domain.ReservationFilter{Query: "kodomo"})
	require.NoError(t, err)
	assert.Equal(t, []string{"AR-300501-0001"}, ids(byQuery))

	byPhone, err := a.Reservations.Search(ctx, domain.ReservationFilter{Query: "9999"})
	require.NoError(t, err)
	assert.Equal(t, []string{"AR-300501-0003"}, ids(byPhone))

	deleted, err := a.Reservations.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
}

package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ForestReservationService/internal/domain"
	"github.com/m04kA/ForestReservationService/internal/infra/storage"
	"github.com/m04kA/ForestReservationService/pkg/txmanager"
)

func testKey(t *testing.T) domain.SlotKey {
	d, err := domain.ParseDate("2030-06-10")
	require.NoError(t, err)
	return domain.NewSlotKey(d, domain.TimeSlotMorning)
}

func TestUpdate_MutatorErrorKeepsSlot(t *testing.T) {
	store := NewStore()
	repo := store.Availability()
	key := testKey(t)
	require.NoError(t, repo.Create(context.Background(), domain.NewAvailabilitySlot(key.Date, key.TimeSlot, 10)))

	_, err := repo.Update(context.Background(), key, domain.Book(20))
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)

	slot, err := repo.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Zero(t, slot.Reserved)

	// блокировка записи свободна
	_, err = repo.Update(context.Background(), key, domain.Book(3))
	assert.NoError(t, err)
}

func TestUpdate_WaitsForOpenTransaction(t *testing.T) {
	store := NewStore()
	repo := store.Availability()
	ctx := context.Background()
	key := testKey(t)
	require.NoError(t, repo.Create(ctx, domain.NewAvailabilitySlot(key.Date, key.TimeSlot, 20)))

	var adminDone atomic.Bool
	adminErr := make(chan error, 1)
	abort := errors.New("abort")

	err := store.TxManager().Do(ctx, func(txCtx context.Context) error {
		if _, err := repo.Update(txCtx, key, domain.Book(5)); err != nil {
			return err
		}

		go func() {
			_, err := repo.Update(ctx, key, domain.Configure(10, false))
			adminDone.Store(true)
			adminErr <- err
		}()

		time.Sleep(50 * time.Millisecond)
		assert.False(t, adminDone.Load(), "write outside transaction must wait for commit or rollback")
		return abort
	})
	require.ErrorIs(t, err, abort)
	require.NoError(t, <-adminErr)

	slot, err := repo.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 10, slot.Capacity)
	assert.False(t, slot.Available)
	assert.Zero(t, slot.Reserved)
}

func TestCreate_WaitsForOpenTransactionDeleteAll(t *testing.T) {
	store := NewStore()
	repo := store.Availability()
	ctx := context.Background()
	key := testKey(t)
	require.NoError(t, repo.Create(ctx, domain.NewAvailabilitySlot(key.Date, key.TimeSlot, 20)))

	other := domain.NewSlotKey(key.Date, domain.TimeSlotAfternoon)
	createErr := make(chan error, 1)
	abort := errors.New("abort")

	err := store.TxManager().Do(ctx, func(txCtx context.Context) error {
		if _, err := repo.DeleteAll(txCtx); err != nil {
			return err
		}

		go func() {
			createErr <- repo.Create(ctx, domain.NewAvailabilitySlot(other.Date, other.TimeSlot, 7))
		}()

		time.Sleep(50 * time.Millisecond)
		return abort
	})
	require.ErrorIs(t, err, abort)
	require.NoError(t, <-createErr)

	// откат вернул удаленный слот и не затронул созданный после транзакции
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	slot, err := repo.Get(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, 7, slot.Capacity)
}

func TestTxManager_RollbackHooksRunAfterUnlock(t *testing.T) {
	store := NewStore()
	repo := store.Availability()
	ctx := context.Background()
	key := testKey(t)

	var hookErr error
	err := store.TxManager().Do(ctx, func(txCtx context.Context) error {
		txmanager.AfterRollback(txCtx, func() {
			hookErr = repo.Create(ctx, domain.NewAvailabilitySlot(key.Date, key.TimeSlot, 1))
		})
		return errors.New("fail")
	})
	require.Error(t, err)
	require.NoError(t, hookErr)

	_, err = repo.Get(ctx, key)
	assert.NoError(t, err)
}

func TestTxManager_RollbackRestoresDeletes(t *testing.T) {
	store := NewStore()
	slots := store.Availability()
	reservations := store.Reservations()
	ctx := context.Background()
	key := testKey(t)

	require.NoError(t, slots.Create(ctx, domain.NewAvailabilitySlot(key.Date, key.TimeSlot, 10)))
	require.NoError(t, reservations.Create(ctx, &domain.Reservation{ID: "AR-300601-0001", Date: key.Date, TimeSlot: key.TimeSlot, Participants: 1}))

	abort := errors.New("abort")
	err := store.TxManager().Do(ctx, func(txCtx context.Context) error {
		if _, err := reservations.DeleteAll(txCtx); err != nil {
			return err
		}
		if _, err := slots.DeleteAll(txCtx); err != nil {
			return err
		}
		return abort
	})
	require.ErrorIs(t, err, abort)

	count, err := slots.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = reservations.GetByID(ctx, "AR-300601-0001")
	assert.NoError(t, err)
}

func TestTxManager_HooksRunAfterCommit(t *testing.T) {
	store := NewStore()
	var calls int

	err := store.TxManager().Do(context.Background(), func(txCtx context.Context) error {
		txmanager.AfterCommit(txCtx, func() { calls++ })
		assert.Zero(t, calls)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	err = store.TxManager().Do(context.Background(), func(txCtx context.Context) error {
		txmanager.AfterCommit(txCtx, func() { calls++ })
		return errors.New("fail")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestTxManager_NestedJoinsOuter(t *testing.T) {
	store := NewStore()
	tm := store.TxManager()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		err := tm.Do(context.Background(), func(outer context.Context) error {
			return tm.Do(outer, func(context.Context) error { return nil })
		})
		assert.NoError(t, err)
	}()
	wg.Wait()
}

func TestReservationCreate_RequiresSlot(t *testing.T) {
	store := NewStore()
	key := testKey(t)

	err := store.Reservations().Create(context.Background(), &domain.Reservation{ID: "AR-300601-0001", Date: key.Date, TimeSlot: key.TimeSlot})
	assert.ErrorIs(t, err, storage.ErrSlotNotFound)
}

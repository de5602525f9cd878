package seeding

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ForestReservationService/internal/domain"
	"github.com/m04kA/ForestReservationService/internal/infra/storage/memory"
	"github.com/m04kA/ForestReservationService/pkg/logger"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type failingRepo struct{ err error }

func (r failingRepo) CreateManyIfAbsent(context.Context, []*domain.AvailabilitySlot) (int64, error) {
	return 0, r.err
}

func testConfig() Config {
	return Config{
		Location:        time.UTC,
		ClosedWeekday:   time.Tuesday,
		SeedDays:        14,
		DefaultCapacity: domain.DefaultSlotCapacity,
	}
}

func TestPlan_SkipsClosedWeekday(t *testing.T) {
	// 2024-06-01 суббота, вторники: 06-04 и 06-11
	today := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	slots := Plan(today, testConfig())
	require.Len(t, slots, (14-2)*2)

	for _, slot := range slots {
		assert.NotEqual(t, time.Tuesday, slot.Date.Weekday(), slot.Key().String())
		assert.Equal(t, domain.DefaultSlotCapacity, slot.Capacity)
		assert.Equal(t, 0, slot.Reserved)
		assert.True(t, slot.Available)
	}
	assert.Equal(t, "2024-06-01/morning", slots[0].Key().String())
	assert.Equal(t, "2024-06-01/afternoon", slots[1].Key().String())
	assert.Equal(t, "2024-06-14/afternoon", slots[len(slots)-1].Key().String())
}

func TestSeeder_Today_UsesLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	cfg := testConfig()
	cfg.Location = tokyo

	seeder, err := NewSeeder(memory.NewStore().Availability(), cfg, logger.NewNop())
	require.NoError(t, err)
	seeder.WithTimeProvider(fixedTime{time.Date(2024, 5, 31, 20, 0, 0, 0, time.UTC)})

	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), seeder.Today())
}

func TestSeeder_IdempotentAndStates(t *testing.T) {
	store := memory.NewStore()
	seeder, err := NewSeeder(store.Availability(), testConfig(), logger.NewNop())
	require.NoError(t, err)
	seeder.WithTimeProvider(fixedTime{time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)})

	assert.Equal(t, StateUnseeded, seeder.State())

	created, err := seeder.EnsureSeeded(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(24), created)
	assert.Equal(t, StateSeeded, seeder.State())

	created, err = seeder.Seed(context.Background())
	require.NoError(t, err)
	assert.Zero(t, created)

	count, err := store.Availability().Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(24), count)
}

func TestSeeder_HealsPartialSeed(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	today := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	partial := Plan(today, testConfig())[:5]
	_, err := store.Availability().CreateManyIfAbsent(ctx, partial)
	require.NoError(t, err)

	// слот, настроенный администратором, не перезаписывается
	_, err = store.Availability().Update(ctx, partial[0].Key(), domain.Configure(10, false))
	require.NoError(t, err)

	seeder, err := NewSeeder(store.Availability(), testConfig(), logger.NewNop())
	require.NoError(t, err)
	seeder.WithTimeProvider(fixedTime{today})

	created, err := seeder.EnsureSeeded(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(24-5), created)

	slot, err := store.Availability().Get(ctx, partial[0].Key())
	require.NoError(t, err)
	assert.Equal(t, 10, slot.Capacity)
	assert.False(t, slot.Available)
}

func TestSeeder_FailureReturnsToUnseeded(t *testing.T) {
	seeder, err := NewSeeder(failingRepo{err: errors.New("db down")}, testConfig(), logger.NewNop())
	require.NoError(t, err)

	_, err = seeder.EnsureSeeded(context.Background())
	assert.ErrorIs(t, err, ErrSeedFailed)
	assert.Equal(t, StateUnseeded, seeder.State())
}

func TestSeeder_RollbackRestoresPriorState(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	seeder, err := NewSeeder(failingRepo{err: errors.New("db down")}, testConfig(), logger.NewNop())
	require.NoError(t, err)
	seeder.state.Store(int32(StateSeeded))

	err = store.TxManager().Do(ctx, func(txCtx context.Context) error {
		_, err := seeder.Seed(txCtx)
		assert.Equal(t, StateUnseeded, seeder.State())
		return err
	})
	require.ErrorIs(t, err, ErrSeedFailed)
	assert.Equal(t, StateSeeded, seeder.State())
}

func TestSeeder_RollbackAfterSuccessfulSeed(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	seeder, err := NewSeeder(store.Availability(), testConfig(), logger.NewNop())
	require.NoError(t, err)
	seeder.WithTimeProvider(fixedTime{time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)})

	abort := errors.New("abort")
	err = store.TxManager().Do(ctx, func(txCtx context.Context) error {
		if _, err := seeder.Seed(txCtx); err != nil {
			return err
		}
		assert.Equal(t, StateSeeded, seeder.State())
		return abort
	})
	require.ErrorIs(t, err, abort)

	assert.Equal(t, StateUnseeded, seeder.State())
	count, err := store.Availability().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNewSeeder_InvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.SeedDays = 0

	_, err := NewSeeder(memory.NewStore().Availability(), cfg, logger.NewNop())
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "unseeded", StateUnseeded.String())
	assert.Equal(t, "seeding", StateSeeding.String())
	assert.Equal(t, "seeded", StateSeeded.String())
}

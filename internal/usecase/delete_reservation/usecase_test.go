package delete_reservation

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

type nopMetrics struct{}

func (nopMetrics) ObserveSlotMutation(string, error) {}

// failingSlotRepo отказывает при освобождении мест
type failingSlotRepo struct{}

func (failingSlotRepo) Update(context.Context, domain.SlotKey, domain.SlotMutator) (*domain.AvailabilitySlot, error) {
	return nil, errors.New("deadlock detected")
}

var testDate = time.Date(2030, 6, 10, 0, 0, 0, 0, time.UTC)

func seed(t *testing.T, reserved int, participants int) *memory.Store {
	store := memory.NewStore()
	ctx := context.Background()

	slot := domain.NewAvailabilitySlot(testDate, domain.TimeSlotMorning, 50)
	slot.Reserved = reserved
	require.NoError(t, store.Availability().Create(ctx, slot))

	require.NoError(t, store.Reservations().Create(ctx, &domain.Reservation{
		ID:           "AR-300601-0001",
		Date:         testDate,
		TimeSlot:     domain.TimeSlotMorning,
		Participants: participants,
	}))
	return store
}

func TestExecute_ReleasesPlaces(t *testing.T) {
	store := seed(t, 12, 5)
	uc := NewUseCase(store.Reservations(), store.Availability(), store.TxManager(), nopMetrics{}, logger.NewNop())
	ctx := context.Background()

	resp, err := uc.Execute(ctx, "AR-300601-0001")
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Participants)
	assert.True(t, resp.SlotReleased)

	slot, err := store.Availability().Get(ctx, domain.NewSlotKey(testDate, domain.TimeSlotMorning))
	require.NoError(t, err)
	assert.Equal(t, 7, slot.Reserved)

	_, err = uc.Execute(ctx, "AR-300601-0001")
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestExecute_ReleaseFloorsAtZero(t *testing.T) {
	store := seed(t, 2, 5)
	uc := NewUseCase(store.Reservations(), store.Availability(), store.TxManager(), nopMetrics{}, logger.NewNop())
	ctx := context.Background()

	_, err := uc.Execute(ctx, "AR-300601-0001")
	require.NoError(t, err)

	slot, err := store.Availability().Get(ctx, domain.NewSlotKey(testDate, domain.TimeSlotMorning))
	require.NoError(t, err)
	assert.Equal(t, 0, slot.Reserved)
}

func TestExecute_ReleaseFailureRollsBackDelete(t *testing.T) {
	store := seed(t, 5, 5)
	uc := NewUseCase(store.Reservations(), failingSlotRepo{}, store.TxManager(), nopMetrics{}, logger.NewNop())
	ctx := context.Background()

	_, err := uc.Execute(ctx, "AR-300601-0001")
	assert.ErrorIs(t, err, ErrInternal)

	_, err = store.Reservations().GetByID(ctx, "AR-300601-0001")
	assert.NoError(t, err)
}

func TestExecute_EmptyID(t *testing.T) {
	store := memory.NewStore()
	uc := NewUseCase(store.Reservations(), store.Availability(), store.TxManager(), nopMetrics{}, logger.NewNop())

	_, err := uc.Execute(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

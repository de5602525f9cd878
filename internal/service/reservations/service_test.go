package reservations

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ForestReservationService/internal/domain"
	"github.com/m04kA/ForestReservationService/internal/infra/storage/memory"
	"github.com/m04kA/ForestReservationService/internal/service/reservations/models"
	"github.com/m04kA/ForestReservationService/pkg/logger"
	"github.com/m04kA/ForestReservationService/pkg/ptr"
)

type brokenRepo struct{}

func (brokenRepo) GetByID(context.Context, string) (*domain.Reservation, error) {
	return nil, errors.New("connection reset")
}

func (brokenRepo) Search(context.Context, domain.ReservationFilter) ([]*domain.Reservation, error) {
	return nil, errors.New("connection reset")
}

func seedStore(t *testing.T) *memory.Store {
	store := memory.NewStore()
	ctx := context.Background()

	d, err := domain.ParseDate("2030-06-10")
	require.NoError(t, err)
	require.NoError(t, store.Availability().Create(ctx, domain.NewAvailabilitySlot(d, domain.TimeSlotMorning, 100)))

	require.NoError(t, store.Reservations().Create(ctx, &domain.Reservation{
		ID:                  "AR-300601-0001",
		Date:                d,
		TimeSlot:            domain.TimeSlotMorning,
		OrganizationName:    "Kodomo Nursery",
		ContactName:         "Tanaka",
		Phone:               "090-1234-5678",
		Participants:        12,
		DesiredActivity:     domain.ActivityCraft,
		ParentParticipation: domain.ParentParticipate,
	}))
	return store
}

func TestGetByID(t *testing.T) {
	svc := NewService(seedStore(t).Reservations(), logger.NewNop())

	got, err := svc.GetByID(context.Background(), "AR-300601-0001")
	require.NoError(t, err)
	assert.Equal(t, "2030-06-10", got.Date)
	assert.Equal(t, "morning", got.TimeSlot)
	assert.Equal(t, 12, got.Participants)
	assert.Equal(t, "craft", got.DesiredActivity)

	_, err = svc.GetByID(context.Background(), "AR-300601-0002")
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestGetByID_RepositoryError(t *testing.T) {
	svc := NewService(brokenRepo{}, logger.NewNop())

	_, err := svc.GetByID(context.Background(), "AR-300601-0001")
	assert.ErrorIs(t, err, ErrInternal)
}

func TestSearch(t *testing.T) {
	svc := NewService(seedStore(t).Reservations(), logger.NewNop())
	ctx := context.Background()

	found, err := svc.Search(ctx, &models.SearchRequest{Month: ptr.Ptr("2030-06"), Query: "TANAKA"})
	require.NoError(t, err)
	assert.Equal(t, 1, found.Total)

	none, err := svc.Search(ctx, &models.SearchRequest{TimeSlot: ptr.Ptr("afternoon")})
	require.NoError(t, err)
	assert.Equal(t, 0, none.Total)
	assert.NotNil(t, none.Reservations)
}

func TestSearch_InvalidFilter(t *testing.T) {
	svc := NewService(seedStore(t).Reservations(), logger.NewNop())
	ctx := context.Background()

	for _, req := range []*models.SearchRequest{
		{Date: ptr.Ptr("2030-6-1")},
		{Month: ptr.Ptr("2030-13")},
		{TimeSlot: ptr.Ptr("evening")},
	} {
		_, err := svc.Search(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

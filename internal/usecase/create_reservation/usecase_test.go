package create_reservation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ForestReservationService/internal/domain"
	"github.com/m04kA/ForestReservationService/internal/infra/storage/memory"
	"github.com/m04kA/ForestReservationService/pkg/logger"
	"github.com/m04kA/ForestReservationService/pkg/ptr"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopMetrics struct{}

func (nopMetrics) ObserveSlotMutation(string, error) {}

// 2024-06-01 10:00 по Токио
var testNow = time.Date(2024, 6, 1, 1, 0, 0, 0, time.UTC)

func newTestUseCase(t *testing.T, capacity int) (*UseCase, *memory.Store) {
	store := memory.NewStore()
	ctx := context.Background()

	d := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.Availability().Create(ctx, domain.NewAvailabilitySlot(d, domain.TimeSlotMorning, capacity)))

	closed := domain.NewAvailabilitySlot(d, domain.TimeSlotAfternoon, capacity)
	closed.Available = false
	require.NoError(t, store.Availability().Create(ctx, closed))

	uc := NewUseCase(
		store.Availability(),
		store.Reservations(),
		store.TxManager(),
		nopMetrics{},
		Config{Location: time.FixedZone("JST", 9*3600), MaxParticipants: 100},
		logger.NewNop(),
	).WithTimeProvider(fixedTime{testNow})

	return uc, store
}

func validRequest() *Request {
	return &Request{
		Date:                time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		TimeSlot:            domain.TimeSlotMorning,
		OrganizationName:    "  Kodomo Nursery ",
		ContactName:         "Tanaka",
		Phone:               "090-1234-5678",
		Participants:        5,
		DesiredActivity:     domain.ActivityNaturePlay,
		ParentParticipation: domain.ParentNotParticipate,
		Notes:               ptr.Ptr("   "),
	}
}

func TestExecute_Success(t *testing.T) {
	uc, store := newTestUseCase(t, domain.DefaultSlotCapacity)
	ctx := context.Background()

	resp, err := uc.Execute(ctx, validRequest())
	require.NoError(t, err)
	assert.Equal(t, "AR-240601-0001", resp.ID)
	assert.Equal(t, "Kodomo Nursery", resp.OrganizationName)
	assert.Nil(t, resp.Notes)
	assert.Equal(t, 5, resp.SlotReserved)

	second, err := uc.Execute(ctx, validRequest())
	require.NoError(t, err)
	assert.Equal(t, "AR-240601-0002", second.ID)

	slot, err := store.Availability().Get(ctx, domain.NewSlotKey(resp.Date, domain.TimeSlotMorning))
	require.NoError(t, err)
	assert.Equal(t, 10, slot.Reserved)

	stored, err := store.Reservations().GetByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Participants)
}

func TestExecute_SlotClosed(t *testing.T) {
	uc, _ := newTestUseCase(t, 10)

	req := validRequest()
	req.TimeSlot = domain.TimeSlotAfternoon
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotClosed)
}

func TestExecute_MissingSlotIsClosed(t *testing.T) {
	uc, _ := newTestUseCase(t, 10)

	req := validRequest()
	req.Date = time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotClosed)
}

func TestExecute_CapacityExceededLeavesNoTrace(t *testing.T) {
	uc, store := newTestUseCase(t, 4)
	ctx := context.Background()

	_, err := uc.Execute(ctx, validRequest())
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	found, err := store.Reservations().Search(ctx, domain.ReservationFilter{})
	require.NoError(t, err)
	assert.Empty(t, found)

	seq, err := store.Reservations().NextSequence(ctx, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, seq)
}

func TestExecute_PastDate(t *testing.T) {
	uc, _ := newTestUseCase(t, 10)

	req := validRequest()
	req.Date = time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_Validation(t *testing.T) {
	uc, _ := newTestUseCase(t, 10)

	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{"zero participants", func(r *Request) { r.Participants = 0 }},
		{"too many participants", func(r *Request) { r.Participants = 101 }},
		{"empty organization", func(r *Request) { r.OrganizationName = "   " }},
		{"long organization", func(r *Request) { r.OrganizationName = strings.Repeat("森", 101) }},
		{"long contact", func(r *Request) { r.ContactName = strings.Repeat("a", 51) }},
		{"bad phone", func(r *Request) { r.Phone = "call me" }},
		{"long phone", func(r *Request) { r.Phone = strings.Repeat("1", 21) }},
		{"bad activity", func(r *Request) { r.DesiredActivity = "swimming" }},
		{"bad participation", func(r *Request) { r.ParentParticipation = "sometimes" }},
		{"long notes", func(r *Request) { r.Notes = ptr.Ptr(strings.Repeat("x", 501)) }},
		{"bad slot", func(r *Request) { r.TimeSlot = "evening" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_NotesWithinLimit(t *testing.T) {
	uc, _ := newTestUseCase(t, 10)

	req := validRequest()
	req.Notes = ptr.Ptr(strings.Repeat("森", 500))
	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp.Notes)
}

func TestExecute_ConcurrentBookingsNeverOverbook(t *testing.T) {
	uc, store := newTestUseCase(t, 20)
	ctx := context.Background()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ids      = make(map[string]struct{})
		rejected int
	)

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := validRequest()
			req.Participants = 3
			resp, err := uc.Execute(ctx, req)

			mu.Lock()
			defer mu.Unlock()
			if errors.Is(err, ErrCapacityExceeded) {
				rejected++
				return
			}
			if assert.NoError(t, err) {
				ids[resp.ID] = struct{}{}
			}
		}()
	}
	wg.Wait()

	assert.Len(t, ids, 6)
	assert.Equal(t, 4, rejected)

	slot, err := store.Availability().Get(ctx, domain.NewSlotKey(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), domain.TimeSlotMorning))
	require.NoError(t, err)
	assert.Equal(t, 18, slot.Reserved)
}

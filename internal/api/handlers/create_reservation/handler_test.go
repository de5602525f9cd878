package create_reservation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ForestReservationService/internal/domain"
	createReservation "github.com/m04kA/ForestReservationService/internal/usecase/create_reservation"
	"github.com/m04kA/ForestReservationService/pkg/logger"
)

type stubUseCase struct {
	got  *createReservation.Request
	resp *createReservation.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *createReservation.Request) (*createReservation.Response, error) {
	s.got = req
	return s.resp, s.err
}

const validBody = `{
	"date": "2024-06-10",
	"timeSlot": "morning",
	"organizationName": "Sunny Kindergarten",
	"contactName": "Tanaka",
	"phone": "090-1234-5678",
	"participants": 5,
	"desiredActivity": "craft",
	"parentParticipation": "participate",
	"notes": "two educators"
}`

func post(h *Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/reservations", strings.NewReader(body)))
	return rec
}

func TestHandle_Created(t *testing.T) {
	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	uc := &stubUseCase{resp: &createReservation.Response{
		ID:           "AR-240601-0001",
		Date:         date,
		TimeSlot:     domain.TimeSlotMorning,
		Participants: 5,
		SlotCapacity: 20,
		SlotReserved: 15,
	}}

	rec := post(NewHandler(uc, logger.NewNop()), validBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	require.NotNil(t, uc.got)
	assert.True(t, uc.got.Date.Equal(date))
	assert.Equal(t, domain.ActivityCraft, uc.got.DesiredActivity)
	assert.Equal(t, domain.ParentParticipate, uc.got.ParentParticipation)
	require.NotNil(t, uc.got.Notes)
	assert.Equal(t, "two educators", *uc.got.Notes)

	var body struct {
		Success bool                `json:"success"`
		Data    ReservationResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "AR-240601-0001", body.Data.ID)
	assert.Equal(t, "2024-06-10", body.Data.Date)
	assert.Equal(t, 5, body.Data.RemainingPlaces)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "slot closed", err: createReservation.ErrSlotClosed, status: http.StatusConflict},
		{name: "capacity exceeded", err: fmt.Errorf("%w: 3 > 2", createReservation.ErrCapacityExceeded), status: http.StatusConflict},
		{name: "daily limit", err: createReservation.ErrDailyLimitReached, status: http.StatusConflict},
		{name: "invalid input", err: createReservation.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "past date", err: createReservation.ErrInvalidDate, status: http.StatusBadRequest},
		{name: "internal", err: createReservation.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(NewHandler(&stubUseCase{err: tt.err}, logger.NewNop()), validBody)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandle_ValidationFailsBeforeUseCase(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "evening slot", body: strings.Replace(validBody, `"morning"`, `"evening"`, 1)},
		{name: "bad phone", body: strings.Replace(validBody, `090-1234-5678`, `call me`, 1)},
		{name: "unknown activity", body: strings.Replace(validBody, `"craft"`, `"swimming"`, 1)},
		{name: "missing organization", body: strings.Replace(validBody, `"Sunny Kindergarten"`, `""`, 1)},
		{name: "malformed json", body: `{"date":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &stubUseCase{}
			rec := post(NewHandler(uc, logger.NewNop()), tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, uc.got)
		})
	}
}

package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/ForestReservationService/internal/api/handlers"
	createReservation "github.com/m04kA/ForestReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректная дата, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные бронирования"
	msgPastDate           = "нельзя забронировать прошедшую дату"
	msgSlotClosed         = "выбранный слот закрыт для бронирования"
	msgCapacityExceeded   = "недостаточно свободных мест"
	msgDailyLimitReached  = "достигнут дневной лимит бронирований, попробуйте завтра"
	msgCreated            = "бронирование создано"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if msg, ok := handlers.Validate(&req); !ok {
		h.logger.Warn("POST /reservations - Validation failed: %s", msg)
		handlers.RespondBadRequest(w, msg)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createReservation.ErrInvalidDate):
			h.logger.Warn("POST /reservations - Past date: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, createReservation.ErrSlotClosed):
			h.logger.Warn("POST /reservations - Slot closed: date=%s, slot=%s", req.Date, req.TimeSlot)
			handlers.RespondConflict(w, msgSlotClosed)

		case errors.Is(err, createReservation.ErrCapacityExceeded):
			h.logger.Warn("POST /reservations - Capacity exceeded: date=%s, slot=%s, participants=%d",
				req.Date, req.TimeSlot, req.Participants)
			handlers.RespondConflict(w, msgCapacityExceeded)

		case errors.Is(err, createReservation.ErrDailyLimitReached):
			h.logger.Warn("POST /reservations - Daily limit reached")
			handlers.RespondConflict(w, msgDailyLimitReached)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: date=%s, slot=%s, error=%v",
				req.Date, req.TimeSlot, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: id=%s, date=%s, slot=%s",
		result.ID, req.Date, req.TimeSlot)
	handlers.RespondSuccess(w, http.StatusCreated, FromUseCaseResponse(result), msgCreated)
}

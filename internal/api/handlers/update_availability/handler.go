package update_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/ForestReservationService/internal/api/handlers"
	"github.com/m04kA/ForestReservationService/internal/service/availability"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные параметры слота"
	msgUpdated            = "доступность обновлена"
	msgSlotRemoved        = "слот удален сбросом календаря, повторите запрос"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/availability/update
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UpdateAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /availability/update - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if msg, ok := handlers.Validate(&req); !ok {
		h.logger.Warn("PATCH /availability/update - Validation failed: %s", msg)
		handlers.RespondBadRequest(w, msg)
		return
	}

	result, err := h.service.UpdateAvailability(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("PATCH /availability/update - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, availability.ErrSlotNotFound):
			h.logger.Warn("PATCH /availability/update - Slot %s/%s removed concurrently", req.Date, req.TimeSlot)
			handlers.RespondConflict(w, msgSlotRemoved)

		default:
			h.logger.Error("PATCH /availability/update - Failed to update %s/%s: %v", req.Date, req.TimeSlot, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /availability/update - Updated %s/%s: capacity=%d, available=%t",
		result.Date, result.TimeSlot, result.Capacity, result.Available)
	handlers.RespondSuccess(w, http.StatusOK, result, msgUpdated)
}

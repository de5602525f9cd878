package reset_availability

import (
	"net/http"

	"github.com/m04kA/ForestReservationService/internal/api/handlers"
)

const msgReset = "календарь сброшен и заполнен заново"

type Handler struct {
	useCase ResetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase ResetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/availability/reset
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		h.logger.Error("DELETE /availability/reset - Failed to reset calendar: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /availability/reset - Calendar reset: %d reservations, %d slots removed, %d slots created",
		result.DeletedReservations, result.DeletedSlots, result.CreatedSlots)
	handlers.RespondSuccess(w, http.StatusOK, FromUseCaseResponse(result), msgReset)
}

package search_reservations

import (
	"errors"
	"net/http"

	"github.com/m04kA/ForestReservationService/internal/api/handlers"
	"github.com/m04kA/ForestReservationService/internal/service/reservations"
)

const msgInvalidFilter = "некорректные параметры поиска"

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/reservations?date=&month=&timeSlot=&q=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := ParseQuery(r.URL.Query())

	if msg, ok := handlers.Validate(query); !ok {
		h.logger.Warn("GET /reservations - Validation failed: %s", msg)
		handlers.RespondBadRequest(w, msg)
		return
	}

	result, err := h.service.Search(r.Context(), query.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /reservations - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /reservations - Failed to search reservations: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

package get_day_availability

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/ForestReservationService/internal/api/handlers"
	"github.com/m04kA/ForestReservationService/internal/domain"
)

const msgInvalidDate = "некорректная дата, ожидается YYYY-MM-DD"

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

// Handle GET /api/availability/date/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := mux.Vars(r)["date"]

	date, err := domain.ParseDate(dateStr)
	if err != nil {
		h.logger.Warn("GET /availability/date/{date} - Invalid date: %q", dateStr)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetDay(r.Context(), date)
	if err != nil {
		h.logger.Error("GET /availability/date/{date} - Failed to get day %s: %v", dateStr, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

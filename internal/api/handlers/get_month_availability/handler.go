package get_month_availability

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/ForestReservationService/internal/api/handlers"
	"github.com/m04kA/ForestReservationService/internal/domain"
)

const msgInvalidMonth = "некорректный месяц, ожидается YYYY-MM"

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

// Handle GET /api/availability/{yearMonth}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	yearMonth := mux.Vars(r)["yearMonth"]

	month, err := domain.ParseYearMonth(yearMonth)
	if err != nil {
		h.logger.Warn("GET /availability/{yearMonth} - Invalid month: %q", yearMonth)
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	result, err := h.service.GetMonth(r.Context(), month)
	if err != nil {
		h.logger.Error("GET /availability/{yearMonth} - Failed to get month %s: %v", yearMonth, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

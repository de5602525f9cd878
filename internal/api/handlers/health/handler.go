package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/ForestReservationService/internal/api/handlers"
)

const (
	statusOK       = "ok"
	statusDegraded = "degraded"
	storageOK      = "ok"
	storageDown    = "unavailable"

	pingTimeout = 2 * time.Second

	msgStorageUnavailable = "хранилище недоступно"
)

type Handler struct {
	seeder Seeder
	pinger Pinger
	logger Logger
}

// NewHandler pinger может быть nil
func NewHandler(seeder Seeder, pinger Pinger, logger Logger) *Handler {
	return &Handler{
		seeder: seeder,
		pinger: pinger,
		logger: logger,
	}
}

// Handle GET /health
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resp := &HealthResponse{
		Status:  statusOK,
		Seeding: h.seeder.State().String(),
		Storage: storageOK,
	}

	if h.pinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		if err := h.pinger.PingContext(ctx); err != nil {
			h.logger.Error("GET /health - Storage ping failed: %v", err)
			resp.Status = statusDegraded
			resp.Storage = storageDown
			handlers.RespondErrorWithData(w, http.StatusServiceUnavailable, resp, msgStorageUnavailable)
			return
		}
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

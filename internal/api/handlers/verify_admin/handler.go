package verify_admin

import (
	"net/http"

	"github.com/m04kA/ForestReservationService/internal/api/handlers"
)

const msgVerified = "пароль администратора подтвержден"

// Handler отвечает 200, если запрос прошел AdminAuth
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Handle POST /api/admin/verify
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.RespondSuccess(w, http.StatusOK, map[string]bool{"verified": true}, msgVerified)
}

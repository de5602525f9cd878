package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	createReservationHandler "github.com/m04kA/ForestReservationService/internal/api/handlers/create_reservation"
	deleteReservationHandler "github.com/m04kA/ForestReservationService/internal/api/handlers/delete_reservation"
	getDayAvailabilityHandler "github.com/m04kA/ForestReservationService/internal/api/handlers/get_day_availability"
	getMonthAvailabilityHandler "github.com/m04kA/ForestReservationService/internal/api/handlers/get_month_availability"
	getReservationHandler "github.com/m04kA/ForestReservationService/internal/api/handlers/get_reservation"
	healthHandler "github.com/m04kA/ForestReservationService/internal/api/handlers/health"
	resetAvailabilityHandler "github.com/m04kA/ForestReservationService/internal/api/handlers/reset_availability"
	searchReservationsHandler "github.com/m04kA/ForestReservationService/internal/api/handlers/search_reservations"
	updateAvailabilityHandler "github.com/m04kA/ForestReservationService/internal/api/handlers/update_availability"
	verifyAdminHandler "github.com/m04kA/ForestReservationService/internal/api/handlers/verify_admin"
	"github.com/m04kA/ForestReservationService/internal/api/middleware"
	"github.com/m04kA/ForestReservationService/pkg/metrics"
)

// Handlers обработчики всех маршрутов
type Handlers struct {
	GetMonthAvailability *getMonthAvailabilityHandler.Handler
	GetDayAvailability   *getDayAvailabilityHandler.Handler
	UpdateAvailability   *updateAvailabilityHandler.Handler
	ResetAvailability    *resetAvailabilityHandler.Handler
	CreateReservation    *createReservationHandler.Handler
	GetReservation       *getReservationHandler.Handler
	SearchReservations   *searchReservationsHandler.Handler
	DeleteReservation    *deleteReservationHandler.Handler
	VerifyAdmin          *verifyAdminHandler.Handler
	Health               *healthHandler.Handler
}

// Options параметры роутера
type Options struct {
	AdminPasswordHash string
	Metrics           *metrics.Metrics // nil - метрики выключены
	MetricsPath       string
	Logger            middleware.Logger
}

// NewRouter собирает маршруты сервиса
func NewRouter(h Handlers, opts Options) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.RequestID)
	if opts.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(opts.Metrics))
		r.Handle(opts.MetricsPath, promhttp.Handler()).Methods(http.MethodGet)
	}

	r.HandleFunc("/health", h.Health.Handle).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	// /date/{date} регистрируется раньше /{yearMonth}
	api.HandleFunc("/availability/date/{date}", h.GetDayAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/{yearMonth}", h.GetMonthAvailability.Handle).Methods(http.MethodGet)

	api.HandleFunc("/reservations", h.CreateReservation.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Password)
	// ============================================================

	admin := api.NewRoute().Subrouter()
	admin.Use(middleware.AdminAuth(opts.AdminPasswordHash, opts.Logger))

	admin.HandleFunc("/admin/verify", h.VerifyAdmin.Handle).Methods(http.MethodPost)

	// --- Доступность ---
	admin.HandleFunc("/availability/update", h.UpdateAvailability.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/availability/reset", h.ResetAvailability.Handle).Methods(http.MethodDelete)

	// --- Бронирования ---
	admin.HandleFunc("/reservations", h.SearchReservations.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/reservations/{id}", h.GetReservation.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/reservations/{id}", h.DeleteReservation.Handle).Methods(http.MethodDelete)

	return r
}

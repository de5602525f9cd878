package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/ForestReservationService/internal/api"
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
	"github.com/m04kA/ForestReservationService/internal/config"
	availabilityService "github.com/m04kA/ForestReservationService/internal/service/availability"
	reservationsService "github.com/m04kA/ForestReservationService/internal/service/reservations"
	"github.com/m04kA/ForestReservationService/internal/service/seeding"
	createReservationUC "github.com/m04kA/ForestReservationService/internal/usecase/create_reservation"
	deleteReservationUC "github.com/m04kA/ForestReservationService/internal/usecase/delete_reservation"
	resetAvailabilityUC "github.com/m04kA/ForestReservationService/internal/usecase/reset_availability"
	"github.com/m04kA/ForestReservationService/pkg/logger"
	"github.com/m04kA/ForestReservationService/pkg/metrics"
	"github.com/m04kA/ForestReservationService/pkg/retry"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting ForestReservationService...")
	log.Info("Configuration loaded from %s (storage=%s)", configPath, cfg.Storage.Driver)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем хранилище (postgres или memory, опционально с redis кэшем)
	store, err := newStorage(ctx, cfg, metricsCollector, stopMetricsCh, log)
	if err != nil {
		log.Fatal("Failed to initialize storage: %v", err)
	}
	defer store.Close(log)

	location := cfg.Booking.Location()
	closedWeekday, _ := cfg.Booking.Weekday()

	// Засев календаря
	seeder, err := seeding.NewSeeder(store.slots, seeding.Config{
		Location:        location,
		ClosedWeekday:   closedWeekday,
		SeedDays:        cfg.Booking.SeedDays,
		DefaultCapacity: cfg.Booking.DefaultCapacity,
	}, log)
	if err != nil {
		log.Fatal("Failed to create seeder: %v", err)
	}

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(store.slots, metricsCollector, log)
	reservationsSvc := reservationsService.NewService(store.reservations, log)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		store.slots,
		store.reservations,
		store.txManager,
		metricsCollector,
		createReservationUC.Config{
			Location:        location,
			MaxParticipants: cfg.Booking.MaxParticipants,
		},
		log,
	)
	deleteReservationUseCase := deleteReservationUC.NewUseCase(
		store.reservations,
		store.slots,
		store.txManager,
		metricsCollector,
		log,
	)
	resetAvailabilityUseCase := resetAvailabilityUC.NewUseCase(
		store.reservations,
		store.slots,
		seeder,
		store.txManager,
		log,
	)

	// Инициализируем handlers
	router := api.NewRouter(api.Handlers{
		GetMonthAvailability: getMonthAvailabilityHandler.NewHandler(availabilitySvc, log),
		GetDayAvailability:   getDayAvailabilityHandler.NewHandler(availabilitySvc, log),
		UpdateAvailability:   updateAvailabilityHandler.NewHandler(availabilitySvc, log),
		ResetAvailability:    resetAvailabilityHandler.NewHandler(resetAvailabilityUseCase, log),
		CreateReservation:    createReservationHandler.NewHandler(createReservationUseCase, log),
		GetReservation:       getReservationHandler.NewHandler(reservationsSvc, log),
		SearchReservations:   searchReservationsHandler.NewHandler(reservationsSvc, log),
		DeleteReservation:    deleteReservationHandler.NewHandler(deleteReservationUseCase, log),
		VerifyAdmin:          verifyAdminHandler.NewHandler(),
		Health:               healthHandler.NewHandler(seeder, store.pinger, log),
	}, api.Options{
		AdminPasswordHash: cfg.Admin.PasswordHash,
		Metrics:           metricsCollector,
		MetricsPath:       cfg.Metrics.Path,
		Logger:            log,
	})

	if cfg.Admin.PasswordHash == "" {
		log.Warn("Admin password hash is not configured, admin routes will reject all requests")
	}

	// Засев идет в фоне, /health показывает его состояние
	go func() {
		result := retry.Do(ctx, retryConfig(cfg.Retry), func(ctx context.Context) error {
			_, err := seeder.EnsureSeeded(ctx)
			return err
		}, func(attempt int, err error, next time.Duration) {
			log.Warn("Calendar seeding failed (attempt %d): %v, retrying in %s", attempt, err, next)
		})
		if result.Err != nil {
			log.Error("Calendar seeding gave up after %d attempts: %v", result.Attempts, result.LastError)
		}
	}()

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	<-ctx.Done()

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	healthHandler "github.com/m04kA/ForestReservationService/internal/api/handlers/health"
	"github.com/m04kA/ForestReservationService/internal/config"
	"github.com/m04kA/ForestReservationService/internal/domain"
	cacheAvailability "github.com/m04kA/ForestReservationService/internal/infra/cache/availability"
	availabilityRepo "github.com/m04kA/ForestReservationService/internal/infra/storage/availability"
	"github.com/m04kA/ForestReservationService/internal/infra/storage/memory"
	reservationRepo "github.com/m04kA/ForestReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/ForestReservationService/pkg/dbmetrics"
	"github.com/m04kA/ForestReservationService/pkg/logger"
	"github.com/m04kA/ForestReservationService/pkg/metrics"
	"github.com/m04kA/ForestReservationService/pkg/retry"
	"github.com/m04kA/ForestReservationService/pkg/txmanager"
)

type reservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) error
	NextSequence(ctx context.Context, day time.Time) (int, error)
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	Search(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}

type transactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// storage выбранный адаптер хранилища
type storage struct {
	slots        cacheAvailability.Repository
	reservations reservationRepository
	txManager    transactionManager
	pinger       healthHandler.Pinger // nil для memory
	closers      []func() error
}

func (s *storage) Close(log *logger.Logger) {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			log.Error("Failed to close storage resource: %v", err)
		}
	}
}

func retryConfig(cfg config.RetryConfig) retry.Config {
	rc := retry.DefaultConfig()
	rc.MaxRetries = cfg.DBConnectMaxRetries
	rc.InitialInterval = cfg.InitialInterval()
	rc.MaxInterval = cfg.MaxInterval()
	return rc
}

func newStorage(ctx context.Context, cfg *config.Config, m *metrics.Metrics, stopCh <-chan struct{}, log *logger.Logger) (*storage, error) {
	var (
		s   *storage
		err error
	)

	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		store := memory.NewStore()
		s = &storage{
			slots:        store.Availability(),
			reservations: store.Reservations(),
			txManager:    store.TxManager(),
		}
		log.Info("Using in-memory storage")
	default:
		s, err = newPostgresStorage(ctx, cfg, m, stopCh, log)
		if err != nil {
			return nil, err
		}
	}

	if cfg.Redis.Enabled {
		client, err := newRedisClient(ctx, cfg, log)
		if err != nil {
			s.Close(log)
			return nil, err
		}
		s.closers = append(s.closers, client.Close)
		s.slots = cacheAvailability.NewCachedRepository(s.slots, client, cfg.Redis.CacheTTL(), m, log)
		log.Info("Availability month cache enabled (redis=%s, ttl=%s)", cfg.Redis.Addr(), cfg.Redis.CacheTTL())
	}

	return s, nil
}

func newPostgresStorage(ctx context.Context, cfg *config.Config, m *metrics.Metrics, stopCh <-chan struct{}, log *logger.Logger) (*storage, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение с повторами: БД может подниматься дольше сервиса
	result := retry.Do(ctx, retryConfig(cfg.Retry), func(ctx context.Context) error {
		return db.PingContext(ctx)
	}, func(attempt int, err error, next time.Duration) {
		log.Warn("Database ping failed (attempt %d): %v, retrying in %s", attempt, err, next)
	})
	if result.Err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database after %d attempts: %v: %w", result.Attempts, result.LastError, result.Err)
	}

	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, m, stopCh)

	return &storage{
		slots:        availabilityRepo.NewRepository(wrappedDB),
		reservations: reservationRepo.NewRepository(wrappedDB),
		txManager:    txmanager.NewTransactionManager(wrappedDB),
		pinger:       wrappedDB,
		closers:      []func() error{db.Close},
	}, nil
}

func newRedisClient(ctx context.Context, cfg *config.Config, log *logger.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	result := retry.Do(ctx, retryConfig(cfg.Retry), func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}, func(attempt int, err error, next time.Duration) {
		log.Warn("Redis ping failed (attempt %d): %v, retrying in %s", attempt, err, next)
	})
	if result.Err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis after %d attempts: %v: %w", result.Attempts, result.LastError, result.Err)
	}

	log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr(), cfg.Redis.DB)
	return client, nil
}

package seeding

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/m04kA/ForestReservationService/internal/domain"
	"github.com/m04kA/ForestReservationService/pkg/txmanager"
)

// Config параметры засева календаря
type Config struct {
	Location        *time.Location // часовой пояс, в котором считается "сегодня"
	ClosedWeekday   time.Weekday   // выходной день недели, слоты не создаются
	SeedDays        int
	DefaultCapacity int
}

// Seeder засевает календарь слотами на SeedDays дней вперед
// Засев идемпотентен: существующие слоты не изменяются, поэтому прерванный засев
// доводится до конца повторным запуском
type Seeder struct {
	repo         SlotRepository
	cfg          Config
	timeProvider TimeProvider
	logger       Logger

	state atomic.Int32
	runMu sync.Mutex
}

// NewSeeder создает новый экземпляр засевателя
func NewSeeder(repo SlotRepository, cfg Config, logger Logger) (*Seeder, error) {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.SeedDays <= 0 {
		return nil, fmt.Errorf("%w: seed days must be positive, got %d", ErrInvalidConfig, cfg.SeedDays)
	}
	if cfg.DefaultCapacity < 0 {
		return nil, fmt.Errorf("%w: default capacity must be non-negative, got %d", ErrInvalidConfig, cfg.DefaultCapacity)
	}

	return &Seeder{
		repo:         repo,
		cfg:          cfg,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}, nil
}

// WithTimeProvider подменяет источник времени
func (s *Seeder) WithTimeProvider(tp TimeProvider) *Seeder {
	s.timeProvider = tp
	return s
}

// State текущее состояние засева
func (s *Seeder) State() State {
	return State(s.state.Load())
}

// EnsureSeeded засевает календарь при старте сервиса
// Повторный вызов после успешного засева ничего не делает
func (s *Seeder) EnsureSeeded(ctx context.Context) (int64, error) {
	if s.State() == StateSeeded {
		return 0, nil
	}
	return s.Seed(ctx)
}

// Seed выполняет засев независимо от текущего состояния (используется при сбросе календаря)
// При ошибке состояние возвращается в unseeded
// Внутри транзакции откат возвращает состояние, которое было до засева
func (s *Seeder) Seed(ctx context.Context) (int64, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	prior := s.State()
	s.state.Store(int32(StateSeeding))

	today := s.Today()
	slots := Plan(today, s.cfg)

	s.logger.Info("Seed: seeding %d slots from %s for %d days, closed on %s",
		len(slots), today.Format(domain.DateFormat), s.cfg.SeedDays, s.cfg.ClosedWeekday)

	created, err := s.repo.CreateManyIfAbsent(ctx, slots)
	if err != nil {
		s.finish(ctx, StateUnseeded, prior)
		s.logger.Error("Seed: failed after %d created slots: %v", created, err)
		return created, fmt.Errorf("%w: %v", ErrSeedFailed, err)
	}

	s.finish(ctx, StateSeeded, prior)
	s.logger.Info("Seed: done, created=%d, skipped=%d", created, int64(len(slots))-created)

	return created, nil
}

// finish выставляет итоговое состояние засева
// Если транзакция вызывающего откатится, календарь вернется к прежнему виду, а с ним и состояние
func (s *Seeder) finish(ctx context.Context, state, prior State) {
	s.state.Store(int32(state))
	txmanager.AfterRollback(ctx, func() {
		if s.state.CompareAndSwap(int32(state), int32(prior)) {
			s.logger.Warn("Seed: transaction rolled back, state restored to %s", prior)
		}
	})
}

// Today текущая дата в настроенном часовом поясе
func (s *Seeder) Today() time.Time {
	return domain.NormalizeDate(s.timeProvider.Now().In(s.cfg.Location))
}

// Plan слоты, которые должны существовать в окне [today, today+SeedDays)
func Plan(today time.Time, cfg Config) []*domain.AvailabilitySlot {
	today = domain.NormalizeDate(today)

	slots := make([]*domain.AvailabilitySlot, 0, cfg.SeedDays*len(domain.AllTimeSlots))
	for i := 0; i < cfg.SeedDays; i++ {
		date := today.AddDate(0, 0, i)
		if date.Weekday() == cfg.ClosedWeekday {
			continue
		}
		for _, ts := range domain.AllTimeSlots {
			slots = append(slots, domain.NewAvailabilitySlot(date, ts, cfg.DefaultCapacity))
		}
	}
	return slots
}

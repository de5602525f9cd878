package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/ForestReservationService/internal/domain"
	"github.com/m04kA/ForestReservationService/internal/infra/storage"
	"github.com/m04kA/ForestReservationService/internal/service/availability/models"
)

// Service сервис календаря доступности
type Service struct {
	repo    AvailabilityRepository
	metrics Metrics
	logger  Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(repo AvailabilityRepository, metrics Metrics, logger Logger) *Service {
	return &Service{
		repo:    repo,
		metrics: metrics,
		logger:  logger,
	}
}

// GetSlot возвращает слот или nil, если слота нет
func (s *Service) GetSlot(ctx context.Context, date time.Time, timeSlot domain.TimeSlot) (*models.SlotResponse, error) {
	slot, err := s.repo.Get(ctx, domain.NewSlotKey(date, timeSlot))
	if err != nil {
		if errors.Is(err, storage.ErrSlotNotFound) {
			return nil, nil
		}
		s.logger.Error("GetSlot: repository error for %s/%s: %v", date.Format(domain.DateFormat), timeSlot, err)
		return nil, fmt.Errorf("%w: GetSlot - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSlot(slot), nil
}

// GetDay возвращает оба слота даты
// Отсутствующий слот отдается как закрытый с нулевой вместимостью
func (s *Service) GetDay(ctx context.Context, date time.Time) (*models.DayResponse, error) {
	date = domain.NormalizeDate(date)

	slots, err := s.repo.ListByDateRange(ctx, date, date.AddDate(0, 0, 1))
	if err != nil {
		s.logger.Error("GetDay: repository error for %s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetDay - repository error: %v", ErrInternal, err)
	}

	day := models.FromDomainDay(domain.ComposeDay(date, slots))
	return &day, nil
}

// GetMonth возвращает доступность по датам месяца, для которых есть хотя бы один слот
func (s *Service) GetMonth(ctx context.Context, month time.Time) (*models.MonthResponse, error) {
	from, to := domain.MonthRange(month)

	slots, err := s.repo.ListByDateRange(ctx, from, to)
	if err != nil {
		s.logger.Error("GetMonth: repository error for %s: %v", from.Format(domain.MonthFormat), err)
		return nil, fmt.Errorf("%w: GetMonth - repository error: %v", ErrInternal, err)
	}

	days := domain.GroupByDay(slots)

	response := &models.MonthResponse{
		YearMonth: from.Format(domain.MonthFormat),
		Days:      make([]models.DayResponse, 0, len(days)),
	}
	for _, day := range days {
		response.Days = append(response.Days, models.FromDomainDay(day))
	}

	return response, nil
}

// UpdateAvailability настраивает вместимость и доступность слота
// Если слота нет, он создается с указанными значениями
func (s *Service) UpdateAvailability(ctx context.Context, req *models.UpdateAvailabilityRequest) (*models.SlotResponse, error) {
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	timeSlot, err := domain.ParseTimeSlot(req.TimeSlot)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if req.Capacity < 0 {
		return nil, fmt.Errorf("%w: capacity must be non-negative", ErrInvalidInput)
	}

	s.logger.Info("UpdateAvailability: %s/%s capacity=%d available=%t",
		req.Date, timeSlot, req.Capacity, req.Available)

	key := domain.NewSlotKey(date, timeSlot)

	slot, err := s.repo.Update(ctx, key, domain.Configure(req.Capacity, req.Available))
	if errors.Is(err, storage.ErrSlotNotFound) {
		slot, err = s.createConfigured(ctx, key, req.Capacity, req.Available)
	}
	s.metrics.ObserveSlotMutation("configure", err)
	if err != nil {
		return nil, s.mapConfigureError(key, err)
	}

	return models.FromDomainSlot(slot), nil
}

// createConfigured создает слот, а при гонке с другим созданием применяет Configure
func (s *Service) createConfigured(ctx context.Context, key domain.SlotKey, capacity int, available bool) (*domain.AvailabilitySlot, error) {
	slot := domain.NewAvailabilitySlot(key.Date, key.TimeSlot, capacity)
	slot.Available = available

	err := s.repo.Create(ctx, slot)
	if err == nil {
		s.logger.Info("UpdateAvailability: created slot %s", key)
		return slot, nil
	}
	if errors.Is(err, storage.ErrDuplicateSlot) {
		return s.repo.Update(ctx, key, domain.Configure(capacity, available))
	}
	return nil, err
}

func (s *Service) mapConfigureError(key domain.SlotKey, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidSlot):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.Is(err, storage.ErrSlotNotFound):
		// слот удален сбросом календаря между созданием и настройкой
		s.logger.Warn("UpdateAvailability: slot %s not found", key)
		return ErrSlotNotFound
	default:
		s.logger.Error("UpdateAvailability: repository error for %s: %v", key, err)
		return fmt.Errorf("%w: UpdateAvailability - repository error: %v", ErrInternal, err)
	}
}

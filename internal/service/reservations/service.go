package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/ForestReservationService/internal/infra/storage"
	"github.com/m04kA/ForestReservationService/internal/service/reservations/models"
)

// Service сервис просмотра и поиска бронирований для администратора
type Service struct {
	repo   ReservationRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(repo ReservationRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetByID получает бронирование по идентификатору
func (s *Service) GetByID(ctx context.Context, id string) (*models.ReservationResponse, error) {
	reservation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%s not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	response := models.FromDomainReservation(reservation)
	return &response, nil
}

// Search ищет бронирования по дате, месяцу, слоту и подстроке
func (s *Service) Search(ctx context.Context, req *models.SearchRequest) (*models.ReservationListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("Search: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	list, err := s.repo.Search(ctx, filter)
	if err != nil {
		s.logger.Error("Search: repository error: %v", err)
		return nil, fmt.Errorf("%w: Search - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Search: found %d reservations", len(list))
	return models.FromDomainReservations(list), nil
}

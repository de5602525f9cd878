package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/ForestReservationService/internal/domain"
	"github.com/m04kA/ForestReservationService/internal/infra/storage"
)

// UseCase use case для создания бронирования
type UseCase struct {
	slotRepo        SlotRepository
	reservationRepo ReservationRepository
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	cfg             Config
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	metrics Metrics,
	cfg Config,
	logger Logger,
) *UseCase {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.MaxParticipants <= 0 {
		cfg.MaxParticipants = domain.DefaultMaxParticipants
	}
	return &UseCase{
		slotRepo:        slotRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		cfg:             cfg,
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования
// Места в слоте занимаются и бронирование сохраняется в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	normalizeRequest(req)

	uc.logger.Info("CreateReservation: date=%s, slot=%s, participants=%d, organization=%q",
		req.Date.Format(domain.DateFormat), req.TimeSlot, req.Participants, req.OrganizationName)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.cfg.MaxParticipants); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата посещения не должна быть в прошлом
	now := uc.timeProvider.Now().In(uc.cfg.Location)
	today := domain.NormalizeDate(now)
	if err := validateDate(req.Date, today); err != nil {
		uc.logger.Warn("CreateReservation: date %s is before today %s",
			req.Date.Format(domain.DateFormat), today.Format(domain.DateFormat))
		return nil, err
	}

	key := domain.NewSlotKey(req.Date, req.TimeSlot)

	var (
		reservation *domain.Reservation
		slot        *domain.AvailabilitySlot
	)

	// 3. Занимаем места и сохраняем бронирование в транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Атомарно занимаем места в слоте
		updated, err := uc.slotRepo.Update(txCtx, key, domain.Book(req.Participants))
		uc.metrics.ObserveSlotMutation("book", err)
		if err != nil {
			return uc.mapBookError(key, req.Participants, err)
		}
		slot = updated

		// 3.2. Получаем порядковый номер за день создания
		seq, err := uc.reservationRepo.NextSequence(txCtx, today)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get next sequence: %v", err)
			return fmt.Errorf("%w: failed to get next sequence: %v", ErrInternal, err)
		}
		if seq > domain.MaxDailySequence {
			uc.logger.Warn("CreateReservation: daily sequence exhausted for %s", today.Format(domain.DateFormat))
			return ErrDailyLimitReached
		}

		// 3.3. Сохраняем бронирование
		reservation = &domain.Reservation{
			ID:                  domain.FormatReservationID(now, seq),
			Date:                key.Date,
			TimeSlot:            key.TimeSlot,
			OrganizationName:    req.OrganizationName,
			ContactName:         req.ContactName,
			Phone:               req.Phone,
			Participants:        req.Participants,
			DesiredActivity:     req.DesiredActivity,
			ParentParticipation: req.ParentParticipation,
			Notes:               req.Notes,
		}

		if err := uc.reservationRepo.Create(txCtx, reservation); err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation id=%s: %v", reservation.ID, err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%s, slot %s reserved=%d/%d",
		reservation.ID, key, slot.Reserved, slot.Capacity)

	return &Response{
		ID:                  reservation.ID,
		Date:                reservation.Date,
		TimeSlot:            reservation.TimeSlot,
		OrganizationName:    reservation.OrganizationName,
		ContactName:         reservation.ContactName,
		Phone:               reservation.Phone,
		Participants:        reservation.Participants,
		DesiredActivity:     reservation.DesiredActivity,
		ParentParticipation: reservation.ParentParticipation,
		Notes:               reservation.Notes,
		CreatedAt:           reservation.CreatedAt,
		SlotCapacity:        slot.Capacity,
		SlotReserved:        slot.Reserved,
	}, nil
}

func (uc *UseCase) mapBookError(key domain.SlotKey, participants int, err error) error {
	switch {
	case errors.Is(err, storage.ErrSlotNotFound):
		uc.logger.Warn("CreateReservation: slot %s does not exist", key)
		return ErrSlotClosed
	case errors.Is(err, domain.ErrSlotClosed):
		uc.logger.Warn("CreateReservation: slot %s is closed", key)
		return ErrSlotClosed
	case errors.Is(err, domain.ErrCapacityExceeded):
		uc.logger.Warn("CreateReservation: not enough places in %s for %d participants: %v", key, participants, err)
		return ErrCapacityExceeded
	case errors.Is(err, domain.ErrInvalidParticipants):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		uc.logger.Error("CreateReservation: failed to book slot %s: %v", key, err)
		return fmt.Errorf("%w: failed to book slot: %v", ErrInternal, err)
	}
}

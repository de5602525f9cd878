package delete_reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/ForestReservationService/internal/domain"
	"github.com/m04kA/ForestReservationService/internal/infra/storage"
)

// UseCase use case для удаления бронирования администратором
type UseCase struct {
	reservationRepo ReservationRepository
	slotRepo        SlotRepository
	txManager       TransactionManager
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		slotRepo:        slotRepo,
		txManager:       txManager,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute удаляет бронирование и освобождает места в слоте в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, id string) (*Response, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}

	uc.logger.Info("DeleteReservation: id=%s", id)

	var result *Response

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Получаем бронирование (с блокировкой строки)
		reservation, err := uc.reservationRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, storage.ErrReservationNotFound) {
				uc.logger.Warn("DeleteReservation: reservation id=%s not found", id)
				return ErrReservationNotFound
			}
			uc.logger.Error("DeleteReservation: failed to get reservation id=%s: %v", id, err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		// 2. Удаляем бронирование
		if err := uc.reservationRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, storage.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			uc.logger.Error("DeleteReservation: failed to delete reservation id=%s: %v", id, err)
			return fmt.Errorf("%w: failed to delete reservation: %v", ErrInternal, err)
		}

		result = &Response{
			ID:           reservation.ID,
			Date:         reservation.Date,
			TimeSlot:     reservation.TimeSlot,
			Participants: reservation.Participants,
		}

		// 3. Освобождаем места
		key := reservation.SlotKey()
		_, err = uc.slotRepo.Update(txCtx, key, domain.Release(reservation.Participants))
		uc.metrics.ObserveSlotMutation("release", err)
		if err != nil {
			if errors.Is(err, storage.ErrSlotNotFound) {
				uc.logger.Warn("DeleteReservation: slot %s no longer exists, nothing to release", key)
				return nil
			}
			uc.logger.Error("DeleteReservation: failed to release slot %s: %v", key, err)
			return fmt.Errorf("%w: failed to release slot: %v", ErrInternal, err)
		}
		result.SlotReleased = true

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("DeleteReservation: successfully deleted reservation id=%s, released %d places",
		id, result.Participants)

	return result, nil
}

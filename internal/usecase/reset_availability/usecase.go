package reset_availability

import (
	"context"
	"fmt"
)

// UseCase use case для полного сброса календаря
type UseCase struct {
	reservationRepo ReservationRepository
	slotRepo        SlotRepository
	seeder          Seeder
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	slotRepo SlotRepository,
	seeder Seeder,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		slotRepo:        slotRepo,
		seeder:          seeder,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute удаляет все бронирования и слоты и засевает календарь заново
// Все шаги выполняются в одной транзакции: при ошибке календарь остается прежним
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	uc.logger.Info("ResetAvailability: started")

	result := &Response{}

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Удаляем бронирования (ссылаются на слоты)
		deleted, err := uc.reservationRepo.DeleteAll(txCtx)
		if err != nil {
			uc.logger.Error("ResetAvailability: failed to delete reservations: %v", err)
			return fmt.Errorf("%w: failed to delete reservations: %v", ErrInternal, err)
		}
		result.DeletedReservations = deleted

		// 2. Удаляем слоты
		deleted, err = uc.slotRepo.DeleteAll(txCtx)
		if err != nil {
			uc.logger.Error("ResetAvailability: failed to delete slots: %v", err)
			return fmt.Errorf("%w: failed to delete slots: %v", ErrInternal, err)
		}
		result.DeletedSlots = deleted

		// 3. Засеваем заново
		created, err := uc.seeder.Seed(txCtx)
		if err != nil {
			uc.logger.Error("ResetAvailability: failed to reseed: %v", err)
			return fmt.Errorf("%w: failed to reseed: %v", ErrInternal, err)
		}
		result.CreatedSlots = created

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("ResetAvailability: deleted %d reservations and %d slots, created %d slots",
		result.DeletedReservations, result.DeletedSlots, result.CreatedSlots)

	return result, nil
}

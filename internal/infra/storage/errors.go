package storage

import "errors"

// Ошибки, общие для всех адаптеров хранилища (postgres, memory)
var (
	// ErrSlotNotFound возвращается, когда слот доступности не найден
	ErrSlotNotFound = errors.New("storage: availability slot not found")

	// ErrDuplicateSlot возвращается при создании уже существующего слота
	ErrDuplicateSlot = errors.New("storage: availability slot already exists")

	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("storage: reservation not found")

	// ErrDuplicateReservation возвращается при повторном идентификаторе бронирования
	ErrDuplicateReservation = errors.New("storage: reservation already exists")
)

package delete_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("delete_reservation: reservation not found")

	// ErrInvalidInput возвращается при пустом идентификаторе
	ErrInvalidInput = errors.New("delete_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("delete_reservation: internal error")
)
